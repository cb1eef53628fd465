package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/xvierd/fokus/internal/adapters/storage"
	"github.com/xvierd/fokus/internal/config"
	"github.com/xvierd/fokus/internal/logger"
	"github.com/xvierd/fokus/internal/ports"
)

// LogFileName is the default log file inside the data directory.
const LogFileName = "fokus.log"

// appDeps groups all dependencies initialized at startup.
type appDeps struct {
	config     *config.Config
	configPath string
	store      ports.HistoryStore
	log        *logger.Logger
	logFile    *os.File

	// dataDirSetting is storage.data_dir as written in the file, before
	// resolution and flag overrides.
	dataDirSetting string
}

// app holds all initialized dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices loads the configuration, applies flag overrides and
// opens the log file and the history store.
func initializeServices(cmd *cobra.Command) error {
	var err error
	app.configPath = configPath
	if app.configPath == "" {
		app.configPath, err = config.GetConfigPath()
		if err != nil {
			return err
		}
	}

	app.config, err = config.LoadFrom(app.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if app.config.Reset {
		fmt.Fprintf(cmd.ErrOrStderr(), "Config file %s was invalid and has been reset to defaults.\n", app.configPath)
	}

	app.dataDirSetting = app.config.Storage.DataDir
	if app.dataDirSetting == filepath.Dir(app.configPath) {
		app.dataDirSetting = ""
	}
	if dataDir != "" {
		app.config.Storage.DataDir = dataDir
	}
	if backend != "" {
		app.config.Storage.Backend = backend
	}

	if err := os.MkdirAll(app.config.Storage.DataDir, 0o750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	logPath := logFile
	if logPath == "" {
		logPath = filepath.Join(app.config.Storage.DataDir, LogFileName)
	}
	app.logFile, err = tea.LogToFile(logPath, config.AppName)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	level := logger.LevelNormal
	if verbose {
		level = logger.LevelVerbose
	}
	app.log = logger.New(level, app.logFile)
	if app.config.Reset {
		app.log.Warn("config %s was invalid, defaults written", app.configPath)
	}

	app.store, err = storage.Open(app.config.Storage.Backend, app.config.Storage.DataDir, app.log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.log.Debug("data dir %s, backend %s", app.config.Storage.DataDir, app.config.Storage.Backend)
	return nil
}

// cleanupServices closes the store and the log file. Safe to call twice.
func cleanupServices() error {
	var firstErr error
	if app.store != nil {
		if err := app.store.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close storage: %w", err)
		}
		app.store = nil
	}
	if app.logFile != nil {
		if err := app.logFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		app.logFile = nil
	}
	return firstErr
}
