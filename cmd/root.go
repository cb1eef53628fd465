// Package cmd provides the CLI commands for fokus.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/xvierd/fokus/internal/adapters/lock"
	"github.com/xvierd/fokus/internal/adapters/notification"
	"github.com/xvierd/fokus/internal/adapters/tui"
	"github.com/xvierd/fokus/internal/services"
)

var (
	// Version info (set at build time via ldflags)
	Version = "dev"

	// Global flags
	configPath string
	dataDir    string
	backend    string
	logFile    string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fokus",
	Short: "fokus - stopwatch, countdown timer and daily focus log",
	Long: `fokus is a full-screen terminal app with a stopwatch, a countdown timer
and a per-day history of focused minutes.

Run "fokus" with no arguments to open the interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runFocus,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_ = cleanupServices()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: <user config dir>/fokus/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for history, lock and log files")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "History backend: json or sqlite")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to the log file (default: <data dir>/fokus.log)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("fokus\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
}

// runFocus opens the full-screen interface and blocks until the user quits
// or the process is asked to terminate.
func runFocus(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(os.Stdin.Fd()) || !term.IsTerminal(os.Stdout.Fd()) {
		return errors.New("fokus needs an interactive terminal")
	}

	instance := lock.New(app.config.Storage.DataDir)
	instance.SetLogger(app.log)
	if err := instance.Acquire(); err != nil {
		return err
	}
	defer func() {
		if err := instance.Release(); err != nil {
			app.log.Warn("release lock: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := services.NewFocusService(ctx, app.store,
		services.WithTimerDuration(app.config.TimerDuration()),
		services.WithNotifier(notification.New(&app.config.Notifications)),
		services.WithLogger(app.log),
	)
	if err != nil {
		return err
	}
	app.log.Info("session started (timer %s, backend %s)", app.config.TimerDuration(), app.config.Storage.Backend)

	runErr := tui.NewScreen(svc, &app.config.Theme).Run(ctx)

	// Covers termination by signal, where the key handler never ran.
	svc.Quit(time.Now())
	if announce := svc.TakeNotification(); announce != nil {
		announce()
	}
	if err := svc.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	if runErr != nil {
		return runErr
	}
	app.log.Info("session ended")
	return nil
}
