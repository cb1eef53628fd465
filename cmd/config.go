package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/xvierd/fokus/internal/config"
	"github.com/xvierd/fokus/internal/ports"
)

var configEdit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit the configuration",
	Long: `Print the configuration file location and its current values.

With --edit, change the default timer duration, the history backend and the
notification settings in an interactive form.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVarP(&configEdit, "edit", "e", false, "Edit the configuration interactively")
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if !configEdit {
		printConfig(out, app.config)
		return nil
	}

	edited, err := editConfig(app.config)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(out, "No changes saved.")
			return nil
		}
		return err
	}

	saved := *edited
	saved.Storage.DataDir = app.dataDirSetting
	if err := config.Save(app.configPath, &saved); err != nil {
		return err
	}
	app.log.Info("config saved to %s", app.configPath)
	fmt.Fprintf(out, "Saved %s\n", app.configPath)
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	notif := "off"
	if cfg.Notifications.Enabled {
		notif = "on"
		if cfg.Notifications.Sound {
			notif = "on (with sound)"
		}
	}

	fmt.Fprintf(out, "Config file:     %s\n", app.configPath)
	fmt.Fprintf(out, "Data directory:  %s\n", cfg.Storage.DataDir)
	fmt.Fprintf(out, "Backend:         %s\n", cfg.Storage.Backend)
	fmt.Fprintf(out, "Timer duration:  %d min\n", cfg.DefaultTimerDuration)
	fmt.Fprintf(out, "Notifications:   %s\n", notif)
}

// editConfig runs the form on a copy of cfg and returns the edited copy.
func editConfig(cfg *config.Config) (*config.Config, error) {
	edited := *cfg
	minutes := strconv.Itoa(cfg.DefaultTimerDuration)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default timer duration (min)").
				Value(&minutes).
				Validate(validateMinutes),
			huh.NewSelect[string]().
				Title("History backend").
				Options(
					huh.NewOption("JSON file", ports.BackendJSON),
					huh.NewOption("SQLite", ports.BackendSQLite),
				).
				Value(&edited.Storage.Backend),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Notify when the timer finishes?").
				Value(&edited.Notifications.Enabled),
			huh.NewConfirm().
				Title("Play a sound with the notification?").
				Value(&edited.Notifications.Sound),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}

	n, err := parseMinutes(minutes)
	if err != nil {
		return nil, err
	}
	edited.DefaultTimerDuration = n
	return &edited, nil
}

func validateMinutes(s string) error {
	_, err := parseMinutes(s)
	return err
}

func parseMinutes(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("enter a whole number of minutes")
	}
	if n < config.MinTimerMinutes || n > config.MaxTimerMinutes {
		return 0, fmt.Errorf("must be between %d and %d", config.MinTimerMinutes, config.MaxTimerMinutes)
	}
	return n, nil
}
