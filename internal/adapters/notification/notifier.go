// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/xvierd/fokus/internal/config"
	"github.com/xvierd/fokus/internal/ports"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg    *config.NotificationConfig
	notify func(title, message string, icon any) error
	beep   func(freq float64, duration int) error
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg, notify: beeep.Notify, beep: beeep.Beep}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	if err := n.notify(title, message, ""); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	if n.cfg.Sound {
		if err := n.beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
			return fmt.Errorf("beep: %w", err)
		}
	}
	return nil
}

// NotifyTimerComplete implements ports.Notifier.
func (n *Notifier) NotifyTimerComplete(minutes int) error {
	title := "⏰ Timer finished"
	message := fmt.Sprintf("%d %s of focus logged.", minutes, plural(minutes, "minute"))
	return n.Notify(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
