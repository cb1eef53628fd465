package ports

// Notifier announces finished countdowns outside the terminal.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// NotifyTimerComplete reports a countdown of the given length finishing.
	NotifyTimerComplete(minutes int) error

	// IsEnabled reports whether notifications are switched on.
	IsEnabled() bool
}
