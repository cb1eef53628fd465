package ports

import "context"

// Screen is the interactive front end.
// This is a driving port (called by the application layer).
type Screen interface {
	// Run takes over the terminal and blocks until the user quits or ctx
	// is cancelled. The terminal is restored before Run returns.
	Run(ctx context.Context) error

	// Stop asks a running screen to quit through the normal quit path.
	Stop()
}
