package ports

import "errors"

// ErrAlreadyRunning is returned by InstanceLock.Acquire when another process
// holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// InstanceLock guarantees a single running instance.
// This is a driven port (implemented by adapters).
type InstanceLock interface {
	// Acquire takes the lock without blocking.
	Acquire() error

	// Release gives the lock up. Calling it more than once is harmless.
	Release() error
}
