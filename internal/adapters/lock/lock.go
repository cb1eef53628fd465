// Package lock keeps a single fokus instance running per data directory.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/gofrs/flock"

	"github.com/xvierd/fokus/internal/logger"
	"github.com/xvierd/fokus/internal/ports"
)

// FileName is the lock file created inside the data directory.
const FileName = "fokus.lock"

// FileLock implements ports.InstanceLock with an advisory file lock.
type FileLock struct {
	mu   sync.Mutex
	path string
	fl   *flock.Flock
	held bool

	log       *logger.Logger
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// Ensure FileLock implements ports.InstanceLock.
var _ ports.InstanceLock = (*FileLock)(nil)

// New returns an unacquired lock for dataDir.
func New(dataDir string) *FileLock {
	path := filepath.Join(dataDir, FileName)
	return &FileLock{path: path, fl: flock.New(path), writeFile: os.WriteFile}
}

// SetLogger sets the logger used for non-fatal problems.
func (l *FileLock) SetLogger(log *logger.Logger) {
	l.log = log
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}

// Acquire implements ports.InstanceLock. It never waits: when another
// process holds the lock it returns ports.ErrAlreadyRunning.
func (l *FileLock) Acquire() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	ok, err := l.fl.TryLock()
	if err != nil {
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w (lock file %s)", ports.ErrAlreadyRunning, l.path)
	}
	l.held = true

	// The PID is informational; the lock itself is what excludes others.
	if err := l.writeFile(l.path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644); err != nil {
		l.log.Debug("write pid to %s: %v", l.path, err)
	}
	return nil
}

// Release implements ports.InstanceLock.
func (l *FileLock) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.held {
		return nil
	}
	l.held = false

	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release instance lock: %w", err)
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}
