// Package logger provides a small leveled logger. While the TUI owns the
// screen nothing may be written to the terminal, so the logger is normally
// pointed at a file in the data directory.
package logger

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all output.
	LevelOff Level = iota
	// LevelNormal enables info, warn and error output.
	LevelNormal
	// LevelVerbose also enables debug output.
	LevelVerbose
)

// Logger is a leveled logger. All methods are safe for concurrent use and
// safe to call on a nil *Logger.
type Logger struct {
	mu     sync.RWMutex
	level  Level
	debug  *log.Logger
	info   *log.Logger
	warn   *log.Logger
	errLog *log.Logger
}

// New creates a logger with the given level writing to out. A nil out
// discards everything.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = io.Discard
	}
	flags := log.LstdFlags
	return &Logger{
		level:  level,
		debug:  log.New(out, "[DBG] ", flags),
		info:   log.New(out, "[INF] ", flags),
		warn:   log.New(out, "[WRN] ", flags),
		errLog: log.New(out, "[ERR] ", flags),
	}
}

// Nop returns a logger that writes nothing.
func Nop() *Logger {
	return New(LevelOff, nil)
}

// SetLevel changes the level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current level.
func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *Logger) output(threshold Level, target *log.Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level >= threshold {
		_ = target.Output(3, fmt.Sprintf(format, args...))
	}
}

// Debug logs at debug level (verbose only).
func (l *Logger) Debug(format string, args ...any) {
	if l == nil {
		return
	}
	l.output(LevelVerbose, l.debug, format, args...)
}

// Info logs at info level.
func (l *Logger) Info(format string, args ...any) {
	if l == nil {
		return
	}
	l.output(LevelNormal, l.info, format, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...any) {
	if l == nil {
		return
	}
	l.output(LevelNormal, l.warn, format, args...)
}

// Error logs at error level.
func (l *Logger) Error(format string, args ...any) {
	if l == nil {
		return
	}
	l.output(LevelNormal, l.errLog, format, args...)
}
