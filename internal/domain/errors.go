// Package domain contains the core state machines of fokus: the stopwatch,
// the countdown timer, the page navigator and the per-day focus history.
// Nothing in here touches the terminal or the filesystem; every
// time-dependent operation takes the current instant as an argument.
package domain

import "errors"

// Common domain errors.
var (
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidDay      = errors.New("invalid day key")
)
