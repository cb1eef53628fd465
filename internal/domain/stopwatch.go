package domain

import "time"

// Stopwatch counts up from the moment it is started. It is either idle or
// running; stopping always resets it to zero.
type Stopwatch struct {
	running   bool
	startedAt time.Time
	display   string
}

// NewStopwatch returns an idle stopwatch showing 00:00.00.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{display: zeroDisplay}
}

// Running reports whether the stopwatch is counting.
func (s *Stopwatch) Running() bool {
	return s.running
}

// State returns the stopwatch state.
func (s *Stopwatch) State() StopwatchState {
	if s.running {
		return StopwatchRunning
	}
	return StopwatchIdle
}

// Start begins counting at now. Starting a running stopwatch is a no-op.
func (s *Stopwatch) Start(now time.Time) {
	if s.running {
		return
	}
	s.running = true
	s.startedAt = now
}

// Stop halts the stopwatch and returns the number of whole minutes that
// elapsed. Partial minutes are discarded. The display resets to zero whether
// or not anything is returned.
func (s *Stopwatch) Stop(now time.Time) int {
	if !s.running {
		return 0
	}
	minutes := int(s.Elapsed(now) / time.Minute)
	s.running = false
	s.startedAt = time.Time{}
	s.display = zeroDisplay
	return minutes
}

// Toggle starts an idle stopwatch or stops a running one, returning the
// minutes earned by the stop.
func (s *Stopwatch) Toggle(now time.Time) int {
	if s.running {
		return s.Stop(now)
	}
	s.Start(now)
	return 0
}

// Elapsed returns the time since Start, or zero while idle.
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	if !s.running {
		return 0
	}
	d := now.Sub(s.startedAt)
	if d < 0 {
		return 0
	}
	return d
}

// Tick refreshes the display from the wall clock.
func (s *Stopwatch) Tick(now time.Time) {
	if s.running {
		s.display = FormatDuration(s.Elapsed(now))
	}
}

// Display returns the text shown for the stopwatch as of the last Tick.
func (s *Stopwatch) Display() string {
	return s.display
}
