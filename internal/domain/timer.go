package domain

import "time"

// Timer bounds and adjustment step.
const (
	TimerStep        = time.Minute
	MinTimerDuration = 1 * time.Minute
	MaxTimerDuration = 999 * time.Minute
)

// Timer counts down from a configurable total. The total can only be changed
// while idle. A countdown that reaches zero moves to TimerDone and reports
// the expiry exactly once; the logged flag keeps repeated ticks from
// reporting it again.
type Timer struct {
	state     TimerState
	startedAt time.Time
	total     time.Duration
	logged    bool
	display   string
}

// NewTimer returns an idle timer set to total, clamped to the allowed range.
func NewTimer(total time.Duration) *Timer {
	t := &Timer{total: ClampTimerDuration(total)}
	t.display = FormatDuration(t.total)
	return t
}

// ClampTimerDuration limits d to [MinTimerDuration, MaxTimerDuration].
func ClampTimerDuration(d time.Duration) time.Duration {
	if d < MinTimerDuration {
		return MinTimerDuration
	}
	if d > MaxTimerDuration {
		return MaxTimerDuration
	}
	return d
}

// State returns the current timer state.
func (t *Timer) State() TimerState {
	return t.state
}

// Running reports whether a countdown is in progress.
func (t *Timer) Running() bool {
	return t.state == TimerRunning
}

// Total returns the configured countdown length.
func (t *Timer) Total() time.Duration {
	return t.total
}

// TotalMinutes returns the countdown length in whole minutes.
func (t *Timer) TotalMinutes() int {
	return int(t.total / time.Minute)
}

// Logged reports whether the current countdown's expiry has been reported.
func (t *Timer) Logged() bool {
	return t.logged
}

// Display returns the text shown for the timer as of the last transition or Tick.
func (t *Timer) Display() string {
	return t.display
}

// Expired reports whether the timer finished and is waiting to be acknowledged.
func (t *Timer) Expired() bool {
	return t.state == TimerDone
}

// Start begins a countdown at now. Only an idle timer can be started.
func (t *Timer) Start(now time.Time) {
	if t.state != TimerIdle {
		return
	}
	t.state = TimerRunning
	t.startedAt = now
	t.logged = false
}

// Remaining returns the time left on the countdown, floored at zero.
func (t *Timer) Remaining(now time.Time) time.Duration {
	switch t.state {
	case TimerDone:
		return 0
	case TimerIdle:
		return t.total
	}
	r := t.total - now.Sub(t.startedAt)
	if r < 0 {
		return 0
	}
	return r
}

// Tick refreshes the display and returns true on the tick that observes the
// countdown reaching zero. It returns true at most once per countdown.
func (t *Timer) Tick(now time.Time) bool {
	if t.state != TimerRunning {
		return false
	}
	remaining := t.Remaining(now)
	t.display = FormatDuration(remaining)
	if remaining > 0 || t.logged {
		return false
	}
	t.state = TimerDone
	t.logged = true
	return true
}

// Stop abandons a running countdown and shows the full total again.
func (t *Timer) Stop() {
	if t.state != TimerRunning {
		return
	}
	t.state = TimerIdle
	t.display = FormatDuration(t.total)
}

// Acknowledge dismisses a finished countdown.
func (t *Timer) Acknowledge() {
	if t.state != TimerDone {
		return
	}
	t.state = TimerIdle
	t.display = FormatDuration(t.total)
}

// Toggle is the single start/stop key: it acknowledges a finished timer,
// stops a running one, or starts an idle one.
func (t *Timer) Toggle(now time.Time) {
	switch t.state {
	case TimerDone:
		t.Acknowledge()
	case TimerRunning:
		t.Stop()
	default:
		t.Start(now)
	}
}

// Increase adds one step to the total. It is ignored unless the timer is idle
// and clamps silently at MaxTimerDuration.
func (t *Timer) Increase() bool {
	return t.adjust(TimerStep)
}

// Decrease removes one step from the total. It is ignored unless the timer is
// idle and clamps silently at MinTimerDuration.
func (t *Timer) Decrease() bool {
	return t.adjust(-TimerStep)
}

func (t *Timer) adjust(delta time.Duration) bool {
	if t.state != TimerIdle {
		return false
	}
	t.total = ClampTimerDuration(t.total + delta)
	t.display = FormatDuration(t.total)
	return true
}
