package domain

// StopwatchState is the state of the stopwatch.
type StopwatchState int

const (
	StopwatchIdle StopwatchState = iota
	StopwatchRunning
)

// TimerState is the state of the countdown timer.
type TimerState int

const (
	TimerIdle TimerState = iota
	TimerRunning
	TimerDone
)

// String returns a human-readable label for the stopwatch state.
func (s StopwatchState) String() string {
	switch s {
	case StopwatchIdle:
		return "Idle"
	case StopwatchRunning:
		return "Running"
	default:
		return "Unknown"
	}
}

// String returns a human-readable label for the timer state.
func (s TimerState) String() string {
	switch s {
	case TimerIdle:
		return "Idle"
	case TimerRunning:
		return "Running"
	case TimerDone:
		return "Done"
	default:
		return "Unknown"
	}
}
