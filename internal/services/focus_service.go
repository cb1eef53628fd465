// Package services contains the application layer of fokus: the state the
// terminal front end drives and the queries the other commands read.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xvierd/fokus/internal/domain"
	"github.com/xvierd/fokus/internal/logger"
	"github.com/xvierd/fokus/internal/ports"
)

// DefaultTimerDuration is the countdown length used when none is configured.
const DefaultTimerDuration = 25 * time.Minute

// FocusService owns the application state of the interactive session: the
// stopwatch, the timer, the page navigator, the history and its scroll
// position. Every completed session is credited to the history and persisted
// immediately.
//
// FocusService is not safe for concurrent use; the event loop calls it from a
// single goroutine.
type FocusService struct {
	store    ports.HistoryStore
	notifier ports.Notifier
	log      *logger.Logger

	stopwatch *domain.Stopwatch
	timer     *domain.Timer
	pager     domain.Pager
	history   domain.History
	offset    int
	visible   int

	// pendingNotify holds the minutes of a finished countdown that has not
	// been announced yet.
	pendingNotify int
}

// Option configures a FocusService.
type Option func(*FocusService)

// WithNotifier sets the notifier used when a countdown finishes.
func WithNotifier(n ports.Notifier) Option {
	return func(s *FocusService) { s.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *FocusService) { s.log = l }
}

// WithTimerDuration sets the initial countdown length.
func WithTimerDuration(d time.Duration) Option {
	return func(s *FocusService) { s.timer = domain.NewTimer(d) }
}

// NewFocusService loads the history from store and returns a service with an
// idle stopwatch and timer on the first page.
func NewFocusService(ctx context.Context, store ports.HistoryStore, opts ...Option) (*FocusService, error) {
	s := &FocusService{
		store:     store,
		log:       logger.Nop(),
		stopwatch: domain.NewStopwatch(),
		timer:     domain.NewTimer(DefaultTimerDuration),
	}
	for _, opt := range opts {
		opt(s)
	}

	h, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if h == nil {
		h = domain.NewHistory()
	}
	s.history = h
	s.log.Info("loaded history with %d days", len(h))
	return s, nil
}

// Tick advances the time-based state to now. A countdown that reaches zero
// is credited and announced here.
func (s *FocusService) Tick(now time.Time) {
	s.stopwatch.Tick(now)
	if s.timer.Tick(now) {
		s.timerFinished(now)
	}
}

// ToggleStopwatch starts an idle stopwatch or stops a running one. Stopping
// credits the whole minutes elapsed.
func (s *FocusService) ToggleStopwatch(now time.Time) {
	if s.stopwatch.Running() {
		minutes := s.stopwatch.Stop(now)
		s.log.Debug("stopwatch stopped after %d minutes", minutes)
		s.commit(now, minutes)
		return
	}
	s.stopwatch.Start(now)
	s.log.Debug("stopwatch started")
}

// ToggleTimer starts, stops or acknowledges the timer. A countdown that has
// already run out is treated as finished rather than stopped so its minutes
// are not lost to a late frame.
func (s *FocusService) ToggleTimer(now time.Time) {
	if s.timer.Tick(now) {
		s.timerFinished(now)
		return
	}
	before := s.timer.State()
	s.timer.Toggle(now)
	s.log.Debug("timer %s -> %s", before, s.timer.State())
}

// IncreaseTimer lengthens an idle countdown by one step.
func (s *FocusService) IncreaseTimer() bool {
	return s.timer.Increase()
}

// DecreaseTimer shortens an idle countdown by one step.
func (s *FocusService) DecreaseTimer() bool {
	return s.timer.Decrease()
}

// NextPage moves to the following page unless a session is running.
func (s *FocusService) NextPage() bool {
	return s.pager.Next(s.SessionRunning())
}

// PrevPage moves to the preceding page unless a session is running.
func (s *FocusService) PrevPage() bool {
	return s.pager.Prev(s.SessionRunning())
}

// ScrollUp moves the history window one row towards the newest day.
func (s *FocusService) ScrollUp() {
	if s.offset > 0 {
		s.offset--
	}
}

// ScrollDown moves the history window one row towards the oldest day.
func (s *FocusService) ScrollDown() {
	s.offset = domain.ClampOffset(s.offset+1, len(s.history), s.visible)
}

// ClampHistory records how many history rows fit on screen and keeps the
// scroll offset within range for that height.
func (s *FocusService) ClampHistory(visible int) {
	s.visible = visible
	s.offset = domain.ClampOffset(s.offset, len(s.history), visible)
}

// HistoryOffset returns the index of the first visible history row.
func (s *FocusService) HistoryOffset() int {
	return s.offset
}

// HistoryWindow returns the history rows currently scrolled into view.
func (s *FocusService) HistoryWindow() []domain.DailySummary {
	return domain.Window(s.history.Rows(), s.offset, s.visible)
}

// HistoryRows returns every history row in display order.
func (s *FocusService) HistoryRows() []domain.DailySummary {
	return s.history.Rows()
}

// TodayMinutes returns the minutes credited to the day containing now.
func (s *FocusService) TodayMinutes(now time.Time) int {
	return s.history.Minutes(domain.DayKey(now))
}

// SessionRunning reports whether the stopwatch or a countdown is running.
func (s *FocusService) SessionRunning() bool {
	return s.stopwatch.Running() || s.timer.Running()
}

// Page returns the visible page.
func (s *FocusService) Page() domain.Page {
	return s.pager.Current()
}

// StopwatchRunning reports whether the stopwatch is counting.
func (s *FocusService) StopwatchRunning() bool {
	return s.stopwatch.Running()
}

// StopwatchDisplay returns the stopwatch text.
func (s *FocusService) StopwatchDisplay() string {
	return s.stopwatch.Display()
}

// TimerRunning reports whether a countdown is in progress.
func (s *FocusService) TimerRunning() bool {
	return s.timer.Running()
}

// TimerExpired reports whether a finished countdown awaits acknowledgement.
func (s *FocusService) TimerExpired() bool {
	return s.timer.Expired()
}

// TimerDisplay returns the timer text.
func (s *FocusService) TimerDisplay() string {
	return s.timer.Display()
}

// TimerTotal returns the configured countdown length.
func (s *FocusService) TimerTotal() time.Duration {
	return s.timer.Total()
}

// Quit credits a running stopwatch before the loop exits. A running
// countdown is abandoned without credit.
func (s *FocusService) Quit(now time.Time) {
	if s.stopwatch.Running() {
		minutes := s.stopwatch.Stop(now)
		s.log.Info("quit with running stopwatch, crediting %d minutes", minutes)
		s.commit(now, minutes)
	}
}

// Shutdown persists the history one last time.
func (s *FocusService) Shutdown(ctx context.Context) error {
	if err := s.store.Save(ctx, s.history); err != nil {
		s.log.Error("final save failed: %v", err)
		return fmt.Errorf("save history: %w", err)
	}
	s.log.Debug("history saved on shutdown")
	return nil
}

func (s *FocusService) timerFinished(now time.Time) {
	minutes := s.timer.TotalMinutes()
	s.log.Info("timer finished, crediting %d minutes", minutes)
	s.commit(now, minutes)

	if s.notifier != nil && s.notifier.IsEnabled() {
		s.pendingNotify = minutes
	}
}

// TakeNotification returns the announcement for a countdown that finished
// since the last call, or nil when there is none. The returned func may block
// and is meant to run outside the event loop.
func (s *FocusService) TakeNotification() func() {
	if s.pendingNotify == 0 {
		return nil
	}
	minutes := s.pendingNotify
	s.pendingNotify = 0
	n, log := s.notifier, s.log
	return func() {
		if err := n.NotifyTimerComplete(minutes); err != nil {
			log.Warn("notification failed: %v", err)
		}
	}
}

// commit credits minutes to the day containing now and persists the history.
// A failed save is logged; the in-memory history keeps the minutes and the
// next successful save writes them.
func (s *FocusService) commit(now time.Time, minutes int) {
	day := domain.DayKey(now)
	if !s.history.Add(day, minutes) {
		return
	}
	if err := s.store.Save(context.Background(), s.history); err != nil {
		s.log.Error("saving history for %s: %v", day, err)
		return
	}
	s.log.Debug("credited %d minutes to %s", minutes, day)
}
