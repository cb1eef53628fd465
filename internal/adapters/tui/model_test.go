package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/fokus/internal/domain"
	"github.com/xvierd/fokus/internal/services"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)

type memStore struct {
	data  domain.History
	saves int
}

func (m *memStore) Load(ctx context.Context) (domain.History, error) { return m.data.Clone(), nil }
func (m *memStore) Save(ctx context.Context, h domain.History) error {
	m.saves++
	m.data = h.Clone()
	return nil
}
func (m *memStore) Close() error { return nil }

func keyPress(s string) tea.Msg {
	switch s {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// clock is a settable time source shared by a model and the test.
type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestModel(t *testing.T, h domain.History, opts ...services.Option) (Model, *memStore, *clock) {
	t.Helper()
	if h == nil {
		h = domain.NewHistory()
	}
	store := &memStore{data: h}
	svc, err := services.NewFocusService(context.Background(), store, opts...)
	if err != nil {
		t.Fatalf("NewFocusService() error = %v", err)
	}
	c := &clock{now: t0}
	m := NewModel(svc, nil)
	m.clock = c.Now
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model), store, c
}

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var result tea.Model
		result, cmd = m.Update(msg)
		m = result.(Model)
	}
	return m, cmd
}

func frame(at time.Time) tea.Msg { return frameMsg(at) }

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

func TestModel_ViewBeforeSize(t *testing.T) {
	store := &memStore{data: domain.NewHistory()}
	svc, _ := services.NewFocusService(context.Background(), store)
	if got := NewModel(svc, nil).View(); got != "" {
		t.Errorf("View() before WindowSizeMsg = %q, want empty", got)
	}
}

func TestModel_ViewFillsTerminal(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	for _, page := range []string{"l", "l", "l"} {
		view := m.View()
		if n := len(strings.Split(view, "\n")); n != 24 {
			t.Errorf("page %s: View() has %d lines, want 24", m.svc.Page().Name(), n)
		}
		m, _ = send(m, keyPress(page))
	}
}

func TestModel_ViewStopwatchPage(t *testing.T) {
	m, _, _ := newTestModel(t, domain.History{"2024-03-01": 42})
	view := m.View()

	for _, want := range []string{
		"< Page 1 of 3 >",
		" Stopwatch ",
		"00:00.00",
		"42 minutes focused today",
		footerText,
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q\n%s", want, view)
		}
	}
}

func TestModel_FrameUpdatesStopwatch(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	m, _ = send(m, keyPress("space"))
	m, cmd := send(m, frame(t0.Add(90*time.Second+500*time.Millisecond)))

	if cmd == nil {
		t.Error("frame should schedule the next frame")
	}
	view := m.View()
	if !strings.Contains(view, "01:30.50") {
		t.Errorf("View() missing elapsed time\n%s", view)
	}
	if strings.Contains(view, "minutes focused today") {
		t.Error("daily total should be hidden while the stopwatch runs")
	}
}

// ---------------------------------------------------------------------------
// Key flows
// ---------------------------------------------------------------------------

func TestModel_StopwatchSpaceCommits(t *testing.T) {
	m, store, c := newTestModel(t, nil)

	m, _ = send(m, keyPress("space"))
	c.now = t0.Add(150 * time.Second)
	m, _ = send(m, keyPress("space"))

	if got := store.data.Minutes("2024-03-01"); got != 2 {
		t.Errorf("stored minutes = %d, want 2", got)
	}
	if !strings.Contains(m.View(), "2 minutes focused today") {
		t.Errorf("View() should show the new total\n%s", m.View())
	}
}

func TestModel_PagingBlockedWhileRunning(t *testing.T) {
	m, _, c := newTestModel(t, nil)

	m, _ = send(m, keyPress("space"), keyPress("l"), keyPress("right"), keyPress("h"))
	if m.svc.Page() != domain.PageStopwatch {
		t.Fatalf("page = %s while stopwatch runs, want Stopwatch", m.svc.Page().Name())
	}

	c.now = t0.Add(10 * time.Second)
	m, _ = send(m, keyPress("space"))

	var pages []string
	for i := 0; i < 3; i++ {
		m, _ = send(m, keyPress("l"))
		pages = append(pages, m.svc.Page().Title())
	}
	want := []string{"< Page 2 of 3 >", "< Page 3 of 3 >", "< Page 1 of 3 >"}
	if fmt.Sprint(pages) != fmt.Sprint(want) {
		t.Errorf("pages = %v, want %v", pages, want)
	}

	m, _ = send(m, keyPress("left"))
	if m.svc.Page() != domain.PageHistory {
		t.Errorf("left from page 1 = %s, want History", m.svc.Page().Name())
	}
}

func TestModel_TimerAdjustAndRun(t *testing.T) {
	m, store, c := newTestModel(t, nil, services.WithTimerDuration(time.Minute))
	m, _ = send(m, keyPress("l"))

	m, _ = send(m, keyPress("k"), keyPress("up"), keyPress("j"))
	if !strings.Contains(m.View(), "02:00.00") {
		t.Fatalf("timer should read 02:00.00\n%s", m.View())
	}

	m, _ = send(m, keyPress("space"))
	m, _ = send(m, keyPress("k"))
	if m.svc.TimerTotal() != 2*time.Minute {
		t.Errorf("total changed while running: %v", m.svc.TimerTotal())
	}
	if m, _ = send(m, keyPress("l")); m.svc.Page() != domain.PageTimer {
		t.Error("paging should be blocked while the timer runs")
	}

	for _, s := range []int{30, 120, 121, 300} {
		m, _ = send(m, frame(t0.Add(time.Duration(s)*time.Second)))
	}
	if got := store.data.Minutes("2024-03-01"); got != 2 {
		t.Errorf("stored minutes = %d, want 2", got)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
	if !m.svc.TimerExpired() {
		t.Error("timer should be waiting for acknowledgement")
	}

	c.now = t0.Add(6 * time.Minute)
	m, _ = send(m, keyPress("space"))
	if m.svc.TimerExpired() || !strings.Contains(m.View(), "02:00.00") {
		t.Errorf("space should acknowledge and show the total\n%s", m.View())
	}
}

func TestModel_HistoryScroll(t *testing.T) {
	h := domain.NewHistory()
	for i := 0; i < 30; i++ {
		h[t0.AddDate(0, 0, -i).Format(domain.DayLayout)] = i + 1
	}
	m, _, _ := newTestModel(t, h)
	m, _ = send(m, keyPress("h"))

	view := m.View()
	if !strings.Contains(view, " History ") || !strings.Contains(view, "Date        | Minutes") {
		t.Fatalf("history page not rendered\n%s", view)
	}
	if strings.Contains(view, "minutes focused today") {
		t.Error("daily total should be hidden on the history page")
	}
	if !strings.Contains(view, "2024-03-01") || strings.Contains(view, "2024-02-25") {
		t.Errorf("expected the five newest days\n%s", view)
	}

	m, _ = send(m, keyPress("j"), keyPress("down"), keyPress("j"))
	if m.svc.HistoryOffset() != 3 {
		t.Errorf("offset = %d, want 3", m.svc.HistoryOffset())
	}
	if strings.Contains(m.View(), "2024-03-01 ") {
		t.Error("newest day should have scrolled out of view")
	}

	for i := 0; i < 100; i++ {
		m, _ = send(m, keyPress("j"))
	}
	if m.svc.HistoryOffset() != 25 {
		t.Errorf("offset = %d, want 25", m.svc.HistoryOffset())
	}

	m, _ = send(m, keyPress("k"))
	if m.svc.HistoryOffset() != 24 {
		t.Errorf("offset = %d after scrolling up, want 24", m.svc.HistoryOffset())
	}

	m, _ = send(m, tea.WindowSizeMsg{Width: 80, Height: 200})
	if m.svc.HistoryOffset() != 0 {
		t.Errorf("offset = %d after growing the terminal, want 0", m.svc.HistoryOffset())
	}
}

func TestModel_QuitCommitsRunningStopwatch(t *testing.T) {
	for _, quitKey := range []string{"q", "ctrl+c"} {
		t.Run(quitKey, func(t *testing.T) {
			m, store, c := newTestModel(t, nil)
			m, _ = send(m, keyPress("space"))

			c.now = t0.Add(75 * time.Second)
			m, cmd := send(m, keyPress(quitKey))

			if cmd == nil {
				t.Fatal("quit should return a command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("quit should return tea.Quit")
			}
			if !m.Quitting() {
				t.Error("Quitting() = false after quit")
			}
			if got := store.data.Minutes("2024-03-01"); got != 1 {
				t.Errorf("stored minutes = %d, want 1", got)
			}

			m, _ = send(m, keyPress(quitKey), quitMsg{})
			if got := store.data.Minutes("2024-03-01"); got != 1 {
				t.Errorf("repeated quit credited again: %d", got)
			}
		})
	}
}

func TestModel_QuitMsgUsesQuitPath(t *testing.T) {
	m, store, c := newTestModel(t, nil)
	m, _ = send(m, keyPress("space"))

	c.now = t0.Add(3 * time.Minute)
	m, _ = send(m, quitMsg{})

	if !m.Quitting() {
		t.Error("quitMsg should quit")
	}
	if got := store.data.Minutes("2024-03-01"); got != 3 {
		t.Errorf("stored minutes = %d, want 3", got)
	}
}

func TestModel_SpaceOnHistoryPageIsNoop(t *testing.T) {
	m, store, _ := newTestModel(t, nil)
	m, _ = send(m, keyPress("h"), keyPress("space"))

	if m.svc.SessionRunning() {
		t.Error("space on the history page should not start anything")
	}
	if store.saves != 0 {
		t.Errorf("saves = %d, want 0", store.saves)
	}
}

type chanNotifier struct{ calls chan int }

func (n *chanNotifier) NotifyTimerComplete(minutes int) error {
	n.calls <- minutes
	return nil
}

func (n *chanNotifier) IsEnabled() bool { return true }

// runCmd executes cmd and any commands batched inside it.
func runCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(c)
		}
	}
}

func TestModel_TimerExpiryNotifiesThroughCommand(t *testing.T) {
	notifier := &chanNotifier{calls: make(chan int, 4)}
	m, store, _ := newTestModel(t, nil,
		services.WithTimerDuration(time.Minute),
		services.WithNotifier(notifier),
	)
	m, _ = send(m, keyPress("l"), keyPress("space"))

	m, cmd := send(m, frame(t0.Add(61*time.Second)))
	if len(notifier.calls) != 0 {
		t.Fatal("notification sent from Update instead of a command")
	}
	runCmd(cmd)

	select {
	case minutes := <-notifier.calls:
		if minutes != 1 {
			t.Errorf("notified minutes = %d, want 1", minutes)
		}
	default:
		t.Fatal("frame command should announce the finished timer")
	}
	if got := store.data.Minutes("2024-03-01"); got != 1 {
		t.Errorf("stored minutes = %d, want 1", got)
	}

	_, cmd = send(m, frame(t0.Add(62*time.Second)))
	runCmd(cmd)
	if len(notifier.calls) != 0 {
		t.Error("a finished timer is announced only once")
	}
}
