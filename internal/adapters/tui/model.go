// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/fokus/internal/config"
	"github.com/xvierd/fokus/internal/domain"
	"github.com/xvierd/fokus/internal/services"
)

// frameInterval is how often the clocks are recomputed and redrawn.
const frameInterval = 50 * time.Millisecond

// frameMsg is sent on every frame.
type frameMsg time.Time

// quitMsg asks the model to leave through the normal quit path.
type quitMsg struct{}

// Model represents the TUI state. All application state lives in the
// FocusService; the model only adds the terminal size.
type Model struct {
	svc    *services.FocusService
	keys   keyMap
	styles styles
	clock  func() time.Time
	width  int
	height int

	quitting bool
}

// NewModel creates a new TUI model driving svc.
func NewModel(svc *services.FocusService, theme *config.ThemeConfig) Model {
	return Model{
		svc:    svc,
		keys:   keys,
		styles: newStyles(resolveTheme(theme)),
		clock:  time.Now,
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return frameCmd()
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampHistory()
		return m, nil

	case frameMsg:
		if m.quitting {
			return m, nil
		}
		m.svc.Tick(time.Time(msg))
		m.clampHistory()
		return m, tea.Batch(frameCmd(), m.notifyCmd())

	case quitMsg:
		return m.quit()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	page := m.svc.Page()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Next):
		m.svc.NextPage()

	case key.Matches(msg, m.keys.Prev):
		m.svc.PrevPage()

	case key.Matches(msg, m.keys.Up):
		switch page {
		case domain.PageTimer:
			m.svc.IncreaseTimer()
		case domain.PageHistory:
			m.svc.ScrollUp()
		}

	case key.Matches(msg, m.keys.Down):
		switch page {
		case domain.PageTimer:
			m.svc.DecreaseTimer()
		case domain.PageHistory:
			m.svc.ScrollDown()
		}

	case key.Matches(msg, m.keys.Toggle):
		switch page {
		case domain.PageStopwatch:
			m.svc.ToggleStopwatch(m.clock())
		case domain.PageTimer:
			m.svc.ToggleTimer(m.clock())
		}
	}
	return m, m.notifyCmd()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if !m.quitting {
		m.svc.Quit(m.clock())
		m.quitting = true
	}
	return m, tea.Quit
}

// notifyCmd runs a pending timer announcement through the command runner so
// a slow desktop notification never stalls a frame.
func (m Model) notifyCmd() tea.Cmd {
	announce := m.svc.TakeNotification()
	if announce == nil {
		return nil
	}
	return func() tea.Msg {
		announce()
		return nil
	}
}

// clampHistory keeps the history scroll offset valid for the current size.
func (m Model) clampHistory() {
	l := ComputeLayout(m.width, m.height, domain.PageHistory)
	m.svc.ClampHistory(l.HistoryRows)
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
