package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/fokus/internal/config"
	"github.com/xvierd/fokus/internal/ports"
	"github.com/xvierd/fokus/internal/services"
)

// Screen implements the ports.Screen interface using Bubbletea.
type Screen struct {
	mu      sync.Mutex
	program *tea.Program
	model   Model
	opts    []tea.ProgramOption
}

// Ensure Screen implements ports.Screen.
var _ ports.Screen = (*Screen)(nil)

// NewScreen creates a full-screen interface driving svc. Extra program
// options are appended to the defaults (alternate screen, no signal handler).
func NewScreen(svc *services.FocusService, theme *config.ThemeConfig, opts ...tea.ProgramOption) *Screen {
	return &Screen{
		model: NewModel(svc, theme),
		opts:  opts,
	}
}

// Run starts the interface and blocks until the user quits or ctx is
// cancelled. Cancellation goes through the same quit path as the q key, so a
// running stopwatch is credited. Signals are left to the caller, which is
// expected to cancel ctx.
func (s *Screen) Run(ctx context.Context) error {
	opts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	}, s.opts...)

	s.mu.Lock()
	s.program = tea.NewProgram(s.model, opts...)
	program := s.program
	s.mu.Unlock()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			program.Send(quitMsg{})
		case <-done:
		}
	}()

	_, err := program.Run()
	close(done)
	wg.Wait()

	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Stop asks a running interface to quit.
func (s *Screen) Stop() {
	s.mu.Lock()
	program := s.program
	s.mu.Unlock()

	if program != nil {
		program.Send(quitMsg{})
	}
}
