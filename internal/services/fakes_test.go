package services

import (
	"context"
	"errors"
	"sync"

	"github.com/xvierd/fokus/internal/domain"
)

type memStore struct {
	mu      sync.Mutex
	data    domain.History
	saves   int
	saveErr error
	loadErr error
}

func newMemStore(initial domain.History) *memStore {
	if initial == nil {
		initial = domain.NewHistory()
	}
	return &memStore{data: initial.Clone()}
}

func (m *memStore) Load(ctx context.Context) (domain.History, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.data.Clone(), nil
}

func (m *memStore) Save(ctx context.Context, h domain.History) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = h.Clone()
	return nil
}

func (m *memStore) Close() error { return nil }

func (m *memStore) snapshot() (domain.History, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.Clone(), m.saves
}

type fakeNotifier struct {
	enabled bool
	calls   chan int
}

func newFakeNotifier(enabled bool) *fakeNotifier {
	return &fakeNotifier{enabled: enabled, calls: make(chan int, 4)}
}

func (f *fakeNotifier) NotifyTimerComplete(minutes int) error {
	f.calls <- minutes
	return nil
}

func (f *fakeNotifier) IsEnabled() bool { return f.enabled }

type failingNotifier struct{}

func (failingNotifier) NotifyTimerComplete(int) error { return errors.New("no notification daemon") }
func (failingNotifier) IsEnabled() bool               { return true }
