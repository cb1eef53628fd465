package services

import (
	"context"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/xvierd/fokus/internal/domain"
	"github.com/xvierd/fokus/internal/ports"
)

// HistoryService implements ports.HistoryProvider on top of a HistoryStore.
// It reads the store on every call so it always reflects what the running
// session last persisted.
type HistoryService struct {
	store ports.HistoryStore
}

var _ ports.HistoryProvider = (*HistoryService)(nil)

// NewHistoryService creates a new history service.
func NewHistoryService(store ports.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Today implements ports.HistoryProvider.
func (s *HistoryService) Today(ctx context.Context, now time.Time) (domain.DailySummary, error) {
	h, err := s.store.Load(ctx)
	if err != nil {
		return domain.DailySummary{}, err
	}
	day := domain.DayKey(now)
	d, _ := domain.ParseDay(day)
	return domain.DailySummary{Day: day, Date: d, Valid: true, Minutes: h.Minutes(day)}, nil
}

// Rows implements ports.HistoryProvider.
func (s *HistoryService) Rows(ctx context.Context) ([]domain.DailySummary, error) {
	h, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return h.Rows(), nil
}

// Recent implements ports.HistoryProvider.
func (s *HistoryService) Recent(ctx context.Context, now time.Time, n int) ([]domain.DailySummary, error) {
	h, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}

	y, m, d := now.Local().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	rows := make([]domain.DailySummary, 0, n)
	for i := n - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		day := date.Format(domain.DayLayout)
		rows = append(rows, domain.DailySummary{Day: day, Date: date, Valid: true, Minutes: h.Minutes(day)})
	}
	return rows, nil
}

// Match returns the rows whose day key fuzzily matches pattern, best match
// first. An empty pattern returns every row in display order.
func (s *HistoryService) Match(ctx context.Context, pattern string) ([]domain.DailySummary, error) {
	rows, err := s.Rows(ctx)
	if err != nil || pattern == "" {
		return rows, err
	}

	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = r.Day
	}
	matches := fuzzy.Find(pattern, keys)
	out := make([]domain.DailySummary, 0, len(matches))
	for _, m := range matches {
		out = append(out, rows[m.Index])
	}
	return out, nil
}
