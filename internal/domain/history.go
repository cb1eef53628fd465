package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DayLayout is the key format of History entries.
const DayLayout = "2006-01-02"

// parseLayout also accepts hand-edited keys without zero padding.
const parseLayout = "2006-1-2"

// History maps a local calendar day (YYYY-MM-DD) to the minutes focused on it.
type History map[string]int

// NewHistory returns an empty history.
func NewHistory() History {
	return make(History)
}

// DayKey returns the history key for the local calendar day containing t.
func DayKey(t time.Time) string {
	return t.Local().Format(DayLayout)
}

// ParseDay parses a history key.
func ParseDay(key string) (time.Time, error) {
	d, err := time.ParseInLocation(parseLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, key)
	}
	return d, nil
}

// Add credits minutes to day. Non-positive amounts are ignored and never
// create an entry. It reports whether the history changed.
func (h History) Add(day string, minutes int) bool {
	if minutes <= 0 {
		return false
	}
	h[day] += minutes
	return true
}

// Minutes returns the minutes recorded for day.
func (h History) Minutes(day string) int {
	return h[day]
}

// Clone returns an independent copy of h.
func (h History) Clone() History {
	c := make(History, len(h))
	for k, v := range h {
		c[k] = v
	}
	return c
}

// DailySummary is one row of the history view.
type DailySummary struct {
	Day     string
	Date    time.Time
	Valid   bool
	Minutes int
}

// Rows returns the history sorted for display: valid days newest first,
// followed by keys that are not dates. The fallback keeps a hand-edited file
// displayable; unparsable keys are ordered lexically.
func (h History) Rows() []DailySummary {
	var valid, invalid []DailySummary
	for key, minutes := range h {
		d, err := ParseDay(key)
		if err != nil {
			invalid = append(invalid, DailySummary{Day: key, Minutes: minutes})
			continue
		}
		valid = append(valid, DailySummary{Day: key, Date: d, Valid: true, Minutes: minutes})
	}
	sort.SliceStable(valid, func(i, j int) bool {
		if !valid[i].Date.Equal(valid[j].Date) {
			return valid[i].Date.After(valid[j].Date)
		}
		return valid[i].Day < valid[j].Day
	})
	sort.SliceStable(invalid, func(i, j int) bool {
		return invalid[i].Day < invalid[j].Day
	})
	return append(valid, invalid...)
}

// Total returns the sum of all recorded minutes.
func (h History) Total() int {
	total := 0
	for _, m := range h {
		total += m
	}
	return total
}

// ClampOffset limits a scroll offset so the last page is never partially
// empty while the rows fill it.
func ClampOffset(offset, total, visible int) int {
	if visible < 0 {
		visible = 0
	}
	if offset < 0 || total <= visible {
		return 0
	}
	if limit := total - visible; offset > limit {
		return limit
	}
	return offset
}

// Window returns the rows visible at offset.
func Window(rows []DailySummary, offset, visible int) []DailySummary {
	offset = ClampOffset(offset, len(rows), visible)
	end := offset + visible
	if end > len(rows) {
		end = len(rows)
	}
	if visible <= 0 || offset >= end {
		return nil
	}
	return rows[offset:end]
}

// HistoryHeaderRows is the number of lines RenderTable spends on its header.
const HistoryHeaderRows = 2

// RenderTable formats rows as the two-column Date | Minutes table.
func RenderTable(rows []DailySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-11s | %6s\n", "Date", "Minutes")
	b.WriteString(strings.Repeat("-", 21))
	b.WriteByte('\n')
	for _, r := range rows {
		fmt.Fprintf(&b, "%-11s | %6d\n", r.Day, r.Minutes)
	}
	return b.String()
}
