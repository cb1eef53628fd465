package domain

import "fmt"

// Page is one of the three screens of the application.
type Page int

const (
	PageStopwatch Page = iota
	PageTimer
	PageHistory
)

// PageCount is the number of pages the navigator cycles through.
const PageCount = 3

// Name returns the widget title used for the page.
func (p Page) Name() string {
	switch p {
	case PageStopwatch:
		return "Stopwatch"
	case PageTimer:
		return "Timer"
	case PageHistory:
		return "History"
	default:
		return ""
	}
}

// Title returns the header line for the page, e.g. "< Page 2 of 3 >".
func (p Page) Title() string {
	return fmt.Sprintf("< Page %d of %d >", int(p)+1, PageCount)
}

// Pager selects the visible page. Navigation is refused while a session is
// running so an active countdown or stopwatch never leaves the screen.
type Pager struct {
	current Page
}

// Current returns the selected page.
func (p *Pager) Current() Page {
	return p.current
}

// Next moves to the following page, wrapping around. It returns false and
// does nothing when locked.
func (p *Pager) Next(locked bool) bool {
	if locked {
		return false
	}
	p.current = (p.current + 1) % PageCount
	return true
}

// Prev moves to the preceding page, wrapping around. It returns false and
// does nothing when locked.
func (p *Pager) Prev(locked bool) bool {
	if locked {
		return false
	}
	p.current = (p.current + PageCount - 1) % PageCount
	return true
}
