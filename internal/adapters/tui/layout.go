package tui

import "github.com/xvierd/fokus/internal/domain"

// Fixed band heights.
const (
	headerRows  = 2
	footerRows  = 2
	clockRows   = 3 // bordered single-line widget
	todayRows   = 1
	borderRows  = 2
	borderCols  = 2
	leftPercent = 30
	midPercent  = 40
)

// Rect is a screen region in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Layout is the geometry of one frame.
type Layout struct {
	Header Rect
	Body   Rect
	Footer Rect

	// Widget is the bordered box in the centre column of the content row.
	Widget Rect
	// Today is the row beneath the widget holding the daily total.
	Today Rect

	TopPad    int
	BottomPad int

	// HistoryRows is how many history entries fit inside the widget below
	// the table header. Zero on the clock pages.
	HistoryRows int
}

// ComputeLayout derives the frame geometry from the terminal size and page.
// Stopwatch and timer pages centre a three-row widget vertically; the
// history page gives a quarter of the body to each margin and the rest to
// the widget.
func ComputeLayout(width, height int, page domain.Page) Layout {
	width = max(width, 0)
	height = max(height, 0)

	var l Layout
	header := min(headerRows, height)
	footer := min(footerRows, height-header)
	body := height - header - footer

	l.Header = Rect{X: 0, Y: 0, Width: width, Height: header}
	l.Body = Rect{X: 0, Y: header, Width: width, Height: body}
	l.Footer = Rect{X: 0, Y: header + body, Width: width, Height: footer}

	var content, today int
	if page == domain.PageHistory {
		l.TopPad = body / 4
		l.BottomPad = body / 4
		today = min(todayRows, body-l.TopPad-l.BottomPad)
		content = body - l.TopPad - l.BottomPad - today
	} else {
		remaining := max(body-(clockRows+todayRows), 0)
		l.TopPad = remaining / 2
		l.BottomPad = remaining - l.TopPad
		content = min(clockRows, body)
		today = min(todayRows, body-content)
	}

	left := width * leftPercent / 100
	mid := width * midPercent / 100
	contentY := l.Body.Y + l.TopPad
	l.Widget = Rect{X: left, Y: contentY, Width: mid, Height: content}
	l.Today = Rect{X: 0, Y: contentY + content, Width: width, Height: today}

	if page == domain.PageHistory {
		l.HistoryRows = max(content-borderRows-domain.HistoryHeaderRows, 0)
	}
	return l
}
