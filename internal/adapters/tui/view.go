package tui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/fokus/internal/config"
	"github.com/xvierd/fokus/internal/domain"
)

// footerText lists the key bindings under every page.
const footerText = "[space] Start/Reset [q] Quit [h]/[l] Change Page [j]/[k] Adjust/Scroll"

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

type styles struct {
	header  lipgloss.Style
	border  lipgloss.Color
	title   lipgloss.Style
	clock   lipgloss.Style
	expired lipgloss.Style
	today   lipgloss.Style
	help    lipgloss.Style
}

func newStyles(theme config.ThemeConfig) styles {
	return styles{
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHeader)),
		border:  lipgloss.Color(theme.ColorBorder),
		title:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorToday)),
		clock:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorClock)),
		expired: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorExpired)),
		today:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorToday)),
		help:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp)),
	}
}

// View renders the current frame. It reads state only.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	page := m.svc.Page()
	l := ComputeLayout(m.width, m.height, page)

	var lines []string
	lines = append(lines, m.renderHeader(l, page)...)
	lines = append(lines, blankLines(l.TopPad)...)
	lines = append(lines, m.renderWidget(l, page)...)
	lines = append(lines, m.renderToday(l, page)...)
	lines = append(lines, blankLines(l.BottomPad)...)
	lines = append(lines, m.renderFooter(l)...)
	return strings.Join(lines, "\n")
}

func (m Model) renderHeader(l Layout, page domain.Page) []string {
	rows := blankLines(l.Header.Height)
	if len(rows) > 0 {
		title := lipgloss.PlaceHorizontal(l.Header.Width, lipgloss.Center, page.Title())
		rows[len(rows)-1] = m.styles.header.Render(title)
	}
	return rows
}

func (m Model) renderFooter(l Layout) []string {
	rows := blankLines(l.Footer.Height)
	if len(rows) > 0 {
		rows[0] = m.styles.help.Render(lipgloss.PlaceHorizontal(l.Footer.Width, lipgloss.Center, footerText))
	}
	return rows
}

// todayVisible reports whether the daily total is shown: only on the clock
// pages, and not while that page's session runs.
func (m Model) todayVisible(page domain.Page) bool {
	switch page {
	case domain.PageStopwatch:
		return !m.svc.StopwatchRunning()
	case domain.PageTimer:
		return !m.svc.TimerRunning()
	default:
		return false
	}
}

func (m Model) renderToday(l Layout, page domain.Page) []string {
	rows := blankLines(l.Today.Height)
	if len(rows) > 0 && m.todayVisible(page) {
		text := fmt.Sprintf("%d minutes focused today", m.svc.TodayMinutes(m.clock()))
		rows[0] = m.styles.today.Render(lipgloss.PlaceHorizontal(l.Today.Width, lipgloss.Center, text))
	}
	return rows
}

func (m Model) widgetContent(page domain.Page) (string, lipgloss.Style) {
	switch page {
	case domain.PageStopwatch:
		return m.svc.StopwatchDisplay(), m.styles.clock
	case domain.PageTimer:
		if m.svc.TimerExpired() {
			return m.svc.TimerDisplay(), m.styles.expired
		}
		return m.svc.TimerDisplay(), m.styles.clock
	default:
		table := domain.RenderTable(m.svc.HistoryWindow())
		return strings.TrimSuffix(table, "\n"), m.styles.clock
	}
}

// renderWidget draws the titled box in the centre column. The rows are
// padded on the left so the box sits in the middle 40% of the width.
func (m Model) renderWidget(l Layout, page domain.Page) []string {
	w := l.Widget
	if w.Height <= 0 {
		return nil
	}
	if w.Width < borderCols || w.Height < borderRows {
		return blankLines(w.Height)
	}

	content, style := m.widgetContent(page)
	innerW := w.Width - borderCols
	innerH := w.Height - borderRows

	contentLines := strings.Split(content, "\n")
	if len(contentLines) > innerH {
		contentLines = contentLines[:innerH]
	}
	body := lipgloss.NewStyle().
		Width(innerW).
		MaxWidth(innerW).
		Height(innerH).
		Align(lipgloss.Center).
		Render(style.Render(strings.Join(contentLines, "\n")))

	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, true, true).
		BorderForeground(m.styles.border).
		Render(body)

	rows := append([]string{m.topBorder(" "+page.Name()+" ", w.Width)}, strings.Split(box, "\n")...)
	pad := strings.Repeat(" ", w.X)
	for i := range rows {
		rows[i] = pad + rows[i]
	}
	if len(rows) > w.Height {
		rows = rows[:w.Height]
	}
	return rows
}

// topBorder draws the upper edge of the box with the title at its left.
func (m Model) topBorder(title string, width int) string {
	b := lipgloss.NormalBorder()
	border := lipgloss.NewStyle().Foreground(m.styles.border)
	fill := width - borderCols - lipgloss.Width(title)
	if fill < 0 {
		title = ""
		fill = width - borderCols
	}
	return border.Render(b.TopLeft) +
		m.styles.title.Render(title) +
		border.Render(strings.Repeat(b.Top, fill)+b.TopRight)
}

func blankLines(n int) []string {
	if n <= 0 {
		return nil
	}
	return make([]string, n)
}
