package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/xvierd/fokus/internal/domain"
	"github.com/xvierd/fokus/internal/services"
)

const (
	defaultChartDays   = 14
	chartHeight        = 12
	defaultChartWidth  = 80
	maxChartDays       = 366
	chartLabelLayout   = "01/02"
	emptyHistoryNotice = "No focus time recorded yet."
)

var (
	historyMatch string
	historyChart bool
	historyDays  int
)

// historyCmd prints the per-day focus log.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show focused minutes per day",
	Long: `Print the focus history as a table, newest day first.

Use --match to fuzzy-filter days (e.g. "2024-03") and --chart to draw the
last --days days as a bar chart.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyMatch, "match", "m", "", "Fuzzy filter on the day key")
	historyCmd.Flags().BoolVarP(&historyChart, "chart", "c", false, "Draw a bar chart of recent days")
	historyCmd.Flags().IntVarP(&historyDays, "days", "d", defaultChartDays, "Number of days in the chart")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	hs := services.NewHistoryService(app.store)
	out := cmd.OutOrStdout()

	if historyChart {
		if historyDays < 1 || historyDays > maxChartDays {
			return fmt.Errorf("--days must be between 1 and %d", maxChartDays)
		}
		rows, err := hs.Recent(ctx, time.Now(), historyDays)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, renderChart(rows, chartWidth(out)))
		return nil
	}

	rows, err := hs.Match(ctx, historyMatch)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, emptyHistoryNotice)
		return nil
	}

	fmt.Fprint(out, domain.RenderTable(rows))
	total := 0
	for _, r := range rows {
		total += r.Minutes
	}
	fmt.Fprintf(out, "\nTotal: %d minutes over %d day(s)\n", total, len(rows))
	return nil
}

// chartWidth uses the terminal width when writing to one.
func chartWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok {
		return defaultChartWidth
	}
	w, _, err := term.GetSize(f.Fd())
	if err != nil || w <= 0 {
		return defaultChartWidth
	}
	return w
}

// renderChart draws one bar per day labelled MM/DD.
func renderChart(rows []domain.DailySummary, width int) string {
	color := app.config.Theme.ColorClock
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))

	chart := barchart.New(width, chartHeight)
	bars := make([]barchart.BarData, 0, len(rows))
	for _, r := range rows {
		label := r.Day
		if r.Valid {
			label = r.Date.Format(chartLabelLayout)
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: r.Day, Value: float64(r.Minutes), Style: style},
			},
		})
	}
	chart.PushAll(bars)
	chart.Draw()

	total := 0
	for _, r := range rows {
		total += r.Minutes
	}
	return fmt.Sprintf("%s\n\nLast %d day(s): %d minutes", chart.View(), len(rows), total)
}
