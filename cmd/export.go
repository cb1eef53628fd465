package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/fokus/internal/adapters/export"
	"github.com/xvierd/fokus/internal/services"
)

var (
	exportFormat string
	exportOutput string
	exportMatch  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the focus history",
	Long:  "Export the focus history as CSV, JSON or YAML, newest day first.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", export.FormatCSV, "Output format: "+strings.Join(export.Formats, ", "))
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")
	exportCmd.Flags().StringVarP(&exportMatch, "match", "m", "", "Fuzzy filter on the day key")
}

func runExport(cmd *cobra.Command, args []string) error {
	rows, err := services.NewHistoryService(app.store).Match(cmd.Context(), exportMatch)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, exportFormat, rows); err != nil {
		return err
	}
	if exportOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d day(s) to %s\n", len(rows), exportOutput)
	}
	app.log.Debug("exported %d day(s) as %s", len(rows), exportFormat)
	return nil
}
