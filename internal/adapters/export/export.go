// Package export writes the focus history in interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xvierd/fokus/internal/domain"
)

// Supported formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted format names.
var Formats = []string{FormatCSV, FormatJSON, FormatYAML}

// Entry is one exported day.
type Entry struct {
	Day     string `json:"day" yaml:"day"`
	Minutes int    `json:"minutes" yaml:"minutes"`
}

// Document is the JSON and YAML export layout.
type Document struct {
	TotalMinutes int     `json:"total_minutes" yaml:"total_minutes"`
	Days         []Entry `json:"days" yaml:"days"`
}

func newDocument(rows []domain.DailySummary) Document {
	doc := Document{Days: make([]Entry, 0, len(rows))}
	for _, r := range rows {
		doc.Days = append(doc.Days, Entry{Day: r.Day, Minutes: r.Minutes})
		doc.TotalMinutes += r.Minutes
	}
	return doc
}

// Write encodes rows to w in the named format.
func Write(w io.Writer, format string, rows []domain.DailySummary) error {
	switch strings.ToLower(format) {
	case FormatCSV:
		return ToCSV(w, rows)
	case FormatJSON:
		return ToJSON(w, rows)
	case FormatYAML, "yml":
		return ToYAML(w, rows)
	default:
		return fmt.Errorf("unsupported export format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// ToCSV writes a day,minutes table with a header row.
func ToCSV(w io.Writer, rows []domain.DailySummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "minutes"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Day, strconv.Itoa(r.Minutes)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ToJSON writes an indented Document.
func ToJSON(w io.Writer, rows []domain.DailySummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newDocument(rows)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// ToYAML writes a Document as YAML.
func ToYAML(w io.Writer, rows []domain.DailySummary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(rows)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
