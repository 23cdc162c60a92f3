package reindent

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// ReportFormat is an output format for [FileReport] values.
type ReportFormat string

const (
	ReportText     ReportFormat = "text"
	ReportJSON     ReportFormat = "json"
	ReportYAML     ReportFormat = "yaml"
	ReportMarkdown ReportFormat = "markdown"
)

var reportFormats = []ReportFormat{ReportText, ReportJSON, ReportYAML, ReportMarkdown}

// String returns the format name.
func (f ReportFormat) String() string { return string(f) }

// ReportFormats returns all report format names.
func ReportFormats() []ReportFormat {
	out := make([]ReportFormat, len(reportFormats))
	copy(out, reportFormats)
	return out
}

// ParseReportFormat parses a report format name.
func ParseReportFormat(s string) (ReportFormat, error) {
	for _, f := range reportFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FileReport is the outcome of reindenting one file.
type FileReport struct {
	Path     string `json:"path" yaml:"path"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Changed  bool   `json:"changed" yaml:"changed"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
	Stats    Stats  `json:"stats" yaml:"stats"`
}

// WriteReport writes reports to w in format f.
func WriteReport(w io.Writer, f ReportFormat, reports ...FileReport) error {
	switch f {
	case ReportText:
		return writeTextReport(w, reports)
	case ReportJSON:
		return writeJSONReport(w, reports)
	case ReportYAML:
		return writeYAMLReport(w, reports)
	case ReportMarkdown:
		return writeMarkdownReport(w, reports)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func writeTextReport(w io.Writer, reports []FileReport) error {
	for _, r := range reports {
		var err error
		switch {
		case r.Error != "":
			_, err = fmt.Fprintf(w, "%s: error: %s\n", r.Path, r.Error)
		case r.Changed:
			_, err = fmt.Fprintf(w, "%s: reindented %d/%d lines, depth %d\n", r.Path, r.Stats.Changed, r.Stats.Lines, r.Stats.MaxDepth)
		default:
			_, err = fmt.Fprintf(w, "%s: unchanged\n", r.Path)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeJSONReport(w io.Writer, reports []FileReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if reports == nil {
		reports = []FileReport{}
	}
	return enc.Encode(reports)
}

func writeYAMLReport(w io.Writer, reports []FileReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return err
	}
	return enc.Close()
}

var markdownHeader = []string{"Path", "Language", "Lines", "Changed", "Depth", "Status"}

// numeric columns are right-aligned
var markdownRight = []bool{false, false, true, true, true, false}

func writeMarkdownReport(w io.Writer, reports []FileReport) error {
	rows := make([][]string, len(reports))
	for i, r := range reports {
		status := "unchanged"
		switch {
		case r.Error != "":
			status = "error: " + r.Error
		case r.Changed:
			status = "reindented"
		}
		rows[i] = []string{
			escapePipes(r.Path),
			r.Language,
			strconv.Itoa(r.Stats.Lines),
			strconv.Itoa(r.Stats.Changed),
			strconv.Itoa(r.Stats.MaxDepth),
			escapePipes(status),
		}
	}

	// Column widths, minimum 3 for alignment markers.
	widths := make([]int, len(markdownHeader))
	for i, col := range markdownHeader {
		widths[i] = max(3, runewidth.StringWidth(col))
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	if err := writeMarkdownRow(w, markdownHeader, widths); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for i, width := range widths {
		if markdownRight[i] {
			sep[i] = strings.Repeat("-", width-1) + ":"
		} else {
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeMarkdownRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		if markdownRight[i] {
			padded[i] = runewidth.FillLeft(cells[i], width)
		} else {
			padded[i] = runewidth.FillRight(cells[i], width)
		}
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}

func escapePipes(s string) string { return strings.ReplaceAll(s, "|", `\|`) }
