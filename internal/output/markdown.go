package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/todolint/internal/model"
)

// WriteMarkdownTable renders findings as a GitHub Flavored Markdown table.
func WriteMarkdownTable(w io.Writer, findings []model.Finding, opts Options) error {
	fields := opts.Fields.Fields
	headers := Headers(fields)
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(headers, " | ")); err != nil {
		return err
	}
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, f := range findings {
		row := RowValues(f, fields)
		for i := range row {
			if opts.Truncate > 0 {
				row[i] = cell(fields[i].Key, row[i], opts.Truncate)
			}
			row[i] = escapeMarkdownCell(row[i])
		}
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | ")); err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdownCell(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "<br>")
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "`", "\\`")
	return s
}
