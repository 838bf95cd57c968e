package output

import (
	"io"
	"strings"

	"github.com/phyten/todolint/internal/model"
	"github.com/phyten/todolint/internal/textutil"
)

// WriteTable renders findings as space aligned columns. Widths are measured
// in terminal cells so that wide characters stay aligned.
func WriteTable(w io.Writer, findings []model.Finding, opts Options) error {
	fields := opts.Fields.Fields
	rows := make([][]string, 0, len(findings)+1)
	rows = append(rows, Headers(fields))
	for _, f := range findings {
		row := RowValues(f, fields)
		for i := range row {
			row[i] = cell(fields[i].Key, row[i], opts.Truncate)
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(fields))
	for _, row := range rows {
		for i, v := range row {
			if n := textutil.VisibleWidth(v); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	for r, row := range rows {
		b.Reset()
		for i, v := range row {
			if r == 0 {
				v = opts.Palette.Paint(opts.Palette.Header, v)
			} else if fields[i].Key == "kind" {
				v = opts.Palette.Paint(opts.Palette.Kind(v), v)
			}
			if i == len(row)-1 {
				b.WriteString(v)
				break
			}
			b.WriteString(textutil.PadRight(v, widths[i]))
			b.WriteString("  ")
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteTSV writes a header row and one tab separated row per finding.
func WriteTSV(w io.Writer, findings []model.Finding, opts Options) error {
	fields := opts.Fields.Fields
	if _, err := io.WriteString(w, strings.Join(Headers(fields), "\t")+"\n"); err != nil {
		return err
	}
	for _, f := range findings {
		row := RowValues(f, fields)
		for i := range row {
			row[i] = cell(fields[i].Key, row[i], opts.Truncate)
		}
		if _, err := io.WriteString(w, strings.Join(row, "\t")+"\n"); err != nil {
			return err
		}
	}
	return nil
}
