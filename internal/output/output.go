// Package output renders engine results in the formats accepted by --output.
package output

import (
	"fmt"
	"io"

	"github.com/phyten/todolint/internal/engine"
	"github.com/phyten/todolint/internal/termcolor"
	"github.com/phyten/todolint/internal/textutil"
)

// Ellipsis is appended to cells shortened by Options.Truncate.
const Ellipsis = "…"

// Options は描画の設定です。
type Options struct {
	Fields FieldSelection
	// Truncate limits TEXT and MESSAGE cells of the table, tsv and markdown
	// formats to this display width. 0 means unlimited.
	Truncate int
	Palette  termcolor.Palette
	Tool     Tool
}

// Tool identifies the producer in SARIF output.
type Tool struct {
	Name    string
	Version string
	URI     string
}

// Write renders res to w in format. format must already be normalized.
func Write(w io.Writer, format string, res *engine.Result, opts Options) error {
	if res == nil {
		res = &engine.Result{}
	}
	if len(opts.Fields.Fields) == 0 {
		sel, err := ResolveFields("")
		if err != nil {
			return err
		}
		opts.Fields = sel
	}
	switch format {
	case "pretty", "":
		return WritePretty(w, res, opts.Palette)
	case "table":
		return WriteTable(w, res.Findings, opts)
	case "tsv":
		return WriteTSV(w, res.Findings, opts)
	case "json":
		return WriteJSON(w, res)
	case "ndjson":
		return WriteNDJSON(w, res.Findings)
	case "csv":
		return WriteCSV(w, res.Findings, opts.Fields)
	case "markdown":
		return WriteMarkdownTable(w, res.Findings, opts)
	case "sarif":
		return WriteSARIF(w, res, opts.Tool)
	default:
		return fmt.Errorf("unsupported output: %s", format)
	}
}

// cell は人間向け表形式のセル値を整えます。
func cell(key, value string, truncate int) string {
	value = textutil.SingleLine(value)
	if truncate > 0 && (key == "text" || key == "message") {
		value = textutil.TruncateByWidth(value, truncate, Ellipsis)
	}
	return value
}
