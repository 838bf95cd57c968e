package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phyten/todolint/internal/detect"
	"github.com/phyten/todolint/internal/lexer"
	"github.com/phyten/todolint/internal/lint"
	"github.com/phyten/todolint/internal/source"
	"github.com/phyten/todolint/internal/textutil"
	"github.com/phyten/todolint/internal/token"
)

type tokenRow struct {
	Offset  int      `json:"offset"`
	Len     int      `json:"len"`
	Kind    string   `json:"kind"`
	Text    string   `json:"text"`
	Markers []string `json:"markers,omitempty"`
}

func newTokensCommand(gs *globalState) *cobra.Command {
	var (
		dialect      string
		format       string
		commentsOnly bool
	)
	cmd := &cobra.Command{
		Use:   "tokens [flags] file",
		Short: "Dump the comment/string token stream of a file",
		Long: "tokens shows how a file is split into comment, string and code tokens,\n" +
			"and which comments carry TODO or FIXME markers.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := tokenRows(args[0], dialect, commentsOnly)
			if err != nil {
				return &exitError{code: exitFailure, err: err}
			}
			switch strings.ToLower(format) {
			case "", "pretty":
				return writeTokensPretty(gs.stdout, rows)
			case "json":
				enc := json.NewEncoder(gs.stdout)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(rows)
			default:
				return &exitError{code: exitFailure, err: fmt.Errorf("unknown format: %s", format)}
			}
		},
	}
	cmd.Flags().StringVar(&dialect, "dialect", "", "override the detected dialect (rust|go|c|js)")
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	cmd.Flags().BoolVar(&commentsOnly, "comments-only", false, "only list comment tokens")
	return cmd
}

func tokenRows(path, dialectName string, commentsOnly bool) ([]tokenRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := pickDialect(path, data, dialectName)
	if err != nil {
		return nil, err
	}
	toks := lexer.Tokenize(data, d)

	f := source.NewFile(path, 1, data)
	markers := make(map[int][]string)
	lint.CheckFile(f, token.FromSlice(toks), lint.SinkFunc(func(ev lint.Event) {
		off := f.Offset(ev.Comment().Start)
		markers[off] = append(markers[off], ev.Kind.Text())
	}))

	rows := make([]tokenRow, 0, len(toks))
	off := 0
	for _, t := range toks {
		if !commentsOnly || t.Kind.IsComment() {
			rows = append(rows, tokenRow{
				Offset:  off,
				Len:     t.Len,
				Kind:    t.Kind.String(),
				Text:    string(data[off : off+t.Len]),
				Markers: markers[off],
			})
		}
		off += t.Len
	}
	return rows, nil
}

func pickDialect(path string, data []byte, name string) (*lexer.Dialect, error) {
	if name = strings.TrimSpace(name); name != "" {
		if d, ok := lexer.ByName(strings.ToLower(name)); ok {
			return d, nil
		}
		if d, ok := detect.Dialect(name); ok {
			return d, nil
		}
		return nil, fmt.Errorf("unknown dialect: %s", name)
	}
	info := detect.FromPathAndContent(path, data)
	if d, ok := detect.Dialect(info.Name); ok {
		return d, nil
	}
	return nil, fmt.Errorf("%s: unsupported language, use --dialect", path)
}

func writeTokensPretty(w io.Writer, rows []tokenRow) error {
	if _, err := fmt.Fprintf(w, "%7s %5s  %-13s  %s\n", "OFFSET", "LEN", "KIND", "TEXT"); err != nil {
		return err
	}
	for _, r := range rows {
		text := textutil.TruncateByWidth(strconv.Quote(r.Text), 60, "…")
		line := fmt.Sprintf("%7d %5d  %-13s  %s", r.Offset, r.Len, r.Kind, text)
		if len(r.Markers) > 0 {
			line += "  [" + strings.Join(r.Markers, ",") + "]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
