package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phyten/todolint/internal/engine"
	"github.com/phyten/todolint/internal/lint"
	"github.com/phyten/todolint/internal/model"
	"github.com/phyten/todolint/internal/termcolor"
	"github.com/phyten/todolint/internal/textutil"
)

// maxSnippetLines より長いコメントは、先頭・末尾・マーカーを含む行だけを表示します。
const maxSnippetLines = 6

// WritePretty renders findings in the compiler diagnostic style: a header,
// a location arrow and the comment lines with markers underlined.
func WritePretty(w io.Writer, res *engine.Result, p termcolor.Palette) error {
	bw := bufio.NewWriter(w)
	for i, f := range res.Findings {
		writeDiagnostic(bw, f, p, i == 0)
	}
	writeSummary(bw, res, p)
	return bw.Flush()
}

func writeDiagnostic(w *bufio.Writer, f model.Finding, p termcolor.Palette, first bool) {
	gutterW := len(strconv.Itoa(f.Comment.EndLine))
	pad := strings.Repeat(" ", gutterW)
	bar := p.Paint(p.Gutter, "|")

	fmt.Fprintf(w, "%s%s\n", p.Paint(p.Warning, "warning"), p.Paint(p.Message, ": "+f.Message))
	fmt.Fprintf(w, "%s%s %s:%d:%d\n", pad, p.Paint(p.Gutter, "-->"), f.File, f.Line(), f.Col())
	fmt.Fprintf(w, "%s %s\n", pad, bar)

	prev := 0
	for i, text := range f.Snippet {
		n := f.Comment.StartLine + i
		if !showLine(f, n) {
			continue
		}
		if prev != 0 && n > prev+1 {
			fmt.Fprintf(w, "%s\n", p.Paint(p.Gutter, "..."))
		}
		prev = n
		num := p.Paint(p.Gutter, textutil.PadLeft(strconv.Itoa(n), gutterW))
		fmt.Fprintln(w, strings.TrimRight(fmt.Sprintf("%s %s %s", num, bar, textutil.ExpandTabs(text)), " "))
		if u := underline(f, n, text); u != "" {
			fmt.Fprintf(w, "%s %s %s\n", pad, bar, p.Paint(p.Kind(f.Kind), u))
		}
	}
	fmt.Fprintf(w, "%s %s\n", pad, bar)
	if first {
		fmt.Fprintf(w, "%s %s `%s`: %s\n", pad, p.Paint(p.Note, "= note:"), f.Lint, lint.Description)
	}
	fmt.Fprintln(w)
}

func showLine(f model.Finding, n int) bool {
	if len(f.Snippet) <= maxSnippetLines || n == f.Comment.StartLine || n == f.Comment.EndLine {
		return true
	}
	for _, m := range f.Markers {
		if m.StartLine == n {
			return true
		}
	}
	return false
}

// underline は n 行目のうちコメントに掛かる部分の下線を返します。
// TODO はコメント全体を '-'、出現箇所を '^' で、FIXME はコメント全体を '^' で示します。
func underline(f model.Finding, n int, text string) string {
	start, end := 0, len(text)
	if n == f.Comment.StartLine {
		start = f.Comment.StartCol - 1
	} else {
		start = len(text) - len(strings.TrimLeft(text, " \t"))
	}
	if n == f.Comment.EndLine {
		end = f.Comment.EndCol - 1
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		return ""
	}
	from := textutil.ColumnWidth(text, start)
	to := textutil.ColumnWidth(text, end)
	if to <= from {
		return ""
	}
	fill := "^"
	if len(f.Markers) > 0 {
		fill = "-"
	}
	buf := []byte(strings.Repeat(" ", from) + strings.Repeat(fill, to-from))
	for _, m := range f.Markers {
		if m.StartLine != n {
			continue
		}
		ms := textutil.ColumnWidth(text, m.StartCol-1)
		me := textutil.ColumnWidth(text, m.EndCol-1)
		for c := ms; c < me && c < len(buf); c++ {
			buf[c] = '^'
		}
	}
	return string(buf)
}

func writeSummary(w *bufio.Writer, res *engine.Result, p termcolor.Palette) {
	if res.Total == 0 {
		fmt.Fprintf(w, "no TODO or FIXME comments found (%s checked)\n", plural(res.Files, "file"))
		return
	}
	files := make(map[string]struct{})
	for _, f := range res.Findings {
		files[f.File] = struct{}{}
	}
	fmt.Fprintf(w, "%s%s\n", p.Paint(p.Warning, "warning"), p.Paint(p.Message, fmt.Sprintf(
		": %s (%d TODO, %d FIXME) in %s",
		plural(res.Total, "comment marker"),
		res.CountKind(lint.Todo.Text()),
		res.CountKind(lint.Fixme.Text()),
		plural(len(files), "file"),
	)))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
