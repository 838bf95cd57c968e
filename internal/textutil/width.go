package textutil

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// TabWidth is the number of columns a tab expands to in rendered snippets.
const TabWidth = 4

// ANSI escape sequences (covers common CSI and OSC forms).
var ansiRe = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// StripANSI removes terminal escape sequences from s.
func StripANSI(s string) string {
	if s == "" || !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return ansiRe.ReplaceAllString(s, "")
}

// VisibleWidth returns terminal display width (wcwidth-based).
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	g := uniseg.NewGraphemes(StripANSI(s))
	width := 0
	for g.Next() {
		width += graphemeWidth(g.Str())
	}
	return width
}

// ColumnWidth は line の先頭から byteOff バイト目までの表示幅を返します。
// タブは TabWidth 桁に、制御文字は 0 桁に数えます。byteOff が文字の途中を
// 指す場合はその文字を含めません。
func ColumnWidth(line string, byteOff int) int {
	if byteOff <= 0 || line == "" {
		return 0
	}
	if byteOff > len(line) {
		byteOff = len(line)
	}
	g := uniseg.NewGraphemes(line)
	width := 0
	for g.Next() {
		_, end := g.Positions()
		if end > byteOff {
			break
		}
		width += graphemeWidth(g.Str())
	}
	return width
}

// ExpandTabs replaces tabs with TabWidth spaces so that rendered columns match
// ColumnWidth.
func ExpandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", TabWidth))
}

// SingleLine collapses line breaks and tabs into single spaces for tabular
// cells.
func SingleLine(s string) string {
	if !strings.ContainsAny(s, "\r\n\t") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', '\t':
			return ' '
		}
		return r
	}, s)
}

// TruncateByWidth truncates s to fit width w without breaking graphemes.
// If truncation happens and ellipsis is not empty, append it when it fits.
// w <= 0 means no limit.
func TruncateByWidth(s string, w int, ellipsis string) string {
	if s == "" || w <= 0 || VisibleWidth(s) <= w {
		return s
	}
	ellW := VisibleWidth(ellipsis)
	if ellW > w {
		ellipsis, ellW = "", 0
	}
	limit := w - ellW
	g := uniseg.NewGraphemes(StripANSI(s))
	var b strings.Builder
	used := 0
	for g.Next() {
		segW := graphemeWidth(g.Str())
		if used+segW > limit {
			break
		}
		b.WriteString(g.Str())
		used += segW
	}
	return b.String() + ellipsis
}

// PadRight pads s on the right with spaces so that the visible width equals w.
func PadRight(s string, w int) string {
	pad := w - VisibleWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}

// PadLeft pads s on the left with spaces so that the visible width equals w.
func PadLeft(s string, w int) string {
	pad := w - VisibleWidth(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

func graphemeWidth(seg string) int {
	if seg == "\t" {
		return TabWidth
	}
	return runewidth.StringWidth(seg)
}
