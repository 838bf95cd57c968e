// Package lexer splits source text into the coarse tokens the comment
// checker needs: line comments, block comments, strings, and everything else.
package lexer

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/phyten/todolint/internal/token"
)

// Lexer produces a token.Stream over src. Tokens cover src contiguously.
// Runs of code between comments and strings come out as a single Other token.
type Lexer struct {
	src []byte
	d   *Dialect
	pos int
	// ahead is the comment or string that ended the last Other run.
	ahead match
}

type match struct {
	at, end int
	kind    token.Kind
	ok      bool
}

// New returns a lexer for src. A nil dialect yields the whole source as one
// Other token.
func New(src []byte, d *Dialect) *Lexer {
	return &Lexer{src: src, d: d}
}

// Tokenize lexes src completely.
func Tokenize(src []byte, d *Dialect) []token.Token {
	return token.Collect(New(src, d))
}

func (l *Lexer) Next() (token.Token, bool) {
	if l.pos >= len(l.src) {
		return token.Token{}, false
	}
	start := l.pos
	if l.d == nil {
		l.pos = len(l.src)
		return token.Token{Kind: token.Other, Len: l.pos - start}, true
	}
	if m := l.ahead; m.ok && m.at == start {
		l.ahead = match{}
		l.pos = m.end
		return token.Token{Kind: m.kind, Len: m.end - start}, true
	}
	if kind, end, ok := l.special(start); ok {
		l.pos = end
		return token.Token{Kind: kind, Len: end - start}, true
	}
	i := start + 1
	for i < len(l.src) {
		if kind, end, ok := l.special(i); ok {
			l.ahead = match{at: i, end: end, kind: kind, ok: true}
			break
		}
		i++
	}
	l.pos = i
	return token.Token{Kind: token.Other, Len: i - start}, true
}

// special reports whether a comment or string begins at i and where it ends.
func (l *Lexer) special(i int) (token.Kind, int, bool) {
	src, d := l.src, l.d
	c := src[i]
	switch {
	case hasPrefixAt(src, i, d.linePrefix):
		return token.LineComment, lineEnd(src, i), true
	case hasPrefixAt(src, i, d.blockStart):
		return token.BlockComment, l.blockCommentEnd(i), true
	}
	if d.rustLiterals {
		if (c == 'r' || c == 'b' || c == 'c') && !identBefore(src, i) {
			if end, ok := rawStringEnd(src, i); ok {
				return token.String, end, true
			}
		}
		if c == '\'' {
			if end, ok := charLiteralEnd(src, i); ok {
				return token.String, end, true
			}
			return token.Other, 0, false
		}
	}
	if d.digitSeparators && c == '\'' && digitSeparatorAt(src, i) {
		return token.Other, 0, false
	}
	if d.regexLiterals && c == '/' && operandAt(src, i) {
		if end, ok := regexEnd(src, i); ok {
			return token.String, end, true
		}
		return token.Other, 0, false
	}
	if strings.IndexByte(d.quotes, c) >= 0 {
		return token.String, quotedEnd(src, i, c, d.multilineQuotes), true
	}
	if d.rawQuote != 0 && c == d.rawQuote {
		return token.String, rawQuotedEnd(src, i, c, d.rawEscapes), true
	}
	return token.Other, 0, false
}

func (l *Lexer) blockCommentEnd(i int) int {
	src, d := l.src, l.d
	depth := 0
	j := i
	for j < len(src) {
		switch {
		case hasPrefixAt(src, j, d.blockStart) && (depth == 0 || d.nestedBlocks):
			depth++
			j += len(d.blockStart)
		case hasPrefixAt(src, j, d.blockEnd):
			depth--
			j += len(d.blockEnd)
			if depth == 0 {
				return j
			}
		default:
			j++
		}
	}
	return len(src)
}

// lineEnd returns the offset of the newline ending the line at i, or EOF.
func lineEnd(src []byte, i int) int {
	if n := bytes.IndexByte(src[i:], '\n'); n >= 0 {
		return i + n
	}
	return len(src)
}

func quotedEnd(src []byte, i int, q byte, multiline bool) int {
	j := i + 1
	for j < len(src) {
		switch src[j] {
		case '\\':
			j += 2
			continue
		case q:
			return j + 1
		case '\n':
			if !multiline {
				return j
			}
		}
		j++
	}
	return len(src)
}

func rawQuotedEnd(src []byte, i int, q byte, escapes bool) int {
	j := i + 1
	for j < len(src) {
		if escapes && src[j] == '\\' {
			j += 2
			continue
		}
		if src[j] == q {
			return j + 1
		}
		j++
	}
	return len(src)
}

// rawStringEnd matches r"…", r#"…"#, br"…" and cr"…" at i.
func rawStringEnd(src []byte, i int) (int, bool) {
	j := i
	if src[j] == 'b' || src[j] == 'c' {
		j++
	}
	if j >= len(src) || src[j] != 'r' {
		return 0, false
	}
	j++
	hashes := 0
	for j < len(src) && src[j] == '#' {
		hashes++
		j++
	}
	if j >= len(src) || src[j] != '"' {
		return 0, false
	}
	j++
	closing := "\"" + strings.Repeat("#", hashes)
	n := bytes.Index(src[j:], []byte(closing))
	if n < 0 {
		return len(src), true
	}
	return j + n + len(closing), true
}

// charLiteralEnd tells 'x' and '\n' apart from a lifetime such as 'a.
func charLiteralEnd(src []byte, i int) (int, bool) {
	j := i + 1
	if j >= len(src) || src[j] == '\n' {
		return 0, false
	}
	if src[j] == '\\' {
		j += 2
		for j < len(src) && src[j] != '\n' {
			if src[j] == '\'' {
				return j + 1, true
			}
			j++
		}
		return 0, false
	}
	_, size := utf8.DecodeRune(src[j:])
	j += size
	if j < len(src) && src[j] == '\'' {
		return j + 1, true
	}
	return 0, false
}

// digitSeparatorAt reports whether the ' at i sits inside a number literal
// such as 1'000 or 0xFF'FF. The literal must start with a digit, so u8'a'
// and L'x' stay character literals.
func digitSeparatorAt(src []byte, i int) bool {
	if i == 0 || i+1 >= len(src) || !hexOrUnderscore(src[i-1]) || !hexOrUnderscore(src[i+1]) {
		return false
	}
	j := i
	for j > 0 && (identByte(src[j-1]) || src[j-1] == '\'') {
		j--
	}
	return '0' <= src[j] && src[j] <= '9'
}

func hexOrUnderscore(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// operandAt reports whether a / at i is where an expression starts, in which
// case it opens a regex literal rather than a division.
func operandAt(src []byte, i int) bool {
	j := i - 1
	for j >= 0 && (src[j] == ' ' || src[j] == '\t' || src[j] == '\r' || src[j] == '\n') {
		j--
	}
	return j < 0 || strings.IndexByte("(,=:[!&|?{};", src[j]) >= 0
}

// regexEnd scans /body/flags at i. A newline before the closing slash means
// it was not a regex after all.
func regexEnd(src []byte, i int) (int, bool) {
	j := i + 1
	class := false
	for j < len(src) {
		switch c := src[j]; {
		case c == '\n':
			return 0, false
		case c == '\\':
			j += 2
			continue
		case c == '[':
			class = true
		case c == ']':
			class = false
		case c == '/' && !class:
			j++
			for j < len(src) && ('a' <= src[j] && src[j] <= 'z' || 'A' <= src[j] && src[j] <= 'Z') {
				j++
			}
			return j, true
		}
		j++
	}
	return 0, false
}

func hasPrefixAt(src []byte, i int, prefix string) bool {
	if prefix == "" || len(src)-i < len(prefix) {
		return false
	}
	return string(src[i:i+len(prefix)]) == prefix
}

func identBefore(src []byte, i int) bool {
	if i == 0 {
		return false
	}
	return identByte(src[i-1])
}

func identByte(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
