package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/todolint/internal/token"
)

type piece struct {
	kind token.Kind
	text string
}

func lex(t *testing.T, src string, d *Dialect) []piece {
	t.Helper()
	toks := Tokenize([]byte(src), d)
	require.Equal(t, len(src), token.TotalLen(toks), "tokens must cover the source")
	out := make([]piece, 0, len(toks))
	pos := 0
	for _, tok := range toks {
		require.Positive(t, tok.Len)
		out = append(out, piece{kind: tok.Kind, text: src[pos : pos+tok.Len]})
		pos += tok.Len
	}
	return out
}

func comments(ps []piece) []string {
	var out []string
	for _, p := range ps {
		if p.kind.IsComment() {
			out = append(out, p.text)
		}
	}
	return out
}

func TestTokenizeLineAndBlock(t *testing.T) {
	src := "fn main() { // TODO: x\n    let y = 1; /* FIXME */ }\n"
	got := lex(t, src, Rust)
	assert.Equal(t, []piece{
		{token.Other, "fn main() { "},
		{token.LineComment, "// TODO: x"},
		{token.Other, "\n    let y = 1; "},
		{token.BlockComment, "/* FIXME */"},
		{token.Other, " }\n"},
	}, got)
}

func TestTokenizeRustNestedBlock(t *testing.T) {
	src := "/* outer /* inner */ still outer */x"
	got := lex(t, src, Rust)
	require.Len(t, got, 2)
	assert.Equal(t, piece{token.BlockComment, "/* outer /* inner */ still outer */"}, got[0])

	got = lex(t, src, C)
	assert.Equal(t, piece{token.BlockComment, "/* outer /* inner */"}, got[0])
}

func TestTokenizeStringsHideMarkers(t *testing.T) {
	cases := []struct {
		name string
		d    *Dialect
		src  string
		want []string
	}{
		{"rust string", Rust, `let s = "// not a comment"; // real`, []string{"// real"}},
		{"rust escaped quote", Rust, `let s = "a\"// no"; /* yes */`, []string{"/* yes */"}},
		{"rust raw string", Rust, `let s = r#"say "// no""#; // yes`, []string{"// yes"}},
		{"rust byte raw string", Rust, `let s = br"/* no */"; // yes`, []string{"// yes"}},
		{"rust multiline string", Rust, "let s = \"a\n// no\n\"; // yes", []string{"// yes"}},
		{"go raw string", Go, "s := `/* no\n// no` // yes", []string{"// yes"}},
		{"go rune", Go, `r := '"' // yes`, []string{"// yes"}},
		{"c char", C, `char c = '/'; // yes`, []string{"// yes"}},
		{"js template", JS, "const s = `a\\`// no` // yes", []string{"// yes"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, comments(lex(t, tc.src, tc.d)))
		})
	}
}

func TestTokenizeRustLifetimes(t *testing.T) {
	src := "fn f<'a>(x: &'a str) -> char { 'x' } // TODO\nlet c = '\\''; // FIXME"
	got := lex(t, src, Rust)
	assert.Equal(t, []string{"// TODO", "// FIXME"}, comments(got))

	var strs []string
	for _, p := range got {
		if p.kind == token.String {
			strs = append(strs, p.text)
		}
	}
	assert.Equal(t, []string{"'x'", `'\''`}, strs)
}

func TestTokenizeRawIdentifierIsNotAString(t *testing.T) {
	got := lex(t, "let r#type = 1; // ok", Rust)
	assert.Equal(t, []string{"// ok"}, comments(got))
}

func TestTokenizeCDigitSeparators(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"decimal", "int x = 1'000; // TODO cpp", []string{"// TODO cpp"}},
		{"hex", "auto m = 0xFF'FF; /* FIXME */", []string{"/* FIXME */"}},
		{"repeated", "long n = 1'000'000; // TODO", []string{"// TODO"}},
		{"char still a string", "char c = 'a'; char d = '/'; // TODO", []string{"// TODO"}},
		{"prefixed char", "auto c = u8'a'; // TODO", []string{"// TODO"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, comments(lex(t, tc.src, C)))
		})
	}

	got := lex(t, "char c = u8'/'; x", C)
	assert.Contains(t, got, piece{token.String, "'/'"})
}

func TestTokenizeJSRegexLiterals(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"quote in regex", `const r = /"/g; // TODO js`, []string{"// TODO js"}},
		{"slash in class", `s.replace(/[/"]/, "") // TODO`, []string{"// TODO"}},
		{"escaped slash", `if (/\/'/.test(s)) {} // FIXME`, []string{"// FIXME"}},
		{"start of input", `/'/.test(s) // TODO`, []string{"// TODO"}},
		{"division", "const q = a / b // TODO", []string{"// TODO"}},
		{"division after paren", "const q = (a) / 2 / c; // TODO", []string{"// TODO"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, comments(lex(t, tc.src, JS)))
		})
	}

	got := lex(t, `x = /a"b/gi; y`, JS)
	assert.Equal(t, piece{token.String, `/a"b/gi`}, got[1])

	// 閉じない正規表現はただのコードとして扱う
	got = lex(t, "x = / 2\n// TODO", JS)
	assert.Equal(t, []string{"// TODO"}, comments(got))
}

func TestNextReusesLookahead(t *testing.T) {
	src := []byte("let x = 1; /* a */\"s\"// b\nz")
	l := New(src, Rust)

	tok, ok := l.Next()
	require.True(t, ok)
	assert.Equal(t, token.Token{Kind: token.Other, Len: len("let x = 1; ")}, tok)
	require.True(t, l.ahead.ok)
	assert.Equal(t, l.pos, l.ahead.at)

	tok, _ = l.Next()
	assert.Equal(t, token.Token{Kind: token.BlockComment, Len: len("/* a */")}, tok)
	assert.False(t, l.ahead.ok)

	rest := token.Collect(l)
	assert.Equal(t, []token.Token{
		{Kind: token.String, Len: 3},
		{Kind: token.LineComment, Len: 4},
		{Kind: token.Other, Len: 2},
	}, rest)
}

func TestTokenizeUnterminated(t *testing.T) {
	got := lex(t, "x /* never closed\n// TODO", Rust)
	assert.Equal(t, piece{token.BlockComment, "/* never closed\n// TODO"}, got[1])

	got = lex(t, "s = \"open\n// TODO", C)
	assert.Equal(t, []string{"// TODO"}, comments(got))

	got = lex(t, "s = \"open\n// TODO", Rust)
	assert.Empty(t, comments(got))
}

func TestTokenizeEmptyAndNilDialect(t *testing.T) {
	assert.Empty(t, Tokenize(nil, Rust))
	assert.Empty(t, Tokenize([]byte{}, Go))
	assert.Equal(t, []token.Token{{Kind: token.Other, Len: 7}}, Tokenize([]byte("// TODO"), nil))
}

func TestTokenizeCRLF(t *testing.T) {
	got := lex(t, "a // TODO\r\nb", Go)
	assert.Equal(t, []string{"// TODO\r"}, comments(got))
}

func TestByName(t *testing.T) {
	for _, d := range Dialects() {
		got, ok := ByName(d.Name())
		require.True(t, ok)
		assert.Same(t, d, got)
	}
	_, ok := ByName("python")
	assert.False(t, ok)
}
