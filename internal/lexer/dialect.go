package lexer

// Dialect describes the comment and string grammar of a language family.
// Every dialect uses "//" line comments and "/* */" block comments; they
// differ in how strings are quoted, which decides where a comment can start.
type Dialect struct {
	name       string
	linePrefix string
	blockStart string
	blockEnd   string
	// nestedBlocks allows "/* /* */ */" to close at the outer delimiter.
	nestedBlocks bool
	// quotes are string delimiters honouring backslash escapes.
	quotes string
	// multilineQuotes lets quoted strings run past a newline.
	multilineQuotes bool
	// rawQuote is a multi-line delimiter such as a Go backtick; 0 if none.
	rawQuote byte
	// rawEscapes honours backslash escapes inside rawQuote strings (JS templates).
	rawEscapes bool
	// rustLiterals enables r#"…"# raw strings and tells char literals from lifetimes.
	rustLiterals bool
	// digitSeparators reads the ' in 1'000 or 0xFF'FF as part of the number (C++14).
	digitSeparators bool
	// regexLiterals lexes /…/flags in operand position as a string.
	regexLiterals bool
}

var (
	Rust = &Dialect{
		name:            "rust",
		linePrefix:      "//",
		blockStart:      "/*",
		blockEnd:        "*/",
		nestedBlocks:    true,
		quotes:          "\"",
		multilineQuotes: true,
		rustLiterals:    true,
	}
	Go = &Dialect{
		name:       "go",
		linePrefix: "//",
		blockStart: "/*",
		blockEnd:   "*/",
		quotes:     "\"'",
		rawQuote:   '`',
	}
	C = &Dialect{
		name:            "c",
		linePrefix:      "//",
		blockStart:      "/*",
		blockEnd:        "*/",
		quotes:          "\"'",
		digitSeparators: true,
	}
	JS = &Dialect{
		name:          "js",
		linePrefix:    "//",
		blockStart:    "/*",
		blockEnd:      "*/",
		quotes:        "\"'",
		rawQuote:      '`',
		rawEscapes:    true,
		regexLiterals: true,
	}
)

// Name returns the dialect identifier ("rust", "go", "c", "js").
func (d *Dialect) Name() string {
	if d == nil {
		return ""
	}
	return d.name
}

func (d *Dialect) String() string { return d.Name() }

// Dialects lists every built-in dialect.
func Dialects() []*Dialect {
	return []*Dialect{Rust, Go, C, JS}
}

// ByName looks up a built-in dialect by its Name.
func ByName(name string) (*Dialect, bool) {
	for _, d := range Dialects() {
		if d.name == name {
			return d, true
		}
	}
	return nil, false
}
