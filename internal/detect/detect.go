// Package detect maps file paths to language names and comment dialects.
package detect

import (
	"bytes"
	"path/filepath"
	"sort"
	"strings"

	"github.com/phyten/todolint/internal/lexer"
)

type Info struct {
	Name string
}

// FromPath detects the language from the file name alone.
func FromPath(p string) Info {
	return Info{Name: detectByPath(p)}
}

// FromPathAndContent falls back to the shebang line when the name says
// nothing, and rejects MATLAB sources that share the .m extension.
func FromPathAndContent(p string, data []byte) Info {
	name := detectByPath(p)
	if name != "" {
		if strings.EqualFold(filepath.Ext(p), ".m") && name == "objective-c" && looksLikeMatlab(data) {
			return Info{Name: ""}
		}
		return Info{Name: name}
	}
	if shebang := detectByShebang(data); shebang != "" {
		return Info{Name: shebang}
	}
	return Info{Name: ""}
}

// Dialect returns the comment dialect used to lex the named language.
func Dialect(name string) (*lexer.Dialect, bool) {
	d, ok := languageDialects[NormalizeLangName(name)]
	return d, ok
}

func detectByPath(p string) string {
	base := filepath.Base(p)
	lowerBase := strings.ToLower(base)
	if lang, ok := basenameLanguages[lowerBase]; ok {
		return lang
	}
	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" {
		return ""
	}
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return ""
}

func detectByShebang(data []byte) string {
	if len(data) == 0 || !bytes.HasPrefix(data, []byte("#!")) {
		return ""
	}
	end := bytes.IndexByte(data, '\n')
	if end == -1 {
		end = len(data)
	}
	line := strings.ToLower(string(data[:end]))
	for _, sb := range shebangLanguages {
		if strings.Contains(line, sb.key) {
			return sb.lang
		}
	}
	return ""
}

func NormalizeLangName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	if canon, ok := langAliases[n]; ok {
		return canon
	}
	return n
}

func MatchesLang(info Info, allow []string) bool {
	if len(allow) == 0 {
		return true
	}
	detected := NormalizeLangName(info.Name)
	if detected == "" {
		return false
	}
	for _, raw := range allow {
		if NormalizeLangName(raw) == detected {
			return true
		}
	}
	return false
}

// KnownLanguage reports whether name has a comment dialect.
func KnownLanguage(name string) bool {
	if name == "" {
		return false
	}
	_, ok := Dialect(name)
	return ok
}

// Languages returns every language with a dialect, sorted.
func Languages() []string {
	out := make([]string, 0, len(languageDialects))
	for name := range languageDialects {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var basenameLanguages = map[string]string{
	"jenkinsfile":     "groovy",
	"build.gradle":    "groovy",
	"settings.gradle": "groovy",
}

var extensionLanguages = map[string]string{
	".rs":      "rust",
	".go":      "go",
	".c":       "c",
	".h":       "c",
	".cc":      "cpp",
	".cp":      "cpp",
	".cpp":     "cpp",
	".cxx":     "cpp",
	".hh":      "cpp",
	".hpp":     "cpp",
	".hxx":     "cpp",
	".m":       "objective-c",
	".mm":      "objective-cpp",
	".cs":      "csharp",
	".java":    "java",
	".kt":      "kotlin",
	".kts":     "kotlin",
	".scala":   "scala",
	".groovy":  "groovy",
	".gradle":  "groovy",
	".swift":   "swift",
	".dart":    "dart",
	".proto":   "proto",
	".thrift":  "thrift",
	".zig":     "zig",
	".v":       "verilog",
	".vh":      "verilog",
	".sv":      "systemverilog",
	".svh":     "systemverilog",
	".apex":    "apex",
	".cls":     "apex",
	".trigger": "apex",
	".js":      "javascript",
	".mjs":     "javascript",
	".cjs":     "javascript",
	".jsx":     "javascriptreact",
	".ts":      "typescript",
	".mts":     "typescript",
	".cts":     "typescript",
	".tsx":     "typescriptreact",
}

var langAliases = map[string]string{
	"rs":     "rust",
	"golang": "go",
	"c#":     "csharp",
	"cs":     "csharp",
	"c++":    "cpp",
	"cc":     "cpp",
	"h++":    "cpp",
	"hpp":    "cpp",
	"hh":     "cpp",
	"objc":   "objective-c",
	"js":     "javascript",
	"mjs":    "javascript",
	"cjs":    "javascript",
	"jsx":    "javascriptreact",
	"ts":     "typescript",
	"tsx":    "typescriptreact",
	"kt":     "kotlin",
}

func looksLikeMatlab(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	sample := data
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	lines := strings.Split(string(sample), "\n")
	sawMatlabKeyword := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%") {
			continue
		}
		lower := strings.ToLower(trimmed)
		if strings.HasPrefix(lower, "@interface") || strings.HasPrefix(lower, "@implementation") || strings.HasPrefix(lower, "#import") {
			return false
		}
		if strings.HasPrefix(lower, "function") || strings.HasPrefix(lower, "classdef") {
			return true
		}
		if strings.HasPrefix(lower, "properties") || strings.HasPrefix(lower, "methods") {
			sawMatlabKeyword = true
		}
	}
	return sawMatlabKeyword
}

func CanonicalDetectLangs(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		norm := NormalizeLangName(raw)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

var shebangLanguages = []struct {
	key  string
	lang string
}{
	{"rust-script", "rust"},
	{"gorun", "go"},
	{"ts-node", "typescript"},
	{"node", "javascript"},
	{"deno", "javascript"},
	{"bun", "javascript"},
}

var languageDialects = map[string]*lexer.Dialect{
	"rust":            lexer.Rust,
	"go":              lexer.Go,
	"c":               lexer.C,
	"cpp":             lexer.C,
	"objective-c":     lexer.C,
	"objective-cpp":   lexer.C,
	"csharp":          lexer.C,
	"java":            lexer.C,
	"kotlin":          lexer.C,
	"scala":           lexer.C,
	"groovy":          lexer.C,
	"swift":           lexer.C,
	"dart":            lexer.C,
	"proto":           lexer.C,
	"thrift":          lexer.C,
	"zig":             lexer.C,
	"verilog":         lexer.C,
	"systemverilog":   lexer.C,
	"apex":            lexer.C,
	"javascript":      lexer.JS,
	"javascriptreact": lexer.JS,
	"typescript":      lexer.JS,
	"typescriptreact": lexer.JS,
}
