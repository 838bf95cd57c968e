package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/todolint/internal/model"
)

type Field struct {
	Key    string
	Header string
}

type FieldSelection struct {
	Fields []Field
}

type fieldMeta struct {
	key    string
	header string
}

var fieldRegistry = map[string]fieldMeta{
	"kind":     {key: "kind", header: "KIND"},
	"type":     {key: "kind", header: "KIND"},
	"lint":     {key: "lint", header: "LINT"},
	"file":     {key: "file", header: "FILE"},
	"line":     {key: "line", header: "LINE"},
	"col":      {key: "col", header: "COL"},
	"column":   {key: "col", header: "COL"},
	"location": {key: "location", header: "LOCATION"},
	"end":      {key: "end", header: "END"},
	"lang":     {key: "lang", header: "LANG"},
	"message":  {key: "message", header: "MESSAGE"},
	"text":     {key: "text", header: "TEXT"},
	"comment":  {key: "text", header: "TEXT"},
	"markers":  {key: "markers", header: "MARKERS"},
}

// DefaultFields は --fields 未指定時の列です。
var DefaultFields = []string{"kind", "location", "text"}

// ResolveFields parses a comma separated field list. An empty list selects
// DefaultFields.
func ResolveFields(raw string) (FieldSelection, error) {
	raw = strings.TrimSpace(raw)
	var names []string
	if raw == "" {
		names = DefaultFields
	} else {
		names = strings.Split(raw, ",")
	}
	sel := FieldSelection{Fields: make([]Field, 0, len(names))}
	for _, part := range names {
		name := strings.TrimSpace(part)
		if name == "" {
			return FieldSelection{}, fmt.Errorf("invalid fields: empty entry")
		}
		meta, ok := fieldRegistry[strings.ToLower(name)]
		if !ok {
			return FieldSelection{}, fmt.Errorf("unknown field: %s", name)
		}
		sel.Fields = append(sel.Fields, Field{Key: meta.key, Header: meta.header})
	}
	return sel, nil
}

// Has reports whether key is among the selected fields.
func (s FieldSelection) Has(key string) bool {
	for _, f := range s.Fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Header
	}
	return out
}

func RowValues(f model.Finding, fields []Field) []string {
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = formatFieldValue(f, field.Key)
	}
	return out
}

func formatFieldValue(f model.Finding, key string) string {
	switch key {
	case "kind":
		return f.Kind
	case "lint":
		return f.Lint
	case "file":
		return f.File
	case "line":
		return strconv.Itoa(f.Line())
	case "col":
		return strconv.Itoa(f.Col())
	case "location":
		return fmt.Sprintf("%s:%d:%d", f.File, f.Line(), f.Col())
	case "end":
		return fmt.Sprintf("%d:%d", f.Comment.EndLine, f.Comment.EndCol)
	case "lang":
		return f.Lang
	case "message":
		return f.Message
	case "text":
		return f.Text
	case "markers":
		parts := make([]string, 0, len(f.Markers))
		for _, m := range f.Markers {
			parts = append(parts, fmt.Sprintf("%d:%d", m.StartLine, m.StartCol))
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}
