package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/phyten/todolint/internal/model"
)

type SortKey struct {
	Name string
	Desc bool
}

type SortSpec struct {
	Keys []SortKey
}

// ParseSortSpec parses "kind,-file" style specs. A leading '-' sorts that key
// in descending order; "location" expands to file, line and col.
func ParseSortSpec(raw string) (SortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SortSpec{}, nil
	}
	parts := strings.Split(raw, ",")
	keys := make([]SortKey, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			return SortSpec{}, fmt.Errorf("invalid sort key: empty segment")
		}
		desc := false
		switch token[0] {
		case '+':
			token = token[1:]
		case '-':
			desc = true
			token = token[1:]
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return SortSpec{}, fmt.Errorf("invalid sort key: sign without name")
		}
		name := strings.ToLower(token)
		switch name {
		case "type":
			name = "kind"
		case "column":
			name = "col"
		case "location":
			keys = append(keys, SortKey{Name: "file", Desc: desc}, SortKey{Name: "line", Desc: desc}, SortKey{Name: "col", Desc: desc})
			continue
		case "kind", "file", "line", "col", "lang":
			// accepted as is
		default:
			return SortSpec{}, fmt.Errorf("invalid sort key: %s", token)
		}
		keys = append(keys, SortKey{Name: name, Desc: desc})
	}
	return SortSpec{Keys: keys}, nil
}

// ApplySort orders findings by spec, breaking ties by file, line and column.
// An empty spec keeps the engine order.
func ApplySort(findings []model.Finding, spec SortSpec) {
	if len(spec.Keys) == 0 {
		return
	}
	keys := append(append([]SortKey{}, spec.Keys...), SortKey{Name: "file"}, SortKey{Name: "line"}, SortKey{Name: "col"})
	sort.SliceStable(findings, func(i, j int) bool {
		a := &findings[i]
		b := &findings[j]
		for _, key := range keys {
			if c := compareKey(a, b, key.Name); c != 0 {
				if key.Desc {
					return c > 0
				}
				return c < 0
			}
		}
		return false
	})
}

func compareKey(a, b *model.Finding, name string) int {
	switch name {
	case "kind":
		return strings.Compare(a.Kind, b.Kind)
	case "file":
		return strings.Compare(a.File, b.File)
	case "lang":
		return strings.Compare(a.Lang, b.Lang)
	case "line":
		return a.Line() - b.Line()
	case "col":
		return a.Col() - b.Col()
	default:
		return 0
	}
}
