package engine

import (
	"strings"

	"github.com/phyten/todolint/internal/lint"
	"github.com/phyten/todolint/internal/model"
	"github.com/phyten/todolint/internal/source"
)

// toFindings resolves event spans into line/column form.
func toFindings(f *source.File, lang string, events []lint.Event) []model.Finding {
	if len(events) == 0 {
		return nil
	}
	out := make([]model.Finding, 0, len(events))
	for _, ev := range events {
		comment := ev.Comment()
		fd := model.Finding{
			Lint:    ev.Lint,
			File:    f.Name,
			Lang:    lang,
			Kind:    ev.Kind.Text(),
			Message: ev.Message,
			Text:    commentText(f.Text(comment)),
			Comment: spanOf(f, comment),
		}
		fd.Snippet = snippet(f, fd.Comment)
		for _, m := range ev.Markers() {
			fd.Markers = append(fd.Markers, spanOf(f, m))
		}
		out = append(out, fd)
	}
	return out
}

func spanOf(f *source.File, sp source.Span) model.Span {
	s := f.Position(sp.Start)
	e := f.Position(sp.End)
	return model.Span{
		StartLine: s.Line,
		StartCol:  s.Col,
		EndLine:   e.Line,
		EndCol:    e.Col,
		ByteStart: f.Offset(sp.Start),
		ByteEnd:   f.Offset(sp.End),
	}
}

func snippet(f *source.File, sp model.Span) []string {
	lines := make([]string, 0, sp.EndLine-sp.StartLine+1)
	for n := sp.StartLine; n <= sp.EndLine; n++ {
		lines = append(lines, f.Line(n))
	}
	return lines
}

// commentText returns the first non-blank line of a comment, trimmed.
func commentText(raw []byte) string {
	for _, line := range strings.Split(string(raw), "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
