package lint

import "github.com/phyten/todolint/internal/source"

// Span returns the span enclosing the whole comment.
func (c Comment) Span() source.Span {
	return source.Span{Start: c.Start, End: c.End}
}

// MarkerSpan converts an offset within the comment text into the absolute
// span of a marker of length n starting there.
func (c Comment) MarkerSpan(off, n int) source.Span {
	start := c.Start + source.Pos(off)
	return source.Span{Start: start, End: start + source.Pos(n)}
}
