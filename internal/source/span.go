package source

import "fmt"

// Pos is an absolute byte offset in the coordinate space of a FileSet.
// Pos(0) is never a valid position inside a file registered with a FileSet.
type Pos uint32

// Span is a half-open byte range [Start, End).
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() int {
	return int(s.End - s.Start)
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Overlaps reports whether the two spans share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Rel moves s by -base, producing offsets relative to base.
func (s Span) Rel(base Pos) Span {
	return Span{Start: s.Start - base, End: s.End - base}
}

// Abs moves a base-relative span into absolute coordinates.
func (s Span) Abs(base Pos) Span {
	return Span{Start: s.Start + base, End: s.End + base}
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}
