package lint

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/phyten/todolint/internal/source"
)

// Cursor tracks the absolute start of the next token.
type Cursor struct {
	base source.Pos
	pos  source.Pos
}

func NewCursor(base source.Pos) Cursor {
	return Cursor{base: base, pos: base}
}

// Pos returns the absolute start of the next token.
func (c *Cursor) Pos() source.Pos { return c.pos }

// Offset returns the start of the next token relative to the base.
func (c *Cursor) Offset() int { return int(c.pos - c.base) }

// Advance consumes a token of n bytes and returns where it started.
// A length that does not fit the position space is a lexer contract
// violation and panics.
func (c *Cursor) Advance(n int) source.Pos {
	delta, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("lint: token length %d: %w", n, err))
	}
	start := c.pos
	next := start + source.Pos(delta)
	if next < start {
		panic(fmt.Errorf("lint: position overflow at %d advancing %d", start, n))
	}
	c.pos = next
	return start
}
