package lint

import (
	"github.com/phyten/todolint/internal/source"
	"github.com/phyten/todolint/internal/token"
)

// Sink receives events as they are produced.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// Collector appends every event it receives.
type Collector struct {
	Events []Event
}

func (c *Collector) Emit(e Event) { c.Events = append(c.Events, e) }

// Check walks tokens over src, which starts at base, and emits an event for
// every comment holding a marker. A nil src or stream produces nothing.
func Check(base source.Pos, src []byte, tokens token.Stream, sink Sink) {
	if src == nil || tokens == nil || sink == nil {
		return
	}
	cur := NewCursor(base)
	for {
		tok, ok := tokens.Next()
		if !ok {
			return
		}
		rel := cur.Offset()
		start := cur.Advance(tok.Len)
		if c, ok := extractComment(src, rel, start, tok); ok {
			group(c, sink)
		}
	}
}

// CheckFile runs Check over f at its base.
func CheckFile(f *source.File, tokens token.Stream, sink Sink) {
	if f == nil {
		return
	}
	Check(f.Base, f.Content, tokens, sink)
}

// Collect runs Check and returns the events.
func Collect(base source.Pos, src []byte, tokens token.Stream) []Event {
	var c Collector
	Check(base, src, tokens, &c)
	return c.Events
}
