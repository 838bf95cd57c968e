package lint

import "github.com/phyten/todolint/internal/source"

// Name is the lint identifier attached to every event.
const Name = "todo_in_comments"

// Description summarizes what the lint detects.
const Description = "detects TODO and FIXME comments"

// Group is the lint group the check belongs to. It is off by default in
// compiler-integrated runs.
const Group = "pedantic"

// DocsURL points at the upstream documentation of the lint.
const DocsURL = "https://rust-lang.github.io/rust-clippy/master/index.html#todo_in_comments"

// Explanation is the long-form help shown by the explain command.
const Explanation = `### What it does
Checks comments for leftover TODOs and FIXMEs.

### Why is this bad?
If any comments are still marked as TODO or FIXME, code might not be ready
for production yet.

### Example
` + "```" + `
// TODO write a better error for this function
fn do_something() {
    panic!("Generic error")
}
` + "```" + `
`

// Event is one reported finding. Spans[0] is always the enclosing comment.
type Event struct {
	Lint    string
	Message string
	Kind    MarkerKind
	Spans   []source.Span
}

// Comment returns the enclosing comment span.
func (e Event) Comment() source.Span {
	if len(e.Spans) == 0 {
		return source.Span{}
	}
	return e.Spans[0]
}

// Markers returns the per-occurrence spans; empty for FIXME events.
func (e Event) Markers() []source.Span {
	if len(e.Spans) < 2 {
		return nil
	}
	return e.Spans[1:]
}

// group reports the TODO and FIXME events for one comment, TODO first.
func group(c Comment, sink Sink) {
	if hits := FindAll(c.Text, todoMarker); len(hits) > 0 {
		spans := make([]source.Span, 0, len(hits)+1)
		spans = append(spans, c.Span())
		for _, off := range hits {
			spans = append(spans, c.MarkerSpan(off, len(todoMarker)))
		}
		sink.Emit(Event{Lint: Name, Message: Todo.Message(), Kind: Todo, Spans: spans})
	}
	if Contains(c.Text, fixmeMarker) {
		sink.Emit(Event{Lint: Name, Message: Fixme.Message(), Kind: Fixme, Spans: []source.Span{c.Span()}})
	}
}
