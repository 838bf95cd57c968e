// Package lint flags leftover TODO and FIXME markers in comments.
//
// The checker does not tokenize. It walks a token.Stream produced by some
// lexer, tracks the absolute position of every token, and searches the raw
// text of each comment token, delimiters included, for the markers. Matching
// is case-insensitive over ASCII and not word-boundary aware, so "TodoList"
// counts as a TODO.
//
// Each comment yields at most two events:
//
//   - "TODO found in comment": the comment span followed by one span per
//     TODO occurrence, left to right.
//   - "FIXME found in comment": the comment span only, however many FIXMEs
//     the comment holds.
//
// Events go to a Sink. Rendering, severity and suppression belong to the
// caller.
package lint
