// Package token defines the token stream contract between a lexer and the
// comment checker. A stream is an ordered sequence of (kind, length) pairs
// that covers the source text contiguously, with no gaps.
package token
