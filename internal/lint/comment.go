package lint

import (
	"github.com/phyten/todolint/internal/source"
	"github.com/phyten/todolint/internal/token"
)

// Comment is one comment token with its absolute bounds and raw text.
type Comment struct {
	Start source.Pos
	End   source.Pos
	Text  []byte
}

// extractComment returns the comment for tok, or false for non-comment
// tokens. rel is the token's offset into src.
func extractComment(src []byte, rel int, start source.Pos, tok token.Token) (Comment, bool) {
	if !tok.Kind.IsComment() {
		return Comment{}, false
	}
	return Comment{
		Start: start,
		End:   start + source.Pos(tok.Len),
		Text:  src[rel : rel+tok.Len],
	}, true
}
