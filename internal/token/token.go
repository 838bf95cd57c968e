package token

// Token is a classified, contiguous byte range of source text. The position is
// implied by the lengths of the tokens before it.
type Token struct {
	Kind Kind
	Len  int
}

// Stream yields tokens in source order. ok is false once the stream is drained.
type Stream interface {
	Next() (tok Token, ok bool)
}

// SliceStream replays a pre-computed token slice.
type SliceStream struct {
	toks []Token
	pos  int
}

// FromSlice wraps toks as a Stream. The slice is not copied.
func FromSlice(toks []Token) *SliceStream {
	return &SliceStream{toks: toks}
}

func (s *SliceStream) Next() (Token, bool) {
	if s == nil || s.pos >= len(s.toks) {
		return Token{}, false
	}
	t := s.toks[s.pos]
	s.pos++
	return t, true
}

// Collect drains s into a slice.
func Collect(s Stream) []Token {
	if s == nil {
		return nil
	}
	var out []Token
	for {
		t, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, t)
	}
}

// TotalLen sums the lengths of toks.
func TotalLen(toks []Token) int {
	n := 0
	for _, t := range toks {
		n += t.Len
	}
	return n
}
