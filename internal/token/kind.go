package token

// Kind classifies a token. Only the comment kinds are significant to the
// checker; everything else is consumed for its length.
type Kind uint8

const (
	Other Kind = iota
	LineComment
	BlockComment
	String
)

func (k Kind) String() string {
	switch k {
	case LineComment:
		return "line-comment"
	case BlockComment:
		return "block-comment"
	case String:
		return "string"
	default:
		return "other"
	}
}

// IsComment reports whether the kind denotes a line or block comment.
func (k Kind) IsComment() bool {
	return k == LineComment || k == BlockComment
}
