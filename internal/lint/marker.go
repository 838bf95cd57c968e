package lint

// MarkerKind identifies which marker an event is about.
type MarkerKind uint8

const (
	Todo MarkerKind = iota
	Fixme
)

const (
	todoMarker  = "TODO"
	fixmeMarker = "FIXME"
)

// Text returns the canonical upper-case marker literal.
func (k MarkerKind) Text() string {
	if k == Fixme {
		return fixmeMarker
	}
	return todoMarker
}

func (k MarkerKind) String() string { return k.Text() }

// Message returns the diagnostic message for the kind.
func (k MarkerKind) Message() string {
	return k.Text() + " found in comment"
}

// Kinds lists the marker vocabulary in reporting order.
func Kinds() []MarkerKind { return []MarkerKind{Todo, Fixme} }

// FindAll returns the byte offsets of every non-overlapping occurrence of
// marker in text, ignoring ASCII case. marker must be upper case ASCII.
func FindAll(text []byte, marker string) []int {
	var hits []int
	for i := 0; i+len(marker) <= len(text); {
		if matchFoldAt(text, i, marker) {
			hits = append(hits, i)
			i += len(marker)
			continue
		}
		i++
	}
	return hits
}

// Contains reports whether text holds marker, ignoring ASCII case.
func Contains(text []byte, marker string) bool {
	for i := 0; i+len(marker) <= len(text); i++ {
		if matchFoldAt(text, i, marker) {
			return true
		}
	}
	return false
}

// matchFoldAt upper-cases only ASCII letters so a non-ASCII byte never
// matches and offsets stay byte offsets.
func matchFoldAt(text []byte, at int, marker string) bool {
	for j := 0; j < len(marker); j++ {
		b := text[at+j]
		if 'a' <= b && b <= 'z' {
			b -= 'a' - 'A'
		}
		if b != marker[j] {
			return false
		}
	}
	return true
}
