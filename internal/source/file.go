package source

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"fortio.org/safecast"
)

// LineCol is a 1-based line/column pair. Columns count bytes.
type LineCol struct {
	Line int
	Col  int
}

// File is one source file placed at Base in a FileSet coordinate space.
type File struct {
	Name    string
	Base    Pos
	Content []byte
	lines   []int // byte offset of each line start
}

// NewFile builds a standalone file at base.
func NewFile(name string, base Pos, content []byte) *File {
	return &File{Name: name, Base: base, Content: content, lines: lineStarts(content)}
}

// Size returns the content length in bytes.
func (f *File) Size() int { return len(f.Content) }

// End returns the first position past the file content.
func (f *File) End() Pos {
	return f.Base + Pos(len(f.Content))
}

// Span returns the span covering the whole file.
func (f *File) Span() Span {
	return Span{Start: f.Base, End: f.End()}
}

// Offset converts an absolute position into a byte offset within the file.
func (f *File) Offset(p Pos) int {
	if p < f.Base {
		panic(fmt.Sprintf("source: position %d before base %d of %s", p, f.Base, f.Name))
	}
	off := int(p - f.Base)
	if off > len(f.Content) {
		panic(fmt.Sprintf("source: position %d past end of %s", p, f.Name))
	}
	return off
}

// Text returns the bytes covered by sp.
func (f *File) Text(sp Span) []byte {
	return f.Content[f.Offset(sp.Start):f.Offset(sp.End)]
}

// Position resolves an absolute position into line and column.
func (f *File) Position(p Pos) LineCol {
	off := f.Offset(p)
	idx := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > off })
	if idx == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	return LineCol{Line: idx, Col: off - f.lines[idx-1] + 1}
}

// LineCount returns the number of lines, counting a trailing partial line.
func (f *File) LineCount() int {
	return len(f.lines)
}

// Line returns the text of the 1-based line n without its newline.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lines) {
		return ""
	}
	start := f.lines[n-1]
	end := len(f.Content)
	if n < len(f.lines) {
		end = f.lines[n] - 1
	}
	if end < start {
		return ""
	}
	line := bytes.TrimSuffix(f.Content[start:end], []byte{'\n'})
	return string(bytes.TrimSuffix(line, []byte{'\r'}))
}

func lineStarts(content []byte) []int {
	starts := make([]int, 1, bytes.Count(content, []byte{'\n'})+1)
	for i, b := range content {
		if b == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// FileSet hands out non-overlapping bases to files. Safe for concurrent use.
type FileSet struct {
	mu    sync.RWMutex
	base  Pos
	files []*File
}

// NewFileSet returns an empty set whose first file starts at Pos(1).
func NewFileSet() *FileSet {
	return &FileSet{base: 1}
}

// Base returns the base the next added file will get.
func (s *FileSet) Base() Pos {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.base
}

// Add registers content under name and returns the placed file.
func (s *FileSet) Add(name string, content []byte) *File {
	size, err := safecast.Conv[uint32](len(content))
	if err != nil {
		panic(fmt.Errorf("source: %s too large: %w", name, err))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.base + Pos(size) + 1
	if next <= s.base {
		panic(fmt.Errorf("source: position space exhausted adding %s", name))
	}
	f := NewFile(name, s.base, content)
	s.files = append(s.files, f)
	s.base = next
	return f
}

// File returns the file that contains p, or nil.
func (s *FileSet) File(p Pos) *File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := sort.Search(len(s.files), func(i int) bool { return s.files[i].Base > p })
	if idx == 0 {
		return nil
	}
	f := s.files[idx-1]
	if p > f.End() {
		return nil
	}
	return f
}

// Files returns the registered files in base order.
func (s *FileSet) Files() []*File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*File, len(s.files))
	copy(out, s.files)
	return out
}
