package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePosition(t *testing.T) {
	f := NewFile("a.rs", 50, []byte("fn main() {\n    // TODO\n}\n"))
	assert.Equal(t, LineCol{Line: 1, Col: 1}, f.Position(50))
	assert.Equal(t, LineCol{Line: 2, Col: 5}, f.Position(50+16))
	assert.Equal(t, LineCol{Line: 3, Col: 1}, f.Position(50+24))
	assert.Equal(t, 3, f.LineCount())
	assert.Equal(t, "    // TODO", f.Line(2))
	assert.Equal(t, "}", f.Line(3))
	assert.Equal(t, "", f.Line(4))
}

func TestFileLineStripsCR(t *testing.T) {
	f := NewFile("w.c", 1, []byte("a\r\nb"))
	assert.Equal(t, "a", f.Line(1))
	assert.Equal(t, "b", f.Line(2))
}

func TestFileOffsetPanicsOutsideFile(t *testing.T) {
	f := NewFile("x", 10, []byte("abc"))
	require.Panics(t, func() { f.Offset(9) })
	require.Panics(t, func() { f.Offset(14) })
	require.Equal(t, 3, f.Offset(13))
}

func TestFileSetAssignsDisjointBases(t *testing.T) {
	fs := NewFileSet()
	a := fs.Add("a", []byte("hello"))
	b := fs.Add("b", []byte(""))
	c := fs.Add("c", []byte("xy"))

	require.Equal(t, Pos(1), a.Base)
	require.Equal(t, Pos(7), b.Base)
	require.Equal(t, Pos(8), c.Base)
	require.Equal(t, Pos(11), fs.Base())

	assert.Same(t, a, fs.File(3))
	assert.Same(t, c, fs.File(9))
	assert.Nil(t, fs.File(0))
	assert.Len(t, fs.Files(), 3)
	assert.Equal(t, []byte("ell"), a.Text(Span{Start: 2, End: 5}))
}
