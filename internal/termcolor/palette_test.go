package termcolor

import (
	"strings"
	"testing"
)

func TestPaletteDisabled(t *testing.T) {
	p := Plain()
	if p.Enabled() {
		t.Fatal("Plain palette must be disabled")
	}
	if got := p.Paint(p.Todo, "TODO"); got != "TODO" {
		t.Fatalf("disabled palette should not decorate, got %q", got)
	}
	if got := p.Paint(nil, "x"); got != "x" {
		t.Fatalf("nil color should pass through, got %q", got)
	}
}

func TestPaletteEnabled(t *testing.T) {
	p := NewPalette(true, SchemeDark)
	got := p.Paint(p.Kind("fixme"), "FIXME")
	if !strings.HasPrefix(got, "\x1b[") || !strings.Contains(got, "FIXME") {
		t.Fatalf("expected SGR-wrapped text, got %q", got)
	}
	if p.Paint(p.Warning, "") != "" {
		t.Fatal("empty text should stay empty")
	}
}

func TestPaletteKind(t *testing.T) {
	p := NewPalette(true, SchemeDark)
	if p.Kind("TODO") != p.Todo {
		t.Fatal("TODO should map to Todo color")
	}
	if p.Kind(" fixme ") != p.Fixme {
		t.Fatal("fixme should map to Fixme color")
	}
	if p.Kind("NOTE") != p.Message {
		t.Fatal("unknown kinds should use Message color")
	}
}

func TestPaletteSchemes(t *testing.T) {
	dark := NewPalette(true, SchemeDark)
	light := NewPalette(true, SchemeLight)
	if dark.Paint(dark.Todo, "TODO") == light.Paint(light.Todo, "TODO") {
		t.Fatal("light scheme should use a different TODO color")
	}
}
