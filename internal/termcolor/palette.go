package termcolor

import (
	"strings"

	"github.com/fatih/color"
)

// Palette は診断の描画に使う色の組です。
// 無効化したパレットは装飾なしの文字列を返します。
type Palette struct {
	Warning *color.Color
	Message *color.Color
	Gutter  *color.Color
	Note    *color.Color
	Header  *color.Color
	Todo    *color.Color
	Fixme   *color.Color

	enabled bool
}

func NewPalette(enabled bool, scheme Scheme) Palette {
	p := Palette{
		Warning: color.New(color.FgYellow, color.Bold),
		Message: color.New(color.Bold),
		Gutter:  color.New(color.FgHiBlue, color.Bold),
		Note:    color.New(color.FgCyan),
		Header:  color.New(color.Bold, color.Underline),
		Todo:    color.New(color.FgYellow, color.Bold),
		Fixme:   color.New(color.FgRed, color.Bold),
		enabled: enabled,
	}
	if scheme == SchemeLight {
		p.Warning = color.New(color.FgMagenta, color.Bold)
		p.Gutter = color.New(color.FgBlue, color.Bold)
		p.Note = color.New(color.FgBlue)
		p.Todo = color.New(color.FgMagenta, color.Bold)
	}
	for _, c := range p.colors() {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Plain returns a palette that never emits escape sequences.
func Plain() Palette {
	return NewPalette(false, SchemeDark)
}

func (p Palette) Enabled() bool { return p.enabled }

// Kind returns the color for a marker kind such as "TODO" or "FIXME".
func (p Palette) Kind(kind string) *color.Color {
	switch strings.ToUpper(strings.TrimSpace(kind)) {
	case "TODO":
		return p.Todo
	case "FIXME":
		return p.Fixme
	default:
		return p.Message
	}
}

// Paint renders s with c. A nil color or a disabled palette leaves s as is.
func (p Palette) Paint(c *color.Color, s string) string {
	if c == nil || s == "" || !p.enabled {
		return s
	}
	return c.Sprint(s)
}

func (p Palette) colors() []*color.Color {
	return []*color.Color{p.Warning, p.Message, p.Gutter, p.Note, p.Header, p.Todo, p.Fixme}
}
