// Package cell implements the styled cell grid and the diffing terminal
// writer: the leaf component the rest of loom builds on.
package cell

// Attr is a bitset of text attributes a cell may carry.
type Attr uint8

const (
	Bold Attr = 1 << iota
	Dim
	Italic
	Underline
	Blink
	Reverse
	Strike
	Overline
)

// Has reports whether all bits in want are set in a.
func (a Attr) Has(want Attr) bool { return a&want == want }

// Color is a terminal color. The zero value is the "default" sentinel
// color — distinct from any explicit RGB triple — so the writer can emit
// an SGR reset opcode (39/49) instead of a concrete RGB escape when a
// style returns to the terminal's native foreground/background.
type Color struct {
	isSet bool
	R, G, B uint8
}

// Default is the terminal's native color.
var Default = Color{}

// RGB constructs an explicit 24-bit color.
func RGB(r, g, b uint8) Color {
	return Color{isSet: true, R: r, G: g, B: b}
}

// IsDefault reports whether c is the default sentinel.
func (c Color) IsDefault() bool { return !c.isSet }

// Style is a foreground/background color pair plus attributes. Styles are
// values; equality is structural (usable as a map key and with ==).
type Style struct {
	Fg, Bg Color
	Attrs  Attr
}

// DefaultStyle is the zero Style: default colors, no attributes.
var DefaultStyle = Style{}

// WithFg returns a copy of s with the foreground color replaced.
func (s Style) WithFg(c Color) Style { s.Fg = c; return s }

// WithBg returns a copy of s with the background color replaced.
func (s Style) WithBg(c Color) Style { s.Bg = c; return s }

// WithAttrs returns a copy of s with the attribute set replaced.
func (s Style) WithAttrs(a Attr) Style { s.Attrs = a; return s }
