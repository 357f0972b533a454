package widgets

import (
	"fmt"
	"strings"

	"github.com/loomterm/loom/actx"
	"github.com/loomterm/loom/cell"
	"github.com/loomterm/loom/key"
	"github.com/loomterm/loom/node"
	"github.com/loomterm/loom/theme"
)

// ColorPicker is a single focusable OKLCH color editor (grounded in the
// teacher's widgets/oklch_editor.go and primitives/hcplane.go, collapsed
// here into one node instead of a plane-plus-slider composition, since
// the point is exercising theme.OKLCHToCell/CellToOKLCH and the
// character-binding fallback rather than reproducing a 2D hue/chroma
// pointer surface).
//
// Arrow keys nudge hue and chroma, PageUp/PageDown nudge lightness.
// Typing a literal color — "#rrggbb" or "oklch(l c h)" — and pressing
// Enter commits it directly, demonstrating DeclareCharacter as a typed
// fallback alongside the chord bindings.
type ColorPicker struct {
	node.Base

	L, C, H  float64
	OnChange func(cell.Color)

	typed   strings.Builder
	editing bool
}

// NewColorPicker returns a picker initialized from c.
func NewColorPicker(c cell.Color) *ColorPicker {
	cp := &ColorPicker{}
	cp.SetFocusable(true)
	cp.SetColor(c)
	return cp
}

// SetColor re-initializes the picker's OKLCH state from c.
func (cp *ColorPicker) SetColor(c cell.Color) {
	cp.L, cp.C, cp.H = theme.CellToOKLCH(c)
}

// Color returns the current selection as a cell.Color.
func (cp *ColorPicker) Color() cell.Color {
	return theme.OKLCHToCell(cp.L, cp.C, cp.H)
}

func (cp *ColorPicker) Children() []node.Node             { return nil }
func (cp *ColorPicker) FocusableDescendants() []node.Node { return node.WalkFocusableDescendants(cp, nil) }

func (cp *ColorPicker) notify() {
	if cp.OnChange != nil {
		cp.OnChange(cp.Color())
	}
}

func (cp *ColorPicker) nudgeHue(delta float64) actx.Handler {
	return func(ac *actx.ActionContext) error {
		cp.H = wrapDegrees(cp.H + delta)
		cp.notify()
		ac.Invalidate()
		return nil
	}
}

func (cp *ColorPicker) nudgeChroma(delta float64) actx.Handler {
	return func(ac *actx.ActionContext) error {
		cp.C = clamp(cp.C+delta, 0, 0.4)
		cp.notify()
		ac.Invalidate()
		return nil
	}
}

func (cp *ColorPicker) nudgeLightness(delta float64) actx.Handler {
	return func(ac *actx.ActionContext) error {
		cp.L = clamp(cp.L+delta, 0, 1)
		cp.notify()
		ac.Invalidate()
		return nil
	}
}

func (cp *ColorPicker) BuildBindings(d node.BindingDeclarer) {
	d.DeclareKey([]key.KeyStep{{Key: key.KeyLeft}}, cp.nudgeHue(-1), "hue -1°", false)
	d.DeclareKey([]key.KeyStep{{Key: key.KeyRight}}, cp.nudgeHue(1), "hue +1°", false)
	d.DeclareKey([]key.KeyStep{{Key: key.KeyDown}}, cp.nudgeChroma(-0.01), "chroma -", false)
	d.DeclareKey([]key.KeyStep{{Key: key.KeyUp}}, cp.nudgeChroma(0.01), "chroma +", false)
	d.DeclareKey([]key.KeyStep{{Key: key.KeyPageDown}}, cp.nudgeLightness(-0.02), "lightness -", false)
	d.DeclareKey([]key.KeyStep{{Key: key.KeyPageUp}}, cp.nudgeLightness(0.02), "lightness +", false)

	d.DeclareKey([]key.KeyStep{{Key: key.KeyEnter}}, func(ac *actx.ActionContext) error {
		if l, c, h, ok := parseColorText(cp.typed.String()); ok {
			cp.L, cp.C, cp.H = l, c, h
			cp.notify()
		}
		cp.typed.Reset()
		cp.editing = false
		ac.Invalidate()
		return nil
	}, "commit typed color", false)

	d.DeclareKey([]key.KeyStep{{Key: key.KeyEscape}}, func(ac *actx.ActionContext) error {
		cp.typed.Reset()
		cp.editing = false
		ac.Invalidate()
		return nil
	}, "cancel typed color", false)

	d.DeclareCharacter(func(text string) bool {
		// The predicate is the only place the router hands the node the
		// matched text, so accepted runes are appended here rather than
		// in the handler.
		if !isColorTextRune(text) {
			return false
		}
		cp.editing = true
		cp.typed.WriteString(text)
		return true
	}, func(ac *actx.ActionContext) error {
		ac.Invalidate()
		return nil
	}, "type literal color")
}

func isColorTextRune(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == '#' || r == '(' || r == ')' || r == '.' || r == ' ':
		default:
			return false
		}
	}
	return true
}

func (cp *ColorPicker) HandleInput(node.InputEvent) node.Handling { return node.NotHandled }

func parseColorText(s string) (l, c, h float64, ok bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		color := theme.HexColor(s).ToCell()
		l, c, h = theme.CellToOKLCH(color)
		return l, c, h, true
	}
	if strings.HasPrefix(s, "oklch(") {
		inner := strings.TrimSuffix(strings.TrimPrefix(s, "oklch("), ")")
		if _, err := fmt.Sscanf(inner, "%f %f %f", &l, &c, &h); err == nil {
			return l, c, h, true
		}
	}
	return 0, 0, 0, false
}

func wrapDegrees(h float64) float64 {
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return h
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (cp *ColorPicker) Render(c cell.Canvas) {
	colors := theme.CurrentWidgetColors()
	style := colors.Style()
	bounds := cp.Bounds()
	c.Fill(bounds, cell.Cell{Grapheme: " ", Style: style})

	swatchStyle := cell.DefaultStyle.WithFg(cp.Color()).WithBg(colors.SurfaceBg)
	c.WriteText(bounds.X, bounds.Y, "[███]", swatchStyle)

	label := theme.FormatOKLCH(cp.L, cp.C, cp.H)
	if cp.editing {
		label = "> " + cp.typed.String() + "_"
	}
	labelStyle := style
	if cp.Focused() {
		labelStyle = style.WithFg(colors.BorderFocus)
	}
	c.WriteText(bounds.X+6, bounds.Y, label, labelStyle)
}
