package widgets

import (
	"github.com/loomterm/loom/actx"
	"github.com/loomterm/loom/cell"
	"github.com/loomterm/loom/geom"
	"github.com/loomterm/loom/key"
	"github.com/loomterm/loom/node"
	"github.com/loomterm/loom/theme"
)

// TabButton is one focusable tab in a TabBar. Left/Right reuse the ring's
// own cyclic navigation, the same pattern as ListRow.
type TabButton struct {
	node.Base
	Label  string
	Active bool
}

func NewTabButton(label string) *TabButton {
	b := &TabButton{Label: label}
	b.SetFocusable(true)
	return b
}

func (b *TabButton) Children() []node.Node             { return nil }
func (b *TabButton) FocusableDescendants() []node.Node { return node.WalkFocusableDescendants(b, nil) }

func (b *TabButton) BuildBindings(d node.BindingDeclarer) {
	d.DeclareKey([]key.KeyStep{{Key: key.KeyRight}}, func(ac *actx.ActionContext) error {
		ac.FocusNext()
		return nil
	}, "next tab", false)
	d.DeclareKey([]key.KeyStep{{Key: key.KeyLeft}}, func(ac *actx.ActionContext) error {
		ac.FocusPrevious()
		return nil
	}, "previous tab", false)
}

func (b *TabButton) HandleInput(node.InputEvent) node.Handling { return node.NotHandled }

func (b *TabButton) Render(c cell.Canvas) {
	colors := theme.CurrentWidgetColors()
	style := colors.Style()
	if b.Active {
		style = cell.DefaultStyle.WithFg(colors.BaseBg).WithBg(colors.Accent)
	}
	if b.Focused() {
		style = style.WithAttrs(style.Attrs | cell.Bold)
	}
	bounds := b.Bounds()
	c.Fill(bounds, cell.Cell{Grapheme: " ", Style: style})
	c.WriteText(bounds.X, bounds.Y, " "+b.Label+" ", style)
}

// TabBar is a horizontal row of TabButtons (grounded in the teacher's
// primitives/tabbar.go). Unlike the teacher's own ActiveIdx, which the
// widget maintains itself independent of any focus concept, loom's
// TabBar derives ActiveIdx from whichever button the ring focused — the
// canonical use of §4.3's sync_focus_index: TabBar implements
// focus.IndexSyncer and is notified as focus passes through it.
type TabBar struct {
	node.Base

	Buttons   []*TabButton
	ActiveIdx int
	OnChange  func(int)
}

// NewTabBar builds a TabBar with one button per label.
func NewTabBar(labels []string) *TabBar {
	tb := &TabBar{}
	for _, lb := range labels {
		tb.Buttons = append(tb.Buttons, NewTabButton(lb))
	}
	if len(tb.Buttons) > 0 {
		tb.Buttons[0].Active = true
	}
	return tb
}

func (tb *TabBar) Children() []node.Node {
	out := make([]node.Node, len(tb.Buttons))
	for i, b := range tb.Buttons {
		out[i] = b
	}
	return out
}

func (tb *TabBar) FocusableDescendants() []node.Node {
	return node.WalkFocusableDescendants(tb, tb.Children())
}

// SyncFocusIndex implements focus.IndexSyncer.
func (tb *TabBar) SyncFocusIndex(childIndex int) {
	if childIndex < 0 || childIndex >= len(tb.Buttons) || childIndex == tb.ActiveIdx {
		return
	}
	tb.Buttons[tb.ActiveIdx].Active = false
	tb.ActiveIdx = childIndex
	tb.Buttons[tb.ActiveIdx].Active = true
	if tb.OnChange != nil {
		tb.OnChange(childIndex)
	}
}

// Layout places each button side by side, sized to its label plus a
// one-cell pad on either side.
func (tb *TabBar) Layout(bounds geom.Rect, children []node.Node) {
	x := bounds.X
	for i, child := range children {
		w := len([]rune(tb.Buttons[i].Label)) + 2
		if x+w > bounds.Right() {
			w = bounds.Right() - x
		}
		if w <= 0 {
			child.SetBounds(geom.Rect{})
			continue
		}
		child.SetBounds(geom.Rect{X: x, Y: bounds.Y, W: w, H: 1})
		x += w
	}
}

func (tb *TabBar) BuildBindings(node.BindingDeclarer) {}

func (tb *TabBar) HandleInput(node.InputEvent) node.Handling { return node.NotHandled }

func (tb *TabBar) Render(c cell.Canvas) {
	colors := theme.CurrentWidgetColors()
	c.Fill(tb.Bounds(), cell.Cell{Grapheme: " ", Style: colors.Style()})
	for _, b := range tb.Buttons {
		if b.Bounds().Empty() {
			continue
		}
		b.Render(c.WithClip(b.Bounds()))
	}
}
