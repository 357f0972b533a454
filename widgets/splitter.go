// Package widgets holds demonstration Node implementations: a status
// bar, a splitter, a scrollable list, a tab bar, and an OKLCH color
// picker. Each exercises a specific layout policy or binding kind end to
// end; they are not a pre-styled widget library (a non-goal).
package widgets

import (
	"github.com/loomterm/loom/actx"
	"github.com/loomterm/loom/cell"
	"github.com/loomterm/loom/geom"
	"github.com/loomterm/loom/key"
	"github.com/loomterm/loom/layout"
	"github.com/loomterm/loom/node"
	"github.com/loomterm/loom/theme"
)

// Splitter is a two-pane container with a draggable divider (grounded in
// the teacher's primitives/hcplane-adjacent split-pane pattern and §8
// scenario 6). It exposes only the divider as hit bounds, per §4.2: the
// divider is the only part of a splitter a mouse can interact with
// directly.
type Splitter struct {
	node.Base

	First, Second node.Node
	policy        *layout.Splitter
	divider       geom.Rect
}

// NewSplitter returns a splitter between first and second. vertical
// chooses whether the divider runs vertically (left/right panes) or
// horizontally (top/bottom panes).
func NewSplitter(vertical bool, first, second node.Node) *Splitter {
	return &Splitter{
		First:  first,
		Second: second,
		policy: layout.NewSplitter(vertical),
	}
}

// Ratio returns the current divider position, 0..1.
func (s *Splitter) Ratio() float64 { return s.policy.Ratio }

// SetRatio sets the divider position directly (e.g. on startup).
func (s *Splitter) SetRatio(r float64) { s.policy.Ratio = r }

func (s *Splitter) Children() []node.Node { return []node.Node{s.First, s.Second} }

func (s *Splitter) FocusableDescendants() []node.Node {
	return node.WalkFocusableDescendants(s, s.Children())
}

// HitBounds is the divider alone: everything else belongs to the panes.
func (s *Splitter) HitBounds() geom.Rect { return s.divider }

// Layout implements layout.Policy: it positions First and Second and
// records the divider's own rectangle for HitBounds.
func (s *Splitter) Layout(bounds geom.Rect, children []node.Node) {
	var first, second node.Node
	if len(children) > 0 {
		first = children[0]
	}
	if len(children) > 1 {
		second = children[1]
	}
	s.divider = s.policy.LayoutPanes(bounds, first, second)
}

func (s *Splitter) BuildBindings(d node.BindingDeclarer) {
	d.DeclareDrag(key.ButtonLeft, 0, func(ac *actx.ActionContext, start key.MouseEvent) actx.DragHandler {
		bounds := s.Bounds()
		return actx.DragHandler{
			OnMove: func(ac *actx.ActionContext, ev key.MouseEvent) {
				s.policy.SetRatioFromPoint(bounds, ev.X, ev.Y)
				if ac.Invalidate != nil {
					ac.Invalidate()
				}
			},
		}
	})
}

func (s *Splitter) HandleInput(node.InputEvent) node.Handling { return node.NotHandled }

// Render draws the divider, then renders each pane into its own clipped
// sub-canvas.
func (s *Splitter) Render(c cell.Canvas) {
	colors := theme.CurrentWidgetColors()
	style := colors.BorderStyle()
	if s.Focused() {
		style = colors.FocusedBorderStyle()
	}
	glyph := "│"
	if !s.policy.Vertical {
		glyph = "─"
	}
	for y := s.divider.Y; y < s.divider.Bottom(); y++ {
		for x := s.divider.X; x < s.divider.Right(); x++ {
			c.WriteText(x, y, glyph, style)
		}
	}
	for _, child := range s.Children() {
		if child == nil || child.Bounds().Empty() {
			continue
		}
		child.Render(c.WithClip(child.Bounds()))
	}
}
