package layout

import "github.com/loomterm/loom/geom"

// Splitter is a two-pane layout policy with a draggable single-cell
// divider. It does not itself implement Policy (Layout takes
// exactly two panes, not an arbitrary children slice) — the widget that
// embeds a Splitter calls LayoutPanes directly with its two children and
// exposes DividerBounds as its own HitBounds, per §4.2 ("a splitter
// exposes only its divider").
type Splitter struct {
	Vertical     bool // true: divider runs vertically, panes are left/right
	Ratio        float64
	DividerWidth int
}

// NewSplitter returns a splitter with an even split and a one-cell
// divider.
func NewSplitter(vertical bool) *Splitter {
	return &Splitter{Vertical: vertical, Ratio: 0.5, DividerWidth: 1}
}

func (s *Splitter) dividerWidth() int {
	if s.DividerWidth < 1 {
		return 1
	}
	return s.DividerWidth
}

func (s *Splitter) clampedRatio() float64 {
	switch {
	case s.Ratio < 0.05:
		return 0.05
	case s.Ratio > 0.95:
		return 0.95
	default:
		return s.Ratio
	}
}

// LayoutPanes assigns bounds to first and second, returning the divider's
// own rectangle. first and second are both nil-safe: pass nil if a pane
// is absent.
func (s *Splitter) LayoutPanes(bounds geom.Rect, first, second setBoundser) geom.Rect {
	dw := s.dividerWidth()
	if s.Vertical {
		firstW := clampPaneSize(int(float64(bounds.W-dw)*s.clampedRatio()), bounds.W-dw)
		secondW := bounds.W - dw - firstW
		if first != nil {
			first.SetBounds(geom.Rect{X: bounds.X, Y: bounds.Y, W: firstW, H: bounds.H})
		}
		divider := geom.Rect{X: bounds.X + firstW, Y: bounds.Y, W: dw, H: bounds.H}
		if second != nil {
			second.SetBounds(geom.Rect{X: bounds.X + firstW + dw, Y: bounds.Y, W: secondW, H: bounds.H})
		}
		return divider
	}
	firstH := clampPaneSize(int(float64(bounds.H-dw)*s.clampedRatio()), bounds.H-dw)
	secondH := bounds.H - dw - firstH
	if first != nil {
		first.SetBounds(geom.Rect{X: bounds.X, Y: bounds.Y, W: bounds.W, H: firstH})
	}
	divider := geom.Rect{X: bounds.X, Y: bounds.Y + firstH, W: bounds.W, H: dw}
	if second != nil {
		second.SetBounds(geom.Rect{X: bounds.X, Y: bounds.Y + firstH + dw, W: bounds.W, H: secondH})
	}
	return divider
}

func clampPaneSize(v, max int) int {
	if max < 0 {
		max = 0
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// setBoundser is the minimal capability LayoutPanes needs from a pane —
// satisfied structurally by node.Node, avoiding an import of node here
// purely for a single method.
type setBoundser interface {
	SetBounds(geom.Rect)
}

// SetRatioFromPoint recomputes Ratio so the divider passes through (x, y)
// within bounds, clamped to [0.05, 0.95]. Intended to be called from a
// splitter-owning widget's drag OnMove handler.
func (s *Splitter) SetRatioFromPoint(bounds geom.Rect, x, y int) {
	dw := s.dividerWidth()
	if s.Vertical {
		span := bounds.W - dw
		if span <= 0 {
			return
		}
		s.Ratio = float64(x-bounds.X) / float64(span)
		s.Ratio = s.clampedRatio()
		return
	}
	span := bounds.H - dw
	if span <= 0 {
		return
	}
	s.Ratio = float64(y-bounds.Y) / float64(span)
	s.Ratio = s.clampedRatio()
}
