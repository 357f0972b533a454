package layout

import (
	"github.com/loomterm/loom/geom"
	"github.com/loomterm/loom/node"
)

// HBox arranges children left to right, dividing bounds.W among them in
// proportion to each child's Weight (default 1), with Spacing cells
// between adjacent children.
type HBox struct {
	Spacing int
}

// Layout implements Policy.
func (h HBox) Layout(bounds geom.Rect, children []node.Node) {
	spacing := h.Spacing
	if spacing < 0 {
		spacing = 0
	}
	n := len(children)
	if n == 0 {
		return
	}
	available := bounds.W - spacing*(n-1)
	if available < 0 {
		available = 0
	}
	sizes := distribute(available, weights(children))

	x := bounds.X
	for i, c := range children {
		c.SetBounds(geom.Rect{X: x, Y: bounds.Y, W: sizes[i], H: bounds.H})
		x += sizes[i] + spacing
	}
}

// VBox arranges children top to bottom, dividing bounds.H among them in
// proportion to each child's Weight (default 1), with Spacing cells
// between adjacent children.
type VBox struct {
	Spacing int
}

// Layout implements Policy.
func (v VBox) Layout(bounds geom.Rect, children []node.Node) {
	spacing := v.Spacing
	if spacing < 0 {
		spacing = 0
	}
	n := len(children)
	if n == 0 {
		return
	}
	available := bounds.H - spacing*(n-1)
	if available < 0 {
		available = 0
	}
	sizes := distribute(available, weights(children))

	y := bounds.Y
	for i, c := range children {
		c.SetBounds(geom.Rect{X: bounds.X, Y: y, W: bounds.W, H: sizes[i]})
		y += sizes[i] + spacing
	}
}

func weights(children []node.Node) []int {
	out := make([]int, len(children))
	for i, c := range children {
		out[i] = weightOf(c)
	}
	return out
}

// distribute splits total across len(weights) buckets in proportion to
// weights, whole cells only; any remainder (from integer rounding) is
// handed to the earliest buckets one cell at a time so every cell of
// available space is assigned to exactly one child.
func distribute(total int, weights []int) []int {
	sizes := make([]int, len(weights))
	if total <= 0 {
		return sizes
	}
	sum := 0
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return sizes
	}
	assigned := 0
	for i, w := range weights {
		sizes[i] = total * w / sum
		assigned += sizes[i]
	}
	for i := 0; assigned < total; i = (i + 1) % len(sizes) {
		sizes[i]++
		assigned++
	}
	return sizes
}
