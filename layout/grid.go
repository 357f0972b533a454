package layout

import (
	"github.com/loomterm/loom/geom"
	"github.com/loomterm/loom/node"
)

// Grid arranges children into Cols columns, filling row-major, each row
// sized to an equal share of bounds.H and each column to an equal share
// of bounds.W. A final partial row leaves its missing cells empty.
type Grid struct {
	Cols int
}

// Layout implements Policy.
func (g Grid) Layout(bounds geom.Rect, children []node.Node) {
	cols := g.Cols
	if cols < 1 {
		cols = 1
	}
	n := len(children)
	if n == 0 {
		return
	}
	rows := (n + cols - 1) / cols
	colWidths := distribute(bounds.W, onesOf(cols))
	rowHeights := distribute(bounds.H, onesOf(rows))

	colX := make([]int, cols)
	x := bounds.X
	for i, w := range colWidths {
		colX[i] = x
		x += w
	}
	rowY := make([]int, rows)
	y := bounds.Y
	for i, h := range rowHeights {
		rowY[i] = y
		y += h
	}

	for i, c := range children {
		row, col := i/cols, i%cols
		c.SetBounds(geom.Rect{X: colX[col], Y: rowY[row], W: colWidths[col], H: rowHeights[row]})
	}
}

func onesOf(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = 1
	}
	return out
}
