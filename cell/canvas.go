package cell

import "github.com/loomterm/loom/geom"

// Canvas is a Grid plus a clip rectangle: the "sub_grid" a container
// passes to each child's Render method (§4.2). Writes outside the clip
// are discarded, so a splitter or scroll viewport can hand a child a
// canvas that only exposes the child's own region even though the
// underlying Grid is shared.
type Canvas struct {
	Grid *Grid
	Clip geom.Rect
}

// NewCanvas returns a canvas over the whole of g.
func NewCanvas(g *Grid) Canvas {
	return Canvas{Grid: g, Clip: geom.Rect{W: g.W, H: g.H}}
}

// WithClip returns a canvas further clipped to the intersection of c's
// current clip and rect.
func (c Canvas) WithClip(rect geom.Rect) Canvas {
	return Canvas{Grid: c.Grid, Clip: c.Clip.Intersect(rect)}
}

// Set writes a single cell, silently discarding it if (x, y) falls
// outside the canvas's clip.
func (c Canvas) Set(x, y int, cl Cell) {
	if !c.Clip.Contains(x, y) {
		return
	}
	c.Grid.Set(x, y, cl)
}

// Fill paints rect (intersected with the clip) with cl.
func (c Canvas) Fill(rect geom.Rect, cl Cell) {
	c.Grid.Fill(rect.Intersect(c.Clip), cl)
}

// WriteText blits text at (x, y), clipping each grapheme cluster to the
// canvas's clip rect rather than only the underlying grid's bounds.
func (c Canvas) WriteText(x, y int, text string, style Style) int {
	if y < c.Clip.Y || y >= c.Clip.Bottom() {
		return 0
	}
	cursor := x
	for _, cl := range graphemes(text) {
		w := clusterWidth(cl)
		if w <= 0 {
			continue
		}
		if cursor >= c.Clip.X && cursor < c.Clip.Right() {
			c.Grid.Set(cursor, y, Cell{Grapheme: cl, Style: style})
			if w == 2 && cursor+1 >= c.Clip.X && cursor+1 < c.Clip.Right() {
				c.Grid.Set(cursor+1, y, Cell{Continuation: true, Style: style})
			}
		}
		cursor += w
	}
	return cursor - x
}
