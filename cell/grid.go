package cell

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/text/width"

	"github.com/loomterm/loom/geom"
)

// Cell is a single styled terminal cell: a grapheme cluster plus style.
// A wide (two-column) grapheme is written into the left column and the
// column to its right is marked Continuation with an empty grapheme, so
// the writer never re-emits bytes for it and the grid never reports two
// independent runes for one glyph.
type Cell struct {
	Grapheme     string
	Style        Style
	Continuation bool
}

// Blank is the cell grids are filled with by default: a space in the
// default style.
var Blank = Cell{Grapheme: " "}

// Grid is a rectangular array of Cells.
type Grid struct {
	W, H  int
	cells []Cell
}

// NewGrid allocates a W x H grid filled with Blank.
func NewGrid(w, h int) *Grid {
	g := &Grid{}
	g.Resize(w, h)
	return g
}

// Resize reallocates the grid to w x h, discarding prior content. Negative
// dimensions are clamped to zero.
func (g *Grid) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g.W, g.H = w, h
	g.cells = make([]Cell, w*h)
	for i := range g.cells {
		g.cells[i] = Blank
	}
}

func (g *Grid) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return 0, false
	}
	return y*g.W + x, true
}

// At returns the cell at (x, y). Out-of-bounds reads return Blank.
func (g *Grid) At(x, y int) Cell {
	if i, ok := g.index(x, y); ok {
		return g.cells[i]
	}
	return Blank
}

// Set writes a single cell at (x, y). Out-of-bounds writes are discarded.
func (g *Grid) Set(x, y int, c Cell) {
	if i, ok := g.index(x, y); ok {
		g.cells[i] = c
	}
}

// Fill paints every cell inside rect (clipped to the grid) with c.
func (g *Grid) Fill(rect geom.Rect, c Cell) {
	r := rect.Intersect(geom.Rect{W: g.W, H: g.H})
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			g.Set(x, y, c)
		}
	}
}

// WriteText blits text at (x, y) in the given style, advancing by each
// grapheme cluster's display width (0, 1, or 2 columns). Wide clusters
// occupy two columns: the left column carries the grapheme, the right
// column is marked Continuation. Writing stops silently once it runs past
// the right edge of the grid; a write that starts out of bounds is a
// no-op for cells before column 0. Returns the total column width written
// (including columns clipped by the grid edge).
func (g *Grid) WriteText(x, y int, text string, style Style) int {
	cursor := x
	for _, cluster := range graphemes(text) {
		w := clusterWidth(cluster)
		if w <= 0 {
			// Zero-width joiners/marks: attach to the previous cell by
			// leaving the grid untouched; there is nothing to advance.
			continue
		}
		g.Set(cursor, y, Cell{Grapheme: cluster, Style: style})
		if w == 2 {
			g.Set(cursor+1, y, Cell{Continuation: true, Style: style})
		}
		cursor += w
	}
	return cursor - x
}

// graphemes splits text into user-perceived character clusters.
func graphemes(text string) []string {
	var out []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

// clusterWidth returns the terminal column width of a single grapheme
// cluster, folding East Asian "ambiguous" runes to their narrow form
// before measuring so single-rune and multi-rune clusters are sized
// consistently with the rest of the pack's runewidth-based cell model.
func clusterWidth(s string) int {
	folded, err := width.Narrow.String(s)
	if err != nil {
		folded = s
	}
	return runewidth.StringWidth(folded)
}
