// Package layout implements the layout policies §4.2 assigns to
// containers: stack (hbox/vbox), grid, splitter, and z-stack. Layout runs
// top-down after reconciliation, before rendering and before the focus
// ring rebuild.
package layout

import (
	"github.com/loomterm/loom/geom"
	"github.com/loomterm/loom/node"
)

// Policy positions and sizes children within bounds, the space a
// container itself was just given. Implementations call each child's
// SetBounds directly; they never touch grandchildren.
type Policy interface {
	Layout(bounds geom.Rect, children []node.Node)
}

// Weighted is implemented by a node that wants a stack layout to give it
// more or less than an equal share of the available space.
type Weighted interface {
	Weight() int
}

func weightOf(n node.Node) int {
	if w, ok := n.(Weighted); ok && w.Weight() > 0 {
		return w.Weight()
	}
	return 1
}

// Apply assigns bounds top-down starting at root: root gets bounds
// directly, then, if root implements Policy, root's own policy assigns
// each child's bounds from root's bounds, and Apply recurses into every
// child using whatever bounds it was just given. A container with no
// Policy leaves its children's bounds for reconciliation to have carried
// over, or the application's widget function to have set explicitly.
func Apply(root node.Node, bounds geom.Rect) {
	root.SetBounds(bounds)
	if p, ok := root.(Policy); ok {
		p.Layout(bounds, root.Children())
	}
	for _, c := range root.Children() {
		Apply(c, c.Bounds())
	}
}
