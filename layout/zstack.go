package layout

import (
	"github.com/loomterm/loom/geom"
	"github.com/loomterm/loom/node"
)

// ZStack gives every child the full container bounds, overlapping in
// render order (later children drawn, and hit-tested, on top).
type ZStack struct{}

// Layout implements Policy.
func (ZStack) Layout(bounds geom.Rect, children []node.Node) {
	for _, c := range children {
		c.SetBounds(bounds)
	}
}
