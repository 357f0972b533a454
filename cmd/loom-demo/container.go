package main

import (
	"github.com/loomterm/loom/cell"
	"github.com/loomterm/loom/geom"
	"github.com/loomterm/loom/layout"
	"github.com/loomterm/loom/node"
)

// container is the demo's only generic composition node: a fixed list of
// children laid out by an embedded layout.Policy (VBox/HBox), with each
// child rendered into its own clipped sub-canvas. loom/layout and
// loom/widgets intentionally leave this kind of plain box out — every
// shipped container (Splitter, List, TabBar) also carries its own
// specific state — so the demo provides the one a showcase app needs
// itself, grounded in the teacher's own top-level demo composing widgets
// directly in apps/texelui-demo/demo.go.
type container struct {
	node.Base
	policy   layout.Policy
	children []node.Node
}

func newContainer(policy layout.Policy, children ...node.Node) *container {
	return &container{policy: policy, children: children}
}

func (c *container) Children() []node.Node { return c.children }

func (c *container) FocusableDescendants() []node.Node {
	return node.WalkFocusableDescendants(c, c.children)
}

func (c *container) Layout(bounds geom.Rect, children []node.Node) {
	c.policy.Layout(bounds, children)
}

func (c *container) BuildBindings(node.BindingDeclarer)         {}
func (c *container) HandleInput(node.InputEvent) node.Handling { return node.NotHandled }

func (c *container) Render(cv cell.Canvas) {
	for _, child := range c.children {
		if child.Bounds().Empty() {
			continue
		}
		child.Render(cv.WithClip(child.Bounds()))
	}
}
