package router

import (
	"github.com/loomterm/loom/binding"
	"github.com/loomterm/loom/focus"
	"github.com/loomterm/loom/key"
	"github.com/loomterm/loom/node"
)

// DispatchMouse runs the mouse routing algorithm of §4.5: spatial
// hit-testing for click-to-focus, binding collection from the node under
// the cursor bubbling up its ancestors, and drag capture (a drag
// binding's factory runs at mouse-down; a non-empty DragHandler captures
// subsequent Drag/Up events regardless of cursor position until Up).
func (r *Router) DispatchMouse(tree *node.Tree, ring *focus.Ring, ev key.MouseEvent) node.Handling {
	ac := r.buildActionContext(tree, ring)
	ac.HasMouse = true
	ac.X, ac.Y = ev.X, ev.Y

	if r.dragHandler != nil {
		switch ev.Action {
		case key.ActionDrag:
			if r.dragHandler.OnMove != nil {
				r.dragHandler.OnMove(ac, ev)
			}
			return node.Handled
		case key.ActionUp:
			if r.dragHandler.OnEnd != nil {
				r.dragHandler.OnEnd(ac, ev)
			}
			r.dragHandler = nil
			return node.Handled
		}
	}

	// Click-to-focus is resolved against the focus ring's own hit test
	// (topmost *focusable* member, §4.3), not the tree's topmost node
	// overall: a non-focusable decorative child occluding part of a
	// focusable ancestor/sibling at the same coordinates must not
	// prevent that ancestor/sibling from gaining focus.
	if ev.Action == key.ActionDown {
		if target := ring.HitTest(ev.X, ev.Y); target != nil {
			ring.Focus(target)
		}
	}

	// Binding collection (drag/mouse bindings, bubbling up owners) is a
	// separate concern from click-to-focus: it targets whichever node is
	// topmost regardless of focusability, since a binding can be
	// declared on a non-focusable node too.
	hitID, ok := tree.HitTest(ev.X, ev.Y)
	if !ok {
		return node.NotHandled
	}

	path := tree.Path(hitID)
	for i := len(path) - 1; i >= 0; i-- {
		n := path[i]
		b := binding.Build(n)

		if ev.Action == key.ActionDown {
			for _, db := range b.DragBindings() {
				if !db.Matches(ev) {
					continue
				}
				h := db.Factory(ac, ev)
				if !h.Empty() {
					hCopy := h
					r.dragHandler = &hCopy
					return node.Handled
				}
			}
		}

		for _, mb := range b.MouseBindings() {
			if mb.Matches(ev) {
				if mb.Handler != nil {
					_ = mb.Handler(ac)
				}
				return node.Handled
			}
		}
	}
	return node.NotHandled
}
