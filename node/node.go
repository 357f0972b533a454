// Package node implements the laid-out scene graph (§3 Node, §4.2): an
// arena of nodes with stable identity across frames, bounds, focusability,
// and the per-node contracts for binding declaration, input fallback, and
// rendering.
package node

import (
	"github.com/loomterm/loom/actx"
	"github.com/loomterm/loom/cell"
	"github.com/loomterm/loom/geom"
	"github.com/loomterm/loom/key"
)

// Handling is a node's answer to an unmatched input event.
type Handling bool

const (
	Handled    Handling = true
	NotHandled Handling = false
)

// InputEvent is a key or mouse event reaching a node's fallback handler.
type InputEvent struct {
	Key   *key.KeyEvent
	Mouse *key.MouseEvent
}

// IsKey reports whether the event carries a key event.
func (e InputEvent) IsKey() bool { return e.Key != nil }

// IsMouse reports whether the event carries a mouse event.
func (e InputEvent) IsMouse() bool { return e.Mouse != nil }

// Keyed is implemented by a Node that wants reconciliation to match it by
// an author-supplied key rather than by its position among siblings — the
// usual case for a dynamic list where elements are inserted, removed, or
// reordered between frames.
type Keyed interface {
	Key() string
}

// BindingDeclarer is the surface a Node uses to declare its bindings; the
// binding package's Builder implements it. Kept in this package (rather
// than importing binding's concrete Builder type) so the node tree has no
// dependency on the binding model's package.
type BindingDeclarer interface {
	DeclareKey(steps []key.KeyStep, handler actx.Handler, description string, isGlobal bool)
	DeclareCharacter(predicate func(string) bool, handler actx.Handler, description string)
	DeclareMouse(btn key.Button, action key.Action, mods key.Modifier, minClickCount int, handler actx.Handler)
	DeclareDrag(btn key.Button, mods key.Modifier, factory actx.DragFactory)
}

// Node is a node in the laid-out tree.
type Node interface {
	// Bounds is the node's position and size, assigned by layout.
	Bounds() geom.Rect
	SetBounds(geom.Rect)

	// HitBounds is the rectangle mouse hit-testing uses; it defaults to
	// Bounds but may be stricter (a splitter exposes only its divider).
	HitBounds() geom.Rect

	Focusable() bool
	Focused() bool
	SetFocused(bool)

	// Children returns this node's owned children in render order.
	Children() []Node

	// FocusableDescendants enumerates self + descendants (depth-first,
	// render order) whose Focusable() is true.
	FocusableDescendants() []Node

	// BuildBindings declares this node's key, character, mouse, and drag
	// bindings into d. Called once per input dispatch, for nodes along
	// the active path.
	BuildBindings(d BindingDeclarer)

	// HandleInput is the fallback invoked when no binding matched.
	HandleInput(ev InputEvent) Handling

	// Render rasterizes this node (and, for containers, its children)
	// into c.
	Render(c cell.Canvas)
}

// Base provides the common bookkeeping every concrete Node embeds: bounds
// and focus state. It is not itself a Node — concrete widgets embed it and
// implement the remaining methods.
//
// Parent back-references are deliberately not stored here: the tree
// represents them as an arena of integer NodeIDs (Tree.ParentOf), so a
// dropped node's ancestors never hold a live pointer to it and a node can
// never chase a dangling parent pointer after reconciliation removes it.
type Base struct {
	bounds    geom.Rect
	focused   bool
	focusable bool
}

func (b *Base) Bounds() geom.Rect     { return b.bounds }
func (b *Base) SetBounds(r geom.Rect) { b.bounds = r }
func (b *Base) HitBounds() geom.Rect  { return b.bounds }
func (b *Base) Focusable() bool       { return b.focusable }
func (b *Base) SetFocusable(f bool)   { b.focusable = f }
func (b *Base) Focused() bool         { return b.focused }
func (b *Base) SetFocused(f bool)     { b.focused = f }

// FocusableDescendants provides the default depth-first enumeration for
// leaves (no children): self if focusable, else nothing. Containers
// override this to recurse.
func (b *Base) FocusableDescendants(self Node) []Node {
	if b.focusable {
		return []Node{self}
	}
	return nil
}

// WalkFocusableDescendants is the shared depth-first enumeration helper
// containers use: self (if focusable) followed by each child's own
// FocusableDescendants, in render order.
func WalkFocusableDescendants(self Node, children []Node) []Node {
	var out []Node
	if self.Focusable() {
		out = append(out, self)
	}
	for _, c := range children {
		out = append(out, c.FocusableDescendants()...)
	}
	return out
}
