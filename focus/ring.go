// Package focus implements the focus ring (§4.3): the flat, ordered
// sequence of focusable nodes rebuilt after each render, with
// bidirectional navigation, predicate lookup, and hit-testing.
package focus

import (
	"github.com/loomterm/loom/node"
)

// IndexSyncer is implemented by a container that mirrors a focus index
// internally (a tab bar's selected tab, a list's highlighted row). After
// focus moves, the ring walks from the newly focused node up through its
// ancestors and calls SyncFocusIndex on each one that implements this,
// passing the index of the ancestor's own child that leads toward the
// newly focused node.
type IndexSyncer interface {
	SyncFocusIndex(childIndex int)
}

// Ring is the focus ring. The zero value is an empty ring; call Rebuild
// once a tree exists.
type Ring struct {
	tree         *node.Tree
	members      []node.Node
	memberIDs    []node.NodeID
	focusedIndex int // -1 if nothing in the ring is focused
}

// New returns an empty ring.
func New() *Ring {
	return &Ring{focusedIndex: -1}
}

// Rebuild clears and re-populates the ring from tree's focusable
// descendants, in render order. It is idempotent and is called once per
// frame after layout. The focused member, if any, is whichever node in
// the new membership already reports Focused() — focus state lives on
// the node itself and survives reconciliation, not on the ring.
func (r *Ring) Rebuild(tree *node.Tree) {
	r.tree = tree
	ids := tree.FocusableDescendantIDs(tree.Root())
	members := make([]node.Node, len(ids))
	focusedIndex := -1
	for i, id := range ids {
		n := tree.Node(id)
		members[i] = n
		if n.Focused() {
			focusedIndex = i
		}
	}
	r.members = members
	r.memberIDs = ids
	r.focusedIndex = focusedIndex
}

// Len returns the number of members in the ring.
func (r *Ring) Len() int { return len(r.members) }

// Focused returns the currently focused member, or nil if none.
func (r *Ring) Focused() node.Node {
	if r.focusedIndex < 0 {
		return nil
	}
	return r.members[r.focusedIndex]
}

// FocusedID returns the arena ID of the currently focused member and
// true, or false if nothing is focused.
func (r *Ring) FocusedID() (node.NodeID, bool) {
	if r.focusedIndex < 0 {
		return node.NoParent, false
	}
	return r.memberIDs[r.focusedIndex], true
}

// FocusNext advances focus cyclically to the next member, unfocusing the
// current one first. Returns false iff the ring is empty.
func (r *Ring) FocusNext() bool {
	return r.advance(1)
}

// FocusPrevious advances focus cyclically to the previous member.
// Returns false iff the ring is empty.
func (r *Ring) FocusPrevious() bool {
	return r.advance(-1)
}

func (r *Ring) advance(delta int) bool {
	n := len(r.members)
	if n == 0 {
		return false
	}
	next := r.focusedIndex + delta
	next = ((next % n) + n) % n
	r.setFocusedIndex(next)
	return true
}

// Focus moves focus to n if it is a ring member. Returns false otherwise.
func (r *Ring) Focus(n node.Node) bool {
	for i, m := range r.members {
		if m == n {
			r.setFocusedIndex(i)
			return true
		}
	}
	return false
}

// FocusWhere focuses the first member satisfying pred. Returns false if
// no member matches.
func (r *Ring) FocusWhere(pred func(node.Node) bool) bool {
	for i, m := range r.members {
		if pred(m) {
			r.setFocusedIndex(i)
			return true
		}
	}
	return false
}

// EnsureFocus focuses the first member if nothing is currently focused
// and the ring is non-empty.
func (r *Ring) EnsureFocus() bool {
	if r.focusedIndex >= 0 {
		return true
	}
	if len(r.members) == 0 {
		return false
	}
	r.setFocusedIndex(0)
	return true
}

func (r *Ring) setFocusedIndex(i int) {
	if r.focusedIndex >= 0 && r.focusedIndex != i {
		r.members[r.focusedIndex].SetFocused(false)
	}
	r.focusedIndex = i
	r.members[i].SetFocused(true)
	r.syncAncestors(r.memberIDs[i])
}

// syncAncestors walks from id up to the root, invoking SyncFocusIndex on
// every ancestor that implements IndexSyncer so containers mirroring a
// focus index (tab bars, list selections) stay consistent.
func (r *Ring) syncAncestors(id node.NodeID) {
	if r.tree == nil {
		return
	}
	child := id
	for parent := r.tree.ParentOf(child); parent != node.NoParent; parent, child = r.tree.ParentOf(parent), parent {
		if syncer, ok := r.tree.Node(parent).(IndexSyncer); ok {
			syncer.SyncFocusIndex(childIndexOf(r.tree, parent, child))
		}
	}
}

func childIndexOf(tree *node.Tree, parent, child node.NodeID) int {
	for i, c := range tree.ChildrenOf(parent) {
		if c == child {
			return i
		}
	}
	return -1
}

// HitTest returns the topmost (last in render order) focusable member
// whose hit-test rectangle contains (x, y), or nil.
func (r *Ring) HitTest(x, y int) node.Node {
	for i := len(r.members) - 1; i >= 0; i-- {
		if r.members[i].HitBounds().Contains(x, y) {
			return r.members[i]
		}
	}
	return nil
}
