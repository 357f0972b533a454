package node

import "github.com/loomterm/loom/geom"

// NodeID is an index into a Tree's arena, assigned in insertion order;
// the root is ID 0. Use NoParent to test for "no parent".
type NodeID int

// NoParent is the parent of a tree's root.
const NoParent NodeID = -1

type entry struct {
	node     Node
	parent   NodeID
	children []NodeID
	key      string // "" if the node has no author-supplied key
}

// Tree is the arena that owns the laid-out scene. Node parent links are
// represented as NodeIDs rather than pointers (see Base's doc comment),
// so dropping a subtree during reconciliation never leaves a dangling
// back-reference for a router or focus ring to chase.
type Tree struct {
	entries []entry
	root    NodeID
}

// NewTree builds a fresh arena from root and its Children(), as if
// reconciling against an empty previous tree.
func NewTree(root Node) *Tree {
	t := &Tree{}
	t.root = t.insert(root, NoParent)
	return t
}

func (t *Tree) insert(n Node, parent NodeID) NodeID {
	id := NodeID(len(t.entries))
	t.entries = append(t.entries, entry{node: n, parent: parent, key: keyOf(n)})
	var children []NodeID
	for _, c := range n.Children() {
		children = append(children, t.insert(c, id))
	}
	t.entries[id].children = children
	return id
}

func keyOf(n Node) string {
	if k, ok := n.(Keyed); ok {
		return k.Key()
	}
	return ""
}

// Root returns the arena index of the tree's root node.
func (t *Tree) Root() NodeID { return t.root }

// Node returns the node stored at id, or nil if id is out of range.
func (t *Tree) Node(id NodeID) Node {
	if id < 0 || int(id) >= len(t.entries) {
		return nil
	}
	return t.entries[id].node
}

// ParentOf returns the parent of id, or NoParent at the root.
func (t *Tree) ParentOf(id NodeID) NodeID {
	if id < 0 || int(id) >= len(t.entries) {
		return NoParent
	}
	return t.entries[id].parent
}

// ChildrenOf returns the arena IDs of id's children, in render order.
func (t *Tree) ChildrenOf(id NodeID) []NodeID {
	if id < 0 || int(id) >= len(t.entries) {
		return nil
	}
	return t.entries[id].children
}

// Path returns the sequence of nodes from the root down to id, root
// first. Used by the router to build the focused-path binding search
// order (it is walked in reverse, focused-first).
func (t *Tree) Path(id NodeID) []Node {
	var ids []NodeID
	for cur := id; cur != NoParent; cur = t.ParentOf(cur) {
		ids = append(ids, cur)
	}
	path := make([]Node, len(ids))
	for i, nid := range ids {
		path[len(ids)-1-i] = t.Node(nid)
	}
	return path
}

// FindByNode returns the arena ID of n, or NoParent-sentinel-false if n is
// not present. Intended for small trees / tests; the router tracks IDs
// directly rather than searching.
func (t *Tree) FindByNode(n Node) (NodeID, bool) {
	for i, e := range t.entries {
		if e.node == n {
			return NodeID(i), true
		}
	}
	return NoParent, false
}

// FocusableDescendants walks the arena (not Node.Children(), so it
// reflects reconciled identity) depth-first in render order, returning
// every node from id down whose Focusable() is true.
func (t *Tree) FocusableDescendants(id NodeID) []Node {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var out []Node
	if n.Focusable() {
		out = append(out, n)
	}
	for _, c := range t.ChildrenOf(id) {
		out = append(out, t.FocusableDescendants(c)...)
	}
	return out
}

// FocusableDescendantIDs is FocusableDescendants, returning arena IDs
// instead of Nodes, for callers (the focus ring) that need to walk
// ancestors afterward.
func (t *Tree) FocusableDescendantIDs(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var out []NodeID
	if n.Focusable() {
		out = append(out, id)
	}
	for _, c := range t.ChildrenOf(id) {
		out = append(out, t.FocusableDescendantIDs(c)...)
	}
	return out
}

// NodeSnapshot is a read-only view of one arena entry: no Node reference
// a collaborator could invoke SetBounds/SetFocused through.
type NodeSnapshot struct {
	ID        NodeID
	Parent    NodeID
	Children  []NodeID
	Bounds    geom.Rect
	Focusable bool
	Focused   bool
	Key       string
}

// Snapshot returns a read-only copy of the whole arena, in arena order.
// This is the one view of the tree exposed to collaborators outside the
// render loop (a diagnostics surface, a recorder) — they read Bounds/
// Focusable/Focused/structure but hold nothing that can mutate the tree.
func (t *Tree) Snapshot() []NodeSnapshot {
	out := make([]NodeSnapshot, len(t.entries))
	for i, e := range t.entries {
		children := append([]NodeID(nil), e.children...)
		out[i] = NodeSnapshot{
			ID:        NodeID(i),
			Parent:    e.parent,
			Children:  children,
			Bounds:    e.node.Bounds(),
			Focusable: e.node.Focusable(),
			Focused:   e.node.Focused(),
			Key:       e.key,
		}
	}
	return out
}

// HitTest returns the topmost node (deepest, most-recently-drawn) whose
// HitBounds contains (x, y), considering every node in the tree rather
// than only focusable ones — used by mouse routing to find the binding
// target under the cursor, as distinct from the focus ring's own
// HitTest, which only considers focusable members.
func (t *Tree) HitTest(x, y int) (NodeID, bool) {
	var order []NodeID
	var walk func(id NodeID)
	walk = func(id NodeID) {
		order = append(order, id)
		for _, c := range t.ChildrenOf(id) {
			walk(c)
		}
	}
	walk(t.root)
	for i := len(order) - 1; i >= 0; i-- {
		if t.Node(order[i]).HitBounds().Contains(x, y) {
			return order[i], true
		}
	}
	return NoParent, false
}

// Reconcile replaces the tree's content with newRoot's structure,
// matching each new node against the previous frame's node occupying the
// same position (same parent, same index among siblings) or, if either
// node carries a key, the same key among siblings. A match carries the
// focus and bounds the old node held into the returned node's bookkeeping
// fields via carryState below; an unmatched description is
// inserted fresh and an unmatched previous node is dropped.
//
// Reconcile is the only place the tree's shape changes: routing and
// rendering only read it.
func (t *Tree) Reconcile(newRoot Node) {
	old := t.entries
	oldRoot := t.root
	t.entries = nil
	t.root = t.reconcileNode(newRoot, NoParent, old, oldRoot)
}

func (t *Tree) reconcileNode(n Node, parent NodeID, old []entry, oldID NodeID) NodeID {
	id := NodeID(len(t.entries))
	t.entries = append(t.entries, entry{node: n, parent: parent, key: keyOf(n)})

	if oldID != NoParent && int(oldID) < len(old) {
		carryState(old[oldID].node, n)
	}

	newChildren := n.Children()
	oldChildren := childIDsOf(old, oldID)
	matches := matchChildren(old, newChildren, oldChildren)

	children := make([]NodeID, len(newChildren))
	for i, c := range newChildren {
		children[i] = t.reconcileNode(c, id, old, matches[i])
	}
	t.entries[id].children = children
	return id
}

func childIDsOf(old []entry, id NodeID) []NodeID {
	if id == NoParent || int(id) >= len(old) {
		return nil
	}
	return old[id].children
}

// matchChildren pairs each of newChildren with the previous-frame child it
// reconciles against (or NoParent for a fresh insertion). Keyed children
// are matched by key first; everything else falls back to positional
// identity (same index among siblings lacking a match already taken).
func matchChildren(old []entry, newChildren []Node, oldChildren []NodeID) []NodeID {
	result := make([]NodeID, len(newChildren))
	for i := range result {
		result[i] = NoParent
	}
	consumed := make(map[NodeID]bool, len(oldChildren))

	byKey := make(map[string]NodeID)
	for _, oc := range oldChildren {
		if int(oc) < len(old) && old[oc].key != "" {
			byKey[old[oc].key] = oc
		}
	}

	for i, nc := range newChildren {
		k := keyOf(nc)
		if k == "" {
			continue
		}
		if oc, ok := byKey[k]; ok && !consumed[oc] {
			result[i] = oc
			consumed[oc] = true
		}
	}

	// Positional fallback: walk both sequences in order, skipping
	// indices already claimed by a keyed match, and pair whatever is
	// left by relative position.
	var freeOld []NodeID
	for _, oc := range oldChildren {
		if !consumed[oc] {
			freeOld = append(freeOld, oc)
		}
	}
	cursor := 0
	for i := range newChildren {
		if result[i] != NoParent {
			continue
		}
		if cursor < len(freeOld) {
			result[i] = freeOld[cursor]
			cursor++
		}
	}
	return result
}

// carryState transfers the persistent, reconciliation-spanning fields
// (focus and bounds) from a matched previous-frame node to its
// replacement. Scroll position and caret state live on the concrete
// widget's own fields and survive automatically whenever a widget
// chooses to reuse its previous instance rather than constructing a
// fresh one inside its own Children() implementation — carryState only
// handles the fields the Node interface itself exposes.
func carryState(from, to Node) {
	if from == nil || to == nil {
		return
	}
	to.SetFocused(from.Focused())
	to.SetBounds(from.Bounds())
}
