package binding

import "github.com/loomterm/loom/key"

// TrieNode is one node of a ChordTrie: children keyed by the next
// KeyStep, and an optional terminal binding if a chord ends here.
type TrieNode struct {
	children map[key.KeyStep]*TrieNode
	action   *KeyBinding
}

// HasChildren reports whether any chord continues past this node.
func (n *TrieNode) HasChildren() bool {
	return n != nil && len(n.children) > 0
}

// HasAction reports whether a chord terminates at this node.
func (n *TrieNode) HasAction() bool {
	return n != nil && n.action != nil
}

// IsLeaf reports whether this node holds an action and no continuations —
// an unambiguous chord terminus.
func (n *TrieNode) IsLeaf() bool {
	return n.HasAction() && !n.HasChildren()
}

// Action returns the binding stored at this node, or nil.
func (n *TrieNode) Action() *KeyBinding {
	if n == nil {
		return nil
	}
	return n.action
}

// Child returns the child reached by step, or nil.
func (n *TrieNode) Child(step key.KeyStep) *TrieNode {
	if n == nil {
		return nil
	}
	return n.children[step]
}

// ChordTrie is a prefix tree over KeySteps, built fresh from a set of
// KeyBindings (per the router's per-layer and global lookups — it is
// ephemeral and rebuilt on every routing pass, never shared across
// events).
type ChordTrie struct {
	root TrieNode
}

// NewChordTrie builds a trie from bindings, inserting them in order; a
// later binding whose steps exactly match an earlier one's replaces it.
func NewChordTrie(bindings []KeyBinding) *ChordTrie {
	t := &ChordTrie{}
	for i := range bindings {
		t.Insert(bindings[i])
	}
	return t
}

// Insert walks the trie by b.Steps, creating nodes as needed, and stores
// b at the terminal node, replacing any binding already there.
func (t *ChordTrie) Insert(b KeyBinding) {
	cur := &t.root
	for _, step := range b.Steps {
		if cur.children == nil {
			cur.children = make(map[key.KeyStep]*TrieNode)
		}
		next, ok := cur.children[step]
		if !ok {
			next = &TrieNode{}
			cur.children[step] = next
		}
		cur = next
	}
	bCopy := b
	cur.action = &bCopy
}

// Root returns the trie's root node, representing "no key steps
// consumed yet".
func (t *ChordTrie) Root() *TrieNode {
	return &t.root
}

// Lookup descends one step from node (or the trie root if node is nil),
// returning the node reached, or nil if step has no continuation there.
func (t *ChordTrie) Lookup(from *TrieNode, step key.KeyStep) *TrieNode {
	if from == nil {
		from = &t.root
	}
	return from.Child(step)
}

// LookupEvent is Lookup, deriving the KeyStep from ev.
func (t *ChordTrie) LookupEvent(from *TrieNode, ev key.KeyEvent) *TrieNode {
	return t.Lookup(from, ev.Step())
}
