package binding

import (
	"testing"

	"github.com/loomterm/loom/actx"
	"github.com/loomterm/loom/key"
)

func noop(*actx.ActionContext) error { return nil }

func TestChordTrieSingleKeyLeaf(t *testing.T) {
	trie := NewChordTrie([]KeyBinding{
		{Steps: []key.KeyStep{{Key: key.KeyA}}, Handler: noop},
	})
	n := trie.Lookup(nil, key.KeyStep{Key: key.KeyA})
	if n == nil || !n.IsLeaf() {
		t.Fatalf("expected a leaf match for single-key binding")
	}
	if trie.Lookup(nil, key.KeyStep{Key: key.KeyB}) != nil {
		t.Fatalf("expected no match for an undeclared step")
	}
}

func TestChordTrieMultiKeyIntermediateHasChildrenNotLeaf(t *testing.T) {
	trie := NewChordTrie([]KeyBinding{
		{Steps: []key.KeyStep{{Key: key.KeyG}, {Key: key.KeyG}}, Handler: noop},
	})
	first := trie.Lookup(nil, key.KeyStep{Key: key.KeyG})
	if first == nil || first.HasAction() {
		t.Fatalf("intermediate node of a 2-step chord should have no action")
	}
	if !first.HasChildren() {
		t.Fatalf("intermediate node should have children")
	}
	second := trie.Lookup(first, key.KeyStep{Key: key.KeyG})
	if second == nil || !second.IsLeaf() {
		t.Fatalf("expected leaf at the end of the chord")
	}
}

func TestChordTrieAmbiguousNodeHasActionAndChildren(t *testing.T) {
	trie := NewChordTrie([]KeyBinding{
		{Steps: []key.KeyStep{{Key: key.KeyG}}, Handler: noop, Description: "go-to-top"},
		{Steps: []key.KeyStep{{Key: key.KeyG}, {Key: key.KeyG}}, Handler: noop, Description: "go-to-bottom"},
	})
	n := trie.Lookup(nil, key.KeyStep{Key: key.KeyG})
	if !n.HasAction() || !n.HasChildren() {
		t.Fatalf("expected the 'g' node to have both an action and children (the disambiguation case)")
	}
	if n.IsLeaf() {
		t.Fatalf("a node with children is never a leaf, even with an action")
	}
}

func TestChordTrieLaterInsertionOverridesLeaf(t *testing.T) {
	trie := NewChordTrie([]KeyBinding{
		{Steps: []key.KeyStep{{Key: key.KeyA}}, Handler: noop, Description: "first"},
		{Steps: []key.KeyStep{{Key: key.KeyA}}, Handler: noop, Description: "second"},
	})
	n := trie.Lookup(nil, key.KeyStep{Key: key.KeyA})
	if n.Action().Description != "second" {
		t.Fatalf("expected later insertion to override the earlier leaf, got %q", n.Action().Description)
	}
}

func TestMouseBindingMatchesByMinClickCount(t *testing.T) {
	b := MouseBinding{Button: key.ButtonLeft, Action: key.ActionDown, MinClickCount: 2}
	if b.Matches(key.MouseEvent{Button: key.ButtonLeft, Action: key.ActionDown, ClickCount: 1}) {
		t.Fatalf("expected single click not to match a double-click binding")
	}
	if !b.Matches(key.MouseEvent{Button: key.ButtonLeft, Action: key.ActionDown, ClickCount: 3}) {
		t.Fatalf("expected a triple click to match a double-click binding (>= semantics)")
	}
}
