package node

import (
	"testing"

	"github.com/loomterm/loom/cell"
	"github.com/loomterm/loom/geom"
)

// fixture is a minimal Node used across these tests: a leaf or container
// depending on whether it carries children, with an optional key.
type fixture struct {
	Base
	name     string
	key      string
	children []Node
}

func leaf(name string) *fixture { return &fixture{name: name} }

func keyed(name, key string) *fixture {
	return &fixture{name: name, key: key}
}

func (f *fixture) Key() string { return f.key }

func (f *fixture) Children() []Node { return f.children }

func (f *fixture) FocusableDescendants() []Node {
	return WalkFocusableDescendants(f, f.children)
}

func (f *fixture) BuildBindings(BindingDeclarer)   {}
func (f *fixture) HandleInput(InputEvent) Handling { return NotHandled }
func (f *fixture) Render(cell.Canvas)               {}

func TestTreeBuildsArenaFromChildren(t *testing.T) {
	a, b := leaf("a"), leaf("b")
	root := &fixture{name: "root", children: []Node{a, b}}

	tr := NewTree(root)

	if tr.Node(tr.Root()) != Node(root) {
		t.Fatalf("root node mismatch")
	}
	kids := tr.ChildrenOf(tr.Root())
	if len(kids) != 2 {
		t.Fatalf("expected 2 children, got %d", len(kids))
	}
	if tr.Node(kids[0]) != Node(a) || tr.Node(kids[1]) != Node(b) {
		t.Fatalf("children out of order or wrong nodes")
	}
	if tr.ParentOf(kids[0]) != tr.Root() {
		t.Fatalf("child parent link wrong")
	}
	if tr.ParentOf(tr.Root()) != NoParent {
		t.Fatalf("root should have NoParent")
	}
}

func TestReconcilePreservesFocusAndBoundsForPositionalMatch(t *testing.T) {
	a := leaf("a")
	a.SetFocusable(true)
	a.SetFocused(true)
	a.SetBounds(geom.Rect{X: 1, Y: 2, W: 3, H: 4})
	root := &fixture{name: "root", children: []Node{a}}
	tr := NewTree(root)

	a2 := leaf("a")
	a2.SetFocusable(true)
	newRoot := &fixture{name: "root", children: []Node{a2}}

	tr.Reconcile(newRoot)

	got := tr.Node(tr.ChildrenOf(tr.Root())[0])
	if !got.Focused() {
		t.Fatalf("expected focus to be carried across reconciliation")
	}
	if got.Bounds() != (geom.Rect{X: 1, Y: 2, W: 3, H: 4}) {
		t.Fatalf("expected bounds to be carried across reconciliation, got %+v", got.Bounds())
	}
}

func TestReconcileMatchesByKeyAcrossReorder(t *testing.T) {
	x := keyed("x", "x")
	x.SetFocused(true)
	y := keyed("y", "y")
	root := &fixture{name: "root", children: []Node{x, y}}
	tr := NewTree(root)

	// Reordered: y now comes first, x second — a positional match would
	// wrongly carry x's focus onto y.
	newY := keyed("y", "y")
	newX := keyed("x", "x")
	newRoot := &fixture{name: "root", children: []Node{newY, newX}}

	tr.Reconcile(newRoot)

	kids := tr.ChildrenOf(tr.Root())
	gotY := tr.Node(kids[0])
	gotX := tr.Node(kids[1])
	if gotY.Focused() {
		t.Fatalf("keyed reconciliation should not have carried focus onto y")
	}
	if !gotX.Focused() {
		t.Fatalf("keyed reconciliation should have carried x's focus onto the new x, wherever it moved")
	}
}

func TestReconcileDropsUnmatchedAndInsertsFresh(t *testing.T) {
	a, b := leaf("a"), leaf("b")
	root := &fixture{name: "root", children: []Node{a, b}}
	tr := NewTree(root)

	c := leaf("c")
	newRoot := &fixture{name: "root", children: []Node{c}}
	tr.Reconcile(newRoot)

	kids := tr.ChildrenOf(tr.Root())
	if len(kids) != 1 {
		t.Fatalf("expected 1 child after reconciliation, got %d", len(kids))
	}
	if got := tr.Node(kids[0]).(*fixture); got.name != "c" {
		t.Fatalf("expected fresh node c, got %s", got.name)
	}
}

func TestFocusableDescendantsDepthFirstRenderOrder(t *testing.T) {
	leafA := leaf("a")
	leafA.SetFocusable(true)
	leafB := leaf("b")
	leafB.SetFocusable(true)
	container := &fixture{name: "mid", children: []Node{leafA, leafB}}
	container.SetFocusable(false)
	root := &fixture{name: "root", children: []Node{container}}

	tr := NewTree(root)
	got := tr.FocusableDescendants(tr.Root())
	if len(got) != 2 {
		t.Fatalf("expected 2 focusable descendants, got %d", len(got))
	}
	if got[0].(*fixture).name != "a" || got[1].(*fixture).name != "b" {
		t.Fatalf("expected render order a, b; got %s, %s", got[0].(*fixture).name, got[1].(*fixture).name)
	}
}

func TestPathIsRootFirst(t *testing.T) {
	a := leaf("a")
	root := &fixture{name: "root", children: []Node{a}}
	tr := NewTree(root)

	id, ok := tr.FindByNode(a)
	if !ok {
		t.Fatalf("expected to find a in the tree")
	}
	path := tr.Path(id)
	if len(path) != 2 {
		t.Fatalf("expected path length 2, got %d", len(path))
	}
	if path[0].(*fixture).name != "root" || path[1].(*fixture).name != "a" {
		t.Fatalf("expected root-first path, got %s, %s", path[0].(*fixture).name, path[1].(*fixture).name)
	}
}
