package focus

import (
	"testing"

	"github.com/loomterm/loom/cell"
	"github.com/loomterm/loom/geom"
	"github.com/loomterm/loom/node"
)

type stubNode struct {
	node.Base
	name     string
	children []node.Node
	syncs    []int
}

func newStub(name string, focusable bool) *stubNode {
	n := &stubNode{name: name}
	n.SetFocusable(focusable)
	return n
}

func (n *stubNode) Children() []node.Node { return n.children }
func (n *stubNode) FocusableDescendants() []node.Node {
	return node.WalkFocusableDescendants(n, n.children)
}
func (n *stubNode) BuildBindings(node.BindingDeclarer)    {}
func (n *stubNode) HandleInput(node.InputEvent) node.Handling {
	return node.NotHandled
}
func (n *stubNode) Render(cell.Canvas) {}
func (n *stubNode) SyncFocusIndex(i int) {
	n.syncs = append(n.syncs, i)
}

func buildRing(members ...*stubNode) (*Ring, *node.Tree) {
	container := &stubNode{name: "container"}
	for _, m := range members {
		container.children = append(container.children, m)
	}
	tr := node.NewTree(container)
	r := New()
	r.Rebuild(tr)
	return r, tr
}

func TestRebuildEmptyRingNoOps(t *testing.T) {
	r, _ := buildRing()
	if r.FocusNext() {
		t.Fatalf("expected FocusNext on empty ring to return false")
	}
	if r.EnsureFocus() {
		t.Fatalf("expected EnsureFocus on empty ring to return false")
	}
}

func TestFocusNextThenPreviousIsIdentity(t *testing.T) {
	a, b, c := newStub("a", true), newStub("b", true), newStub("c", true)
	r, _ := buildRing(a, b, c)
	r.EnsureFocus()
	start := r.Focused()

	r.FocusNext()
	r.FocusPrevious()

	if r.Focused() != start {
		t.Fatalf("focus_next . focus_previous should be identity, got different focused member")
	}
}

func TestFocusNextCyclesAndUnfocusesPrevious(t *testing.T) {
	a, b := newStub("a", true), newStub("b", true)
	r, _ := buildRing(a, b)
	r.EnsureFocus()
	if r.Focused() != node.Node(a) {
		t.Fatalf("expected a focused first")
	}
	r.FocusNext()
	if a.Focused() {
		t.Fatalf("expected a to be unfocused after FocusNext")
	}
	if !b.Focused() {
		t.Fatalf("expected b to be focused after FocusNext")
	}
	r.FocusNext()
	if r.Focused() != node.Node(a) {
		t.Fatalf("expected FocusNext to cycle back to a")
	}
}

func TestFocusWherePicksFirstMatch(t *testing.T) {
	a, b := newStub("a", true), newStub("b", true)
	r, _ := buildRing(a, b)

	ok := r.FocusWhere(func(n node.Node) bool { return n.(*stubNode).name == "b" })
	if !ok || r.Focused() != node.Node(b) {
		t.Fatalf("expected FocusWhere to focus b")
	}
}

func TestFocusRejectsNonMember(t *testing.T) {
	a := newStub("a", true)
	r, _ := buildRing(a)
	outsider := newStub("outsider", true)
	if r.Focus(outsider) {
		t.Fatalf("expected Focus on a non-member to return false")
	}
}

func TestEnsureFocusIsNoOpWhenAlreadyFocused(t *testing.T) {
	a, b := newStub("a", true), newStub("b", true)
	r, _ := buildRing(a, b)
	r.Focus(b)
	r.EnsureFocus()
	if r.Focused() != node.Node(b) {
		t.Fatalf("EnsureFocus should not override an existing focus")
	}
}

func TestHitTestReturnsTopmostInRenderOrder(t *testing.T) {
	a := newStub("a", true)
	a.SetBounds(geom.Rect{X: 0, Y: 0, W: 10, H: 10})
	b := newStub("b", true)
	b.SetBounds(geom.Rect{X: 0, Y: 0, W: 10, H: 10})
	r, _ := buildRing(a, b)

	hit := r.HitTest(5, 5)
	if hit != node.Node(b) {
		t.Fatalf("expected overlapping hit-test to return the last-rendered member")
	}
}

func TestHitTestReturnsNilOutsideAnyMember(t *testing.T) {
	a := newStub("a", true)
	a.SetBounds(geom.Rect{X: 0, Y: 0, W: 2, H: 2})
	r, _ := buildRing(a)

	if hit := r.HitTest(50, 50); hit != nil {
		t.Fatalf("expected no hit outside any member's bounds, got %v", hit)
	}
}

func TestFocusNextSyncsAncestorIndex(t *testing.T) {
	a, b := newStub("a", true), newStub("b", true)
	tabbed := &stubNode{name: "tabbed", children: []node.Node{a, b}}
	tr := node.NewTree(tabbed)
	r := New()
	r.Rebuild(tr)

	r.EnsureFocus()
	r.FocusNext()

	if len(tabbed.syncs) == 0 || tabbed.syncs[len(tabbed.syncs)-1] != 1 {
		t.Fatalf("expected ancestor SyncFocusIndex(1) after focusing b, got %v", tabbed.syncs)
	}
}
