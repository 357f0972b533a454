package layout

import (
	"testing"

	"github.com/loomterm/loom/cell"
	"github.com/loomterm/loom/geom"
	"github.com/loomterm/loom/node"
)

type box struct {
	node.Base
	children []node.Node
	weight   int
}

func (b *box) Children() []node.Node             { return b.children }
func (b *box) FocusableDescendants() []node.Node  { return node.WalkFocusableDescendants(b, b.children) }
func (b *box) BuildBindings(node.BindingDeclarer) {}
func (b *box) HandleInput(node.InputEvent) node.Handling {
	return node.NotHandled
}
func (b *box) Render(cell.Canvas) {}
func (b *box) Weight() int {
	if b.weight <= 0 {
		return 1
	}
	return b.weight
}

type hboxContainer struct {
	box
	policy HBox
}

func (c *hboxContainer) Layout(bounds geom.Rect, children []node.Node) {
	c.policy.Layout(bounds, children)
}

func TestHBoxDividesWidthEvenly(t *testing.T) {
	a, b, c := &box{}, &box{}, &box{}
	root := &hboxContainer{box: box{children: []node.Node{a, b, c}}}

	Apply(root, geom.Rect{X: 0, Y: 0, W: 9, H: 5})

	for _, child := range []*box{a, b, c} {
		if child.Bounds().W != 3 || child.Bounds().H != 5 {
			t.Fatalf("expected each of 3 children to get width 3, got %+v", child.Bounds())
		}
	}
	if a.Bounds().X != 0 || b.Bounds().X != 3 || c.Bounds().X != 6 {
		t.Fatalf("expected sequential x offsets, got %d %d %d", a.Bounds().X, b.Bounds().X, c.Bounds().X)
	}
}

func TestHBoxRemainderGoesToEarliestChildren(t *testing.T) {
	a, b := &box{}, &box{}
	root := &hboxContainer{box: box{children: []node.Node{a, b}}}

	Apply(root, geom.Rect{X: 0, Y: 0, W: 5, H: 1})

	if a.Bounds().W != 3 || b.Bounds().W != 2 {
		t.Fatalf("expected remainder cell to go to the first child: got %d, %d", a.Bounds().W, b.Bounds().W)
	}
}

func TestHBoxRespectsWeight(t *testing.T) {
	a := &box{weight: 2}
	b := &box{weight: 1}
	root := &hboxContainer{box: box{children: []node.Node{a, b}}}

	Apply(root, geom.Rect{X: 0, Y: 0, W: 9, H: 1})

	if a.Bounds().W != 6 || b.Bounds().W != 3 {
		t.Fatalf("expected a 2:1 weighted split of 9 to be 6:3, got %d:%d", a.Bounds().W, b.Bounds().W)
	}
}

func TestGridPlacesChildrenRowMajor(t *testing.T) {
	n1, n2, n3, n4 := &box{}, &box{}, &box{}, &box{}
	g := Grid{Cols: 2}
	g.Layout(geom.Rect{X: 0, Y: 0, W: 10, H: 10}, []node.Node{n1, n2, n3, n4})

	if n1.Bounds().X != 0 || n1.Bounds().Y != 0 {
		t.Fatalf("expected first cell at origin, got %+v", n1.Bounds())
	}
	if n2.Bounds().Y != n1.Bounds().Y {
		t.Fatalf("expected first row cells to share Y")
	}
	if n3.Bounds().Y == n1.Bounds().Y {
		t.Fatalf("expected third cell to start a new row")
	}
}

func TestSplitterDividesAndExposesDivider(t *testing.T) {
	s := NewSplitter(true)
	first, second := &box{}, &box{}
	divider := s.LayoutPanes(geom.Rect{X: 0, Y: 0, W: 21, H: 5}, first, second)

	if first.Bounds().W+divider.W+second.Bounds().W != 21 {
		t.Fatalf("expected panes plus divider to cover the full width, got %d+%d+%d",
			first.Bounds().W, divider.W, second.Bounds().W)
	}
	if divider.W != 1 {
		t.Fatalf("expected a 1-cell divider by default, got %d", divider.W)
	}
}

func TestSplitterSetRatioFromPointClamps(t *testing.T) {
	s := NewSplitter(true)
	s.SetRatioFromPoint(geom.Rect{X: 0, Y: 0, W: 10, H: 5}, -100, 0)
	if s.clampedRatio() != 0.05 {
		t.Fatalf("expected ratio to clamp to 0.05 for an out-of-range point, got %v", s.clampedRatio())
	}
}

func TestZStackGivesEveryChildFullBounds(t *testing.T) {
	a, b := &box{}, &box{}
	z := ZStack{}
	bounds := geom.Rect{X: 1, Y: 2, W: 10, H: 4}
	z.Layout(bounds, []node.Node{a, b})

	if a.Bounds() != bounds || b.Bounds() != bounds {
		t.Fatalf("expected every child to receive the full container bounds")
	}
}
