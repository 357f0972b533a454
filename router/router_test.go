package router

import (
	"testing"

	"github.com/loomterm/loom/actx"
	"github.com/loomterm/loom/cell"
	"github.com/loomterm/loom/focus"
	"github.com/loomterm/loom/geom"
	"github.com/loomterm/loom/key"
	"github.com/loomterm/loom/node"
)

// testNode is a configurable Node fixture: its BuildBindings and
// HandleInput are driven by function fields so each test can wire up
// exactly the bindings it needs.
type testNode struct {
	node.Base
	name       string
	children   []node.Node
	onBuild    func(d node.BindingDeclarer)
	onFallback func(ev node.InputEvent) node.Handling
}

func (n *testNode) Children() []node.Node { return n.children }
func (n *testNode) FocusableDescendants() []node.Node {
	return node.WalkFocusableDescendants(n, n.children)
}
func (n *testNode) BuildBindings(d node.BindingDeclarer) {
	if n.onBuild != nil {
		n.onBuild(d)
	}
}
func (n *testNode) HandleInput(ev node.InputEvent) node.Handling {
	if n.onFallback != nil {
		return n.onFallback(ev)
	}
	return node.NotHandled
}
func (n *testNode) Render(cell.Canvas) {}

func handlerSetting(flag *bool) actx.Handler {
	return func(*actx.ActionContext) error {
		*flag = true
		return nil
	}
}

func singleFocusedSetup(t *testing.T, child *testNode) (*node.Tree, *focus.Ring) {
	t.Helper()
	child.SetFocusable(true)
	root := &testNode{name: "root", children: []node.Node{child}}
	tree := node.NewTree(root)
	ring := focus.New()
	ring.Rebuild(tree)
	ring.EnsureFocus()
	return tree, ring
}

func TestDispatchKeySingleBinding(t *testing.T) {
	var fired bool
	child := &testNode{name: "child", onBuild: func(d node.BindingDeclarer) {
		d.DeclareKey([]key.KeyStep{{Key: key.KeyA}}, handlerSetting(&fired), "", false)
	}}
	tree, ring := singleFocusedSetup(t, child)
	r := New(Callbacks{})

	h, err := r.DispatchKey(tree, ring, key.KeyEvent{Key: key.KeyA})
	if err != nil || h != node.Handled || !fired {
		t.Fatalf("expected single binding to fire, handled=%v err=%v fired=%v", h, err, fired)
	}
}

func TestDispatchKeyChordTwoSteps(t *testing.T) {
	var fired bool
	child := &testNode{name: "child", onBuild: func(d node.BindingDeclarer) {
		d.DeclareKey([]key.KeyStep{{Key: key.KeyG}, {Key: key.KeyG}}, handlerSetting(&fired), "", false)
	}}
	tree, ring := singleFocusedSetup(t, child)
	r := New(Callbacks{})

	h1, _ := r.DispatchKey(tree, ring, key.KeyEvent{Key: key.KeyG})
	if h1 != node.Handled || fired {
		t.Fatalf("expected first chord step to be pending, not fire: handled=%v fired=%v", h1, fired)
	}
	if r.State().Phase != MidChord {
		t.Fatalf("expected router to be MidChord after first step")
	}
	h2, _ := r.DispatchKey(tree, ring, key.KeyEvent{Key: key.KeyG})
	if h2 != node.Handled || !fired {
		t.Fatalf("expected second chord step to fire and be handled")
	}
	if r.State().Phase != Idle {
		t.Fatalf("expected router to reset to Idle after chord completes")
	}
}

func TestDispatchKeyEscapeCancelsChord(t *testing.T) {
	var fired bool
	child := &testNode{name: "child", onBuild: func(d node.BindingDeclarer) {
		d.DeclareKey([]key.KeyStep{{Key: key.KeyG}, {Key: key.KeyG}}, handlerSetting(&fired), "", false)
	}}
	tree, ring := singleFocusedSetup(t, child)
	r := New(Callbacks{})

	r.DispatchKey(tree, ring, key.KeyEvent{Key: key.KeyG})
	h, _ := r.DispatchKey(tree, ring, key.KeyEvent{Key: key.KeyEscape})
	if h != node.Handled {
		t.Fatalf("expected Escape to be Handled")
	}
	if r.State().Phase != Idle || fired {
		t.Fatalf("expected Escape to cancel the chord without firing, phase=%v fired=%v", r.State().Phase, fired)
	}
}

func TestDispatchKeyChildOverridesParent(t *testing.T) {
	var parentFired, childFired bool
	child := &testNode{name: "child", onBuild: func(d node.BindingDeclarer) {
		d.DeclareKey([]key.KeyStep{{Key: key.KeyA}}, handlerSetting(&childFired), "", false)
	}}
	child.SetFocusable(true)
	root := &testNode{name: "root", children: []node.Node{child}, onBuild: func(d node.BindingDeclarer) {
		d.DeclareKey([]key.KeyStep{{Key: key.KeyA}}, handlerSetting(&parentFired), "", false)
	}}
	tree := node.NewTree(root)
	ring := focus.New()
	ring.Rebuild(tree)
	ring.EnsureFocus()
	r := New(Callbacks{})

	r.DispatchKey(tree, ring, key.KeyEvent{Key: key.KeyA})
	if !childFired || parentFired {
		t.Fatalf("expected the focused child's binding to win over the parent's, child=%v parent=%v", childFired, parentFired)
	}
}

func TestDispatchKeyBubblesToHandleInput(t *testing.T) {
	var rootSaw bool
	child := &testNode{name: "child"}
	child.SetFocusable(true)
	root := &testNode{name: "root", children: []node.Node{child}, onFallback: func(ev node.InputEvent) node.Handling {
		rootSaw = true
		return node.Handled
	}}
	tree := node.NewTree(root)
	ring := focus.New()
	ring.Rebuild(tree)
	ring.EnsureFocus()
	r := New(Callbacks{})

	h, _ := r.DispatchKey(tree, ring, key.KeyEvent{Key: key.KeyZ})
	if h != node.Handled || !rootSaw {
		t.Fatalf("expected unmatched key to bubble to the root's HandleInput")
	}
}

func TestDispatchKeyCharacterFallback(t *testing.T) {
	var typed string
	child := &testNode{name: "child", onBuild: func(d node.BindingDeclarer) {
		d.DeclareCharacter(func(string) bool { return true }, func(ac *actx.ActionContext) error {
			typed = "matched"
			return nil
		}, "any")
	}}
	tree, ring := singleFocusedSetup(t, child)
	r := New(Callbacks{})

	h, _ := r.DispatchKey(tree, ring, key.KeyEvent{Text: "x"})
	if h != node.Handled || typed != "matched" {
		t.Fatalf("expected character binding to catch unmatched printable input, typed=%q", typed)
	}
}

func TestDispatchKeyGlobalBindingConflictErrors(t *testing.T) {
	var fired bool
	a := &testNode{name: "a", onBuild: func(d node.BindingDeclarer) {
		d.DeclareKey([]key.KeyStep{{Key: key.KeyQ}}, handlerSetting(&fired), "", true)
	}}
	b := &testNode{name: "b", onBuild: func(d node.BindingDeclarer) {
		d.DeclareKey([]key.KeyStep{{Key: key.KeyQ}}, handlerSetting(&fired), "", true)
	}}
	root := &testNode{name: "root", children: []node.Node{a, b}}
	tree := node.NewTree(root)
	ring := focus.New()
	ring.Rebuild(tree)
	r := New(Callbacks{})

	_, err := r.DispatchKey(tree, ring, key.KeyEvent{Key: key.KeyQ})
	if err == nil {
		t.Fatalf("expected a global binding conflict error")
	}
}

func TestDispatchMouseDragCapturesUntilUp(t *testing.T) {
	var moves int
	var ended bool
	child := &testNode{name: "child", onBuild: func(d node.BindingDeclarer) {
		d.DeclareDrag(key.ButtonLeft, 0, func(ac *actx.ActionContext, start key.MouseEvent) actx.DragHandler {
			return actx.DragHandler{
				OnMove: func(ac *actx.ActionContext, ev key.MouseEvent) { moves++ },
				OnEnd:  func(ac *actx.ActionContext, ev key.MouseEvent) { ended = true },
			}
		})
	}}
	child.SetBounds(geom.Rect{X: 0, Y: 0, W: 10, H: 10})
	root := &testNode{name: "root", children: []node.Node{child}}
	tree := node.NewTree(root)
	ring := focus.New()
	ring.Rebuild(tree)
	r := New(Callbacks{})

	r.DispatchMouse(tree, ring, key.MouseEvent{Button: key.ButtonLeft, Action: key.ActionDown, X: 5, Y: 5})
	r.DispatchMouse(tree, ring, key.MouseEvent{Button: key.ButtonLeft, Action: key.ActionDrag, X: 6, Y: 5, ClickCount: 1})
	r.DispatchMouse(tree, ring, key.MouseEvent{Button: key.ButtonLeft, Action: key.ActionDrag, X: 7, Y: 5, ClickCount: 1})
	r.DispatchMouse(tree, ring, key.MouseEvent{Button: key.ButtonLeft, Action: key.ActionUp, X: 7, Y: 5, ClickCount: 1})

	if moves != 2 || !ended {
		t.Fatalf("expected 2 drag moves and a completed drag, got moves=%d ended=%v", moves, ended)
	}
	if r.dragHandler != nil {
		t.Fatalf("expected drag capture to clear after Up")
	}
}
