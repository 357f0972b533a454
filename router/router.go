// Package router implements the input router (§4.5): the single entry
// point per input event that collects bindings along the focused path,
// resolves matches under a fixed priority order, maintains chord state,
// and bubbles unmatched events to handle_input.
package router

import (
	"errors"
	"fmt"

	"github.com/loomterm/loom/actx"
	"github.com/loomterm/loom/binding"
	"github.com/loomterm/loom/focus"
	"github.com/loomterm/loom/key"
	"github.com/loomterm/loom/node"
)

// ErrGlobalBindingConflict is returned by DispatchKey when two different
// nodes each declare a global binding whose chord begins with the same
// key step.
var ErrGlobalBindingConflict = errors.New("router: conflicting global key bindings")

// Callbacks are the loop-owned hooks threaded into every ActionContext
// the router builds. Any field may be nil.
type Callbacks struct {
	RequestStop     func()
	CopyToClipboard func(mime string, data []byte)
	Invalidate      func()
	Cancelled       func() bool
}

// Router is the per-app router instance: it owns State and drag-capture
// bookkeeping across events within a frame (and across frames, since
// reconciliation only replaces the tree, never the router).
type Router struct {
	callbacks Callbacks
	state     State
	onChord   func(midChord bool)

	// Mouse capture: while non-nil, Drag/Up events go straight to this
	// handler regardless of cursor position, per §4.5 mouse routing.
	dragHandler *actx.DragHandler
}

// New returns an idle router using callbacks for every ActionContext it
// builds.
func New(callbacks Callbacks) *Router {
	return &Router{callbacks: callbacks}
}

// OnChordStateChanged registers the observable fired on every Idle/
// MidChord transition.
func (r *Router) OnChordStateChanged(fn func(midChord bool)) {
	r.onChord = fn
}

// State returns the router's current state, for diagnostics and tests.
func (r *Router) State() State { return r.state }

// Reset forces the router back to Idle, clearing any pending chord and
// drag capture. Called by the render loop after a handler panic, so a
// crashed frame cannot leave the router wedged mid-chord or mid-drag.
func (r *Router) Reset() {
	r.resetChord()
	r.dragHandler = nil
}

func (r *Router) setPhase(p Phase) {
	if r.state.Phase == p {
		return
	}
	r.state.Phase = p
	if r.onChord != nil {
		r.onChord(p == MidChord)
	}
}

func (r *Router) resetChord() {
	wasMid := r.state.Phase == MidChord
	r.state.reset()
	if wasMid && r.onChord != nil {
		r.onChord(false)
	}
}

// buildActionContext constructs the ActionContext for one dispatched
// event. The capability accessors (Notify/ShowPopup/.../CloseWindow) walk
// from whichever node is currently focused — the tree position a
// declaring handler is conceptually running "at" — up through ancestors
// via node.AsNotificationHost/AsPopupHost/AsWindowHost (§3).
func (r *Router) buildActionContext(tree *node.Tree, ring *focus.Ring) *actx.ActionContext {
	origin := func() (node.NodeID, bool) { return ring.FocusedID() }

	return &actx.ActionContext{
		FocusNext:     ring.FocusNext,
		FocusPrevious: ring.FocusPrevious,
		FocusWhere: func(pred func(actx.Focusable) bool) bool {
			return ring.FocusWhere(func(n node.Node) bool { return pred(n) })
		},
		Focus: func(f actx.Focusable) bool {
			n, ok := f.(node.Node)
			if !ok {
				return false
			}
			return ring.Focus(n)
		},
		RequestStop:     r.callbacks.RequestStop,
		CopyToClipboard: r.callbacks.CopyToClipboard,
		Invalidate:      r.callbacks.Invalidate,
		Cancelled:       r.callbacks.Cancelled,

		Notify: func(message string) bool {
			id, ok := origin()
			if !ok {
				return false
			}
			h := node.AsNotificationHost(tree, id)
			if h == nil {
				return false
			}
			h.Notify(message)
			return true
		},
		ShowPopup: func(content interface{}) bool {
			id, ok := origin()
			if !ok {
				return false
			}
			n, ok := content.(node.Node)
			if !ok {
				return false
			}
			h := node.AsPopupHost(tree, id)
			if h == nil {
				return false
			}
			h.ShowPopup(n)
			return true
		},
		DismissPopup: func() bool {
			id, ok := origin()
			if !ok {
				return false
			}
			h := node.AsPopupHost(tree, id)
			if h == nil {
				return false
			}
			h.DismissPopup()
			return true
		},
		RaiseWindow: func(w interface{}) bool {
			id, ok := origin()
			if !ok {
				return false
			}
			n, ok := w.(node.Node)
			if !ok {
				return false
			}
			h := node.AsWindowHost(tree, id)
			if h == nil {
				return false
			}
			h.RaiseWindow(n)
			return true
		},
		CloseWindow: func(w interface{}) bool {
			id, ok := origin()
			if !ok {
				return false
			}
			n, ok := w.(node.Node)
			if !ok {
				return false
			}
			h := node.AsWindowHost(tree, id)
			if h == nil {
				return false
			}
			h.CloseWindow(n)
			return true
		},
	}
}

// DispatchKey runs the key routing algorithm of §4.5 against ev,
// returning whether the event was handled. A non-nil error is either a
// global-binding conflict (wrapping ErrGlobalBindingConflict; the event
// is then not routed at all and NotHandled is returned) or a handler's
// own error, wrapped; the render loop surfaces either as a fatal phase
// error.
func (r *Router) DispatchKey(tree *node.Tree, ring *focus.Ring, ev key.KeyEvent) (node.Handling, error) {
	ac := r.buildActionContext(tree, ring)

	// 2. Global pass.
	globals, conflictErr := collectGlobalBindings(tree)
	if conflictErr != nil {
		return node.NotHandled, conflictErr
	}
	gt := binding.NewChordTrie(globals)
	if gn := gt.LookupEvent(nil, ev); gn != nil {
		switch {
		case gn.IsLeaf():
			r.resetChord()
			return r.execute(gn.Action(), ac)
		case gn.HasChildren():
			// Global chords are not resumed across events (documented
			// limitation); the event is reserved but nothing advances.
			return node.Handled, nil
		}
	}

	// 3. Path construction.
	path := buildPath(tree, ring)

	// 4. Chord cancellation.
	if r.state.Phase == MidChord {
		if ev.Key == key.KeyEscape {
			r.resetChord()
			return node.Handled, nil
		}
		if !samePath(path, r.state.AnchorPath) {
			r.resetChord()
		}
	}

	// 5. Chord continuation.
	if r.state.Phase == MidChord {
		next := r.state.ChordNode
		step := ev.Step()
		child := next.Child(step)
		switch {
		case child == nil:
			r.resetChord()
			return node.Handled, nil
		case child.IsLeaf():
			h, err := r.execute(child.Action(), ac)
			r.resetChord()
			return h, err
		case child.HasAction() && child.HasChildren():
			h, err := r.execute(child.Action(), ac)
			r.resetChord()
			return h, err
		default: // HasChildren only
			r.state.ChordNode = child
			r.setPhase(MidChord)
			return node.Handled, nil
		}
	}

	// 6. Layered lookup, focused first, root last.
	for i := len(path) - 1; i >= 0; i-- {
		n := path[i]
		b := binding.Build(n)
		trie := binding.NewChordTrie(b.KeyBindings())
		tn := trie.LookupEvent(nil, ev)
		if tn != nil {
			switch {
			case tn.IsLeaf():
				r.resetChord()
				return r.execute(tn.Action(), ac)
			case tn.HasChildren():
				r.state.ChordNode = tn
				r.state.AnchorPath = path
				r.state.LayerIndex = i
				r.setPhase(MidChord)
				return node.Handled, nil
			}
		}
		if i == len(path)-1 {
			for _, cb := range b.CharacterBindings() {
				if ev.Text != "" && cb.Predicate(ev.Text) {
					return r.execute(&binding.KeyBinding{Handler: cb.Handler}, ac)
				}
			}
		}
	}

	// 7. Bubble.
	if len(path) == 0 {
		return node.NotHandled, nil
	}
	in := node.InputEvent{Key: &ev}
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].HandleInput(in) == node.Handled {
			return node.Handled, nil
		}
	}
	return node.NotHandled, nil
}

func (r *Router) execute(b *binding.KeyBinding, ac *actx.ActionContext) (node.Handling, error) {
	if b == nil || b.Handler == nil {
		return node.Handled, nil
	}
	if err := b.Handler(ac); err != nil {
		return node.Handled, fmt.Errorf("router: handler error: %w", err)
	}
	return node.Handled, nil
}

// buildPath returns the root-to-focused path. If nothing is focused, it
// falls back to the root-to-leftmost-child chain so that bindings
// declared on non-focusable containers still apply.
func buildPath(tree *node.Tree, ring *focus.Ring) []node.Node {
	if id, ok := ring.FocusedID(); ok {
		return tree.Path(id)
	}
	var path []node.Node
	for id := tree.Root(); ; {
		n := tree.Node(id)
		if n == nil {
			break
		}
		path = append(path, n)
		children := tree.ChildrenOf(id)
		if len(children) == 0 {
			break
		}
		id = children[0]
	}
	return path
}

// collectGlobalBindings walks the whole tree collecting every binding
// declared with IsGlobal = true, failing if two different nodes declare
// a global binding beginning with the same key step.
func collectGlobalBindings(tree *node.Tree) ([]binding.KeyBinding, error) {
	var globals []binding.KeyBinding
	firstStepOwner := map[key.KeyStep]node.Node{}

	var walk func(id node.NodeID) error
	walk = func(id node.NodeID) error {
		n := tree.Node(id)
		if n == nil {
			return nil
		}
		b := binding.Build(n)
		for _, kb := range b.KeyBindings() {
			if !kb.IsGlobal || len(kb.Steps) == 0 {
				continue
			}
			step := kb.Steps[0]
			if owner, ok := firstStepOwner[step]; ok && owner != n {
				return fmt.Errorf("%w: step %+v declared by both %T and %T", ErrGlobalBindingConflict, step, owner, n)
			}
			firstStepOwner[step] = n
			globals = append(globals, kb)
		}
		for _, c := range tree.ChildrenOf(id) {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(tree.Root()); err != nil {
		return nil, err
	}
	return globals, nil
}
