// Package loop implements the render loop (§4.6): the state machine that
// owns the frame — drain input, dispatch, reconcile, layout, rebuild the
// focus ring, rasterize, diff, emit — and the startup/shutdown terminal
// sequencing around it.
package loop

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/loomterm/loom/cell"
	"github.com/loomterm/loom/focus"
	"github.com/loomterm/loom/geom"
	"github.com/loomterm/loom/key"
	"github.com/loomterm/loom/layout"
	"github.com/loomterm/loom/node"
	"github.com/loomterm/loom/router"
)

// BuildFunc is the user's declarative widget function: it is invoked
// once per frame, with whatever application state the caller closed
// over, and must return a fresh description of the tree's root.
type BuildFunc func() node.Node

// Config configures a Loop.
type Config struct {
	// Build is invoked once per frame (§4.6 step 3).
	Build BuildFunc
	// Sink receives the writer's diffed output and startup/shutdown
	// escape sequences; the loop is its exclusive owner's writer side.
	Sink io.Writer
	// Width, Height are the initial terminal dimensions.
	Width, Height int
	// ClickThreshold is the maximum gap between consecutive mouse-downs
	// of the same button at the same coordinates counted as one multi-
	// click sequence. Zero defaults to 300ms (§4.6 step 1, §9 open
	// question (c): exposed as a knob rather than guessing a constant).
	ClickThreshold time.Duration
	// Logger receives a line for every recovered handler panic. Defaults
	// to log.Default().
	Logger *log.Logger
}

type clickState struct {
	button key.Button
	x, y   int
	at     time.Time
	count  int
}

// Loop is the render loop: the exclusive owner of the node tree, the
// focus ring, the router, and the previous/next grid pair.
type Loop struct {
	cfg Config

	input      chan InputEvent
	invalidate chan struct{}
	done       chan struct{}
	stopOnce   sync.Once

	tree   *node.Tree
	ring   *focus.Ring
	router *router.Router
	writer cell.Writer
	grid   *cell.Grid

	width, height int
	lastClick     clickState
}

// New constructs a Loop. Call Run to drive it.
func New(cfg Config) *Loop {
	if cfg.ClickThreshold <= 0 {
		cfg.ClickThreshold = 300 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	l := &Loop{
		cfg:        cfg,
		input:      make(chan InputEvent, 256),
		invalidate: make(chan struct{}, 1),
		done:       make(chan struct{}),
		ring:       focus.New(),
		width:      cfg.Width,
		height:     cfg.Height,
		grid:       cell.NewGrid(cfg.Width, cfg.Height),
	}
	l.router = router.New(router.Callbacks{
		RequestStop:     l.requestStop,
		CopyToClipboard: l.copyToClipboard,
		Invalidate:      l.Invalidate,
		Cancelled:       l.Cancelled,
	})
	return l
}

// InputChannel is the loop's one external collaborator surface (besides
// the node tree's Snapshot): the send-only end of its input queue. A
// terminal adapter, a test harness, or any other collaborator may feed
// key, mouse, and resize events here without depending on anything else
// the loop owns.
func (l *Loop) InputChannel() chan<- InputEvent { return l.input }

// Invalidate wakes a sleeping loop to run an extra frame with no new
// input — used by a handler that launched its own goroutine and now has
// new state to render (§5: suspension is modeled this way, never as
// blocking I/O inside a handler).
func (l *Loop) Invalidate() {
	select {
	case l.invalidate <- struct{}{}:
	default:
	}
}

// Snapshot returns a read-only view of the current node tree, or nil
// before the first frame has run. This and InputChannel are the loop's
// only surfaces for external collaborators (a diagnostics reader, a
// recorder) — both outside the scope this module implements.
func (l *Loop) Snapshot() []node.NodeSnapshot {
	if l.tree == nil {
		return nil
	}
	return l.tree.Snapshot()
}

// Cancelled reports whether RequestStop has been called.
func (l *Loop) Cancelled() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

func (l *Loop) requestStop() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *Loop) copyToClipboard(_ string, data []byte) {
	// OSC 52 carries no MIME type of its own; the terminal clipboard is
	// plain bytes, interpreted as UTF-8 text by the receiving app.
	encoded := base64.StdEncoding.EncodeToString(data)
	l.cfg.Sink.Write([]byte(cell.OSC52Prefix + encoded + cell.OSC52Suffix))
}

// Run drives the loop until the context is cancelled, RequestStop is
// called, or a phase fails fatally. It always performs startup and
// shutdown terminal sequencing, even when returning an error.
func (l *Loop) Run(ctx context.Context) error {
	l.cfg.Sink.Write([]byte(cell.EnterAltScreen + cell.HideCursorSeq + cell.EnableMouseSeq + cell.QueryDA1))
	defer l.cfg.Sink.Write([]byte(cell.DisableMouseSeq + cell.ShowCursorSeq + cell.ExitAltScreen + cell.ResetSGR))

	if err := l.frame(nil); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.done:
			return nil
		case ev := <-l.input:
			if err := l.frame(l.drain(ev)); err != nil {
				return err
			}
		case <-l.invalidate:
			if err := l.frame(nil); err != nil {
				return err
			}
		}
	}
}

// drain collects first plus every InputEvent already queued, without
// blocking — §4.6 step 1, "collect all pending events since the last
// frame".
func (l *Loop) drain(first InputEvent) []InputEvent {
	pending := []InputEvent{first}
	for {
		select {
		case ev := <-l.input:
			pending = append(pending, ev)
		default:
			return pending
		}
	}
}

// frame runs one full pass of the §4.6 algorithm. A handler panic is
// recovered, the router reset, and the panic surfaced as a PhaseError
// rather than crashing the loop's goroutine.
func (l *Loop) frame(pending []InputEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.router.Reset()
			err = &PhaseError{Phase: "dispatch", Err: fmt.Errorf("recovered panic: %v", r)}
			l.cfg.Logger.Printf("%v", err)
		}
	}()

	for _, ev := range pending {
		switch {
		case ev.Resize != nil:
			l.width, l.height = ev.Resize.W, ev.Resize.H
		case ev.Mouse != nil:
			if l.tree == nil {
				continue
			}
			l.router.DispatchMouse(l.tree, l.ring, l.withClickCount(*ev.Mouse))
		case ev.Key != nil:
			if l.tree == nil {
				continue
			}
			if _, derr := l.router.DispatchKey(l.tree, l.ring, *ev.Key); derr != nil {
				return &PhaseError{Phase: "dispatch", Err: derr}
			}
		}
	}

	root := l.cfg.Build()
	if l.tree == nil {
		l.tree = node.NewTree(root)
	} else {
		l.tree.Reconcile(root)
	}

	layout.Apply(l.tree.Node(l.tree.Root()), geom.Rect{W: l.width, H: l.height})

	l.ring.Rebuild(l.tree)
	l.ring.EnsureFocus()

	next := cell.NewGrid(l.width, l.height)
	l.tree.Node(l.tree.Root()).Render(cell.NewCanvas(next))

	if out := l.writer.Diff(l.grid, next); len(out) > 0 {
		if _, werr := l.cfg.Sink.Write(out); werr != nil {
			return &PhaseError{Phase: "render", Err: fmt.Errorf("%w: %v", cell.ErrWriteFailed, werr)}
		}
	}
	l.grid = next
	return nil
}

// withClickCount computes click_count for a mouse-down event by
// comparing it against the last mouse-down of the same button at the
// same coordinates within Config.ClickThreshold, capping at 3 (§4.6 step
// 1, "triple-max"). Other mouse actions pass through unchanged, except
// that a ClickCount below 1 (the terminal translator leaves it unset,
// since the SGR mouse protocol carries no click-count field) becomes 1.
func (l *Loop) withClickCount(ev key.MouseEvent) key.MouseEvent {
	if ev.Action != key.ActionDown {
		if ev.ClickCount < 1 {
			ev.ClickCount = 1
		}
		return ev
	}
	now := time.Now()
	if l.lastClick.button == ev.Button && l.lastClick.x == ev.X && l.lastClick.y == ev.Y &&
		now.Sub(l.lastClick.at) <= l.cfg.ClickThreshold {
		l.lastClick.count++
	} else {
		l.lastClick.count = 1
	}
	if l.lastClick.count > 3 {
		l.lastClick.count = 3
	}
	l.lastClick.at = now
	l.lastClick.button, l.lastClick.x, l.lastClick.y = ev.Button, ev.X, ev.Y
	ev.ClickCount = l.lastClick.count
	return ev
}
