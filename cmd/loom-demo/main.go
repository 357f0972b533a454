// Command loom-demo is a showcase terminal app exercising every package
// in loom end to end: a splitter dividing a scrollable list from a
// tabbed detail panel, a status bar with live key hints, and an OKLCH
// color picker — grounded in the teacher's apps/texelui-demo/demo.go,
// which composes its own widget set directly in a single build function
// rather than through a generic widget-tree DSL.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/loomterm/loom/actx"
	"github.com/loomterm/loom/binding"
	"github.com/loomterm/loom/cell"
	"github.com/loomterm/loom/config"
	"github.com/loomterm/loom/geom"
	"github.com/loomterm/loom/key"
	"github.com/loomterm/loom/layout"
	"github.com/loomterm/loom/loop"
	"github.com/loomterm/loom/node"
	"github.com/loomterm/loom/term"
	"github.com/loomterm/loom/theme"
	"github.com/loomterm/loom/widgets"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "loom-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	if theme.GetLoadError() != nil {
		log.Printf("loom-demo: using built-in theme defaults: %v", theme.GetLoadError())
	}

	userBindings, err := config.LoadKeyBindings()
	if err != nil {
		log.Printf("loom-demo: using built-in key bindings: %v", err)
	}
	defaults := config.KeyBindings{
		"quit":     "ctrl+q",
		"next_tab": "tab",
		"prev_tab": "shift+tab",
	}
	resolved, err := userBindings.WithDefaults(defaults).Resolve()
	if err != nil {
		log.Printf("loom-demo: some key bindings failed to parse: %v", err)
	}

	tty, err := term.Open()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer tty.Close()

	w, h := tty.Size()

	demo := newDemoApp(resolved)

	l := loop.New(loop.Config{
		Build:  demo.build,
		Sink:   tty.Sink(),
		Width:  w,
		Height: h,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	go tty.Pump(ctx, l.InputChannel())

	return l.Run(ctx)
}

// demoApp is the root node: it owns the splitter/status-bar layout and
// declares the application-global chords (quit, next/prev tab) resolved
// from config.KeyBindings.
type demoApp struct {
	node.Base

	list     *widgets.List
	tabs     *widgets.TabBar
	picker   *widgets.ColorPicker
	status   *widgets.StatusBar
	splitter *widgets.Splitter
	detail   *container

	bindings map[string][]key.KeyStep
}

func newDemoApp(bindings map[string][]key.KeyStep) *demoApp {
	d := &demoApp{bindings: bindings}

	d.list = widgets.NewList([]string{
		"Dashboard", "Profile", "Settings", "Notifications",
		"Billing", "Integrations", "Team", "Audit Log", "Help",
	})

	d.tabs = widgets.NewTabBar([]string{"Overview", "Details", "Color"})
	d.picker = widgets.NewColorPicker(theme.CurrentWidgetColors().Accent)

	d.status = widgets.NewStatusBar()
	d.picker.OnChange = func(c cell.Color) {
		d.status.Notify("color updated", widgets.MessageInfo, 0, time.Now())
	}

	d.detail = newContainer(layout.VBox{}, d.tabs, d.picker)
	d.splitter = widgets.NewSplitter(true, d.list, d.detail)
	d.splitter.SetRatio(0.35)

	return d
}

func (d *demoApp) Children() []node.Node {
	return []node.Node{d.splitter, d.status}
}

// Notify implements node.NotificationHost: demoApp is an ancestor of
// every focusable widget in the tree and the status bar's sibling, so
// it is the capability walk's landing spot for any descendant's
// ac.Notify call (the list's row-open binding, in this demo).
func (d *demoApp) Notify(message string) {
	d.status.Notify(message, widgets.MessageInfo, 0, time.Now())
}

func (d *demoApp) FocusableDescendants() []node.Node {
	return node.WalkFocusableDescendants(d, d.Children())
}

// Layout reserves the bottom row for the status bar and gives the
// splitter everything above it.
func (d *demoApp) Layout(bounds geom.Rect, children []node.Node) {
	if len(children) != 2 {
		return
	}
	body, status := children[0], children[1]
	body.SetBounds(geom.Rect{X: bounds.X, Y: bounds.Y, W: bounds.W, H: bounds.H - 1})
	status.SetBounds(geom.Rect{X: bounds.X, Y: bounds.Bottom() - 1, W: bounds.W, H: 1})
}

func (d *demoApp) BuildBindings(decl node.BindingDeclarer) {
	if steps, ok := d.bindings["quit"]; ok {
		decl.DeclareKey(steps, func(ac *actx.ActionContext) error {
			ac.RequestStop()
			return nil
		}, "quit", true)
	}
	if steps, ok := d.bindings["next_tab"]; ok {
		decl.DeclareKey(steps, func(ac *actx.ActionContext) error {
			ac.FocusNext()
			return nil
		}, "next panel", true)
	}
	if steps, ok := d.bindings["prev_tab"]; ok {
		decl.DeclareKey(steps, func(ac *actx.ActionContext) error {
			ac.FocusPrevious()
			return nil
		}, "previous panel", true)
	}
}

func (d *demoApp) HandleInput(node.InputEvent) node.Handling { return node.NotHandled }

// Render refreshes the status bar's hint strip from whatever is
// reachable at the currently focused path before delegating to every
// child's own Render — the status bar is the read-only consumer of
// build_bindings (§4.2) the spec describes, not a static label row.
func (d *demoApp) Render(c cell.Canvas) {
	d.status.Hints = d.reachableHints()

	for _, child := range d.Children() {
		if child.Bounds().Empty() {
			continue
		}
		child.Render(c.WithClip(child.Bounds()))
	}
}

// reachableHints walks the root-to-focused path (root last, so a
// focused-node binding shadows a same-key root binding, matching the
// router's own focused-first layering) and collects one hint per
// distinct chord declared along it, in declaration order.
func (d *demoApp) reachableHints() []widgets.KeyHint {
	var hints []widgets.KeyHint
	seen := map[string]bool{}
	path := focusedPath(d)
	for i := len(path) - 1; i >= 0; i-- {
		b := binding.Build(path[i])
		for _, kb := range b.KeyBindings() {
			if kb.Description == "" || len(kb.Steps) == 0 {
				continue
			}
			chord := config.FormatChord(kb.Steps)
			if seen[chord] {
				continue
			}
			seen[chord] = true
			hints = append(hints, widgets.KeyHint{Key: chord, Label: kb.Description})
		}
	}
	return hints
}

// focusedPath returns root through the focused descendant of root,
// inclusive, or just [root] if nothing is focused.
func focusedPath(root node.Node) []node.Node {
	path := []node.Node{root}
	if walkToFocused(root, &path) {
		return path
	}
	return path[:1]
}

func walkToFocused(n node.Node, path *[]node.Node) bool {
	if n.Focused() {
		return true
	}
	for _, c := range n.Children() {
		*path = append(*path, c)
		if walkToFocused(c, path) {
			return true
		}
		*path = (*path)[:len(*path)-1]
	}
	return false
}

// build is the loop's BuildFunc: the widget tree never changes shape
// frame to frame, so build just returns the same root, relying on the
// loop's own Reconcile to no-op on an identical pointer.
func (d *demoApp) build() node.Node {
	return d
}
