// Package actx defines the Action Context (§3 "Action Context") passed to
// every binding handler, and the Handler/DragHandler function types
// bindings are declared with.
//
// ActionContext is deliberately decoupled from the node and focus
// packages: its focus operations are expressed over the small Focusable
// view below, which node.Node satisfies structurally. This lets the
// binding model, the node tree, and the focus ring be built independently
// of each other and wired together only by the router and render loop.
package actx

import "github.com/loomterm/loom/key"

// Focusable is the minimal view of a node that focus navigation needs.
type Focusable interface {
	Focused() bool
}

// ActionContext is the value passed to every handler. The router
// constructs one per dispatched event, binding its callbacks to the live
// focus ring and render loop.
type ActionContext struct {
	// Focus navigation, backed by the focus ring.
	FocusNext     func() bool
	FocusPrevious func() bool
	FocusWhere    func(pred func(Focusable) bool) bool
	Focus         func(n Focusable) bool

	// Loop-owned callbacks. Any of these may be nil if the hosting
	// application did not wire one up.
	RequestStop     func()
	CopyToClipboard func(mime string, data []byte)
	Invalidate      func()

	// Cancelled reports whether the render loop's cancellation token has
	// fired. Handlers should check this cooperatively during any
	// suspension point; a cancelled handler is free to return early.
	Cancelled func() bool

	// Mouse-derived fields, populated only for mouse/drag handlers.
	HasMouse bool
	X, Y     int

	// Notify delivers message to the nearest NotificationHost ancestor
	// of the currently focused node (§3 "accessors that walk parents to
	// find the nearest... notification host"). Reports whether a host
	// was found along the way. The router always fills this in.
	Notify func(message string) bool

	// ShowPopup/DismissPopup operate the nearest PopupHost ancestor.
	// content is a node.Node; it is accepted as interface{} here so
	// this package stays independent of node (mirroring Focusable
	// above) — the router supplies the closure that performs the type
	// assertion against the real node.PopupHost. Both report whether a
	// host was found.
	ShowPopup    func(content interface{}) bool
	DismissPopup func() bool

	// RaiseWindow/CloseWindow operate the nearest WindowHost ancestor.
	// w is a node.Node for the same reason content is above.
	RaiseWindow func(w interface{}) bool
	CloseWindow func(w interface{}) bool
}

// Handler is a binding's action. It may block briefly but must not
// perform blocking I/O (§5): any real suspension should be modeled as the
// handler launching its own goroutine and calling Invalidate when it has
// new state to render.
type Handler func(ac *ActionContext) error

// DragHandler is what a DragBinding's factory returns at mouse-down. A
// zero-value DragHandler (both fields nil) signals drag rejection —
// Empty reports that case.
type DragHandler struct {
	OnMove func(ac *ActionContext, ev key.MouseEvent)
	OnEnd  func(ac *ActionContext, ev key.MouseEvent)
}

// Empty reports whether h declines the drag.
func (h DragHandler) Empty() bool { return h.OnMove == nil && h.OnEnd == nil }

// DragFactory runs at mouse-down to decide whether, and how, a node wants
// to handle the drag that may follow.
type DragFactory func(ac *ActionContext, start key.MouseEvent) DragHandler
