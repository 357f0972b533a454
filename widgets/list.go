package widgets

import (
	"github.com/loomterm/loom/actx"
	"github.com/loomterm/loom/cell"
	"github.com/loomterm/loom/geom"
	"github.com/loomterm/loom/key"
	"github.com/loomterm/loom/node"
	"github.com/loomterm/loom/theme"
)

// ListRow is a single selectable row inside a List. It is itself the
// focusable unit the ring navigates between — the list's own Up/Down
// navigation is just FocusPrevious/FocusNext reused, not a separate
// internal cursor (grounded in the teacher's scroll pane, simplified:
// the ring already provides cyclic navigation, so a row only needs to
// forward arrow keys to it).
type ListRow struct {
	node.Base
	Label string
}

func NewListRow(label string) *ListRow {
	r := &ListRow{Label: label}
	r.SetFocusable(true)
	return r
}

func (r *ListRow) Children() []node.Node             { return nil }
func (r *ListRow) FocusableDescendants() []node.Node { return node.WalkFocusableDescendants(r, nil) }

func (r *ListRow) BuildBindings(d node.BindingDeclarer) {
	d.DeclareKey([]key.KeyStep{{Key: key.KeyDown}}, func(ac *actx.ActionContext) error {
		ac.FocusNext()
		return nil
	}, "next row", false)
	d.DeclareKey([]key.KeyStep{{Key: key.KeyUp}}, func(ac *actx.ActionContext) error {
		ac.FocusPrevious()
		return nil
	}, "previous row", false)
	d.DeclareKey([]key.KeyStep{{Key: key.KeyEnter}}, func(ac *actx.ActionContext) error {
		ac.Notify("opened " + r.Label)
		return nil
	}, "open", false)
}

func (r *ListRow) HandleInput(node.InputEvent) node.Handling { return node.NotHandled }

func (r *ListRow) Render(c cell.Canvas) {
	colors := theme.CurrentWidgetColors()
	style := colors.Style()
	if r.Focused() {
		style = colors.SelectionStyle()
	}
	bounds := r.Bounds()
	c.Fill(bounds, cell.Cell{Grapheme: " ", Style: style})
	c.WriteText(bounds.X, bounds.Y, r.Label, style)
}

// List is a scrollable, single-row-per-item viewport (grounded in the
// teacher's texelui/scroll.ScrollPane): its Rows are the ring's actual
// focusable members, and List itself implements focus.IndexSyncer to
// keep the focused row scrolled into view, per §4.3's sync_focus_index.
type List struct {
	node.Base

	Rows   []*ListRow
	offset int
}

// NewList builds a List with one row per label.
func NewList(labels []string) *List {
	l := &List{}
	for _, lb := range labels {
		l.Rows = append(l.Rows, NewListRow(lb))
	}
	return l
}

func (l *List) Children() []node.Node {
	out := make([]node.Node, len(l.Rows))
	for i, r := range l.Rows {
		out[i] = r
	}
	return out
}

func (l *List) FocusableDescendants() []node.Node {
	return node.WalkFocusableDescendants(l, l.Children())
}

// SyncFocusIndex implements focus.IndexSyncer: childIndex is the index
// of whichever row just became part of the focused path, so List scrolls
// it into view.
func (l *List) SyncFocusIndex(childIndex int) {
	h := l.Bounds().H
	if h <= 0 {
		return
	}
	switch {
	case childIndex < l.offset:
		l.offset = childIndex
	case childIndex >= l.offset+h:
		l.offset = childIndex - h + 1
	}
}

// Layout implements layout.Policy: each row gets one cell of height at
// its scrolled position, or an empty rect if it has scrolled out of view
// (so it renders nothing and cannot be hit-tested at a stale position).
func (l *List) Layout(bounds geom.Rect, children []node.Node) {
	for i, child := range children {
		y := bounds.Y + i - l.offset
		if y < bounds.Y || y >= bounds.Bottom() {
			child.SetBounds(geom.Rect{})
			continue
		}
		child.SetBounds(geom.Rect{X: bounds.X, Y: y, W: bounds.W, H: 1})
	}
}

func (l *List) BuildBindings(node.BindingDeclarer) {}

func (l *List) HandleInput(node.InputEvent) node.Handling { return node.NotHandled }

func (l *List) Render(c cell.Canvas) {
	colors := theme.CurrentWidgetColors()
	c.Fill(l.Bounds(), cell.Cell{Grapheme: " ", Style: colors.Style()})
	for _, r := range l.Rows {
		if r.Bounds().Empty() {
			continue
		}
		r.Render(c.WithClip(r.Bounds()))
	}
}
