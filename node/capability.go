package node

// PopupHost is implemented by a node capable of hosting a transient popup
// above its own content (a menu, a tooltip, an autocomplete list). The
// action context walks ancestors asking each one for this capability via
// AsPopupHost rather than downcasting to a concrete widget type, so new
// container kinds can opt in without a central type switch.
type PopupHost interface {
	ShowPopup(content Node)
	DismissPopup()
}

// NotificationHost is implemented by a node capable of surfacing a
// transient status message (a toast, a status bar line) on behalf of a
// descendant.
type NotificationHost interface {
	Notify(message string)
}

// WindowHost is implemented by a node capable of managing a set of child
// windows or panes with z-order (a workspace, a tiling root).
type WindowHost interface {
	RaiseWindow(w Node)
	CloseWindow(w Node)
}

// AsPopupHost walks from n up through ancestors (using the owning tree's
// parent links) and returns the first PopupHost it finds, or nil.
func AsPopupHost(t *Tree, id NodeID) PopupHost {
	for cur := id; cur != NoParent; cur = t.ParentOf(cur) {
		if h, ok := t.Node(cur).(PopupHost); ok {
			return h
		}
	}
	return nil
}

// AsNotificationHost walks from id up through ancestors and returns the
// first NotificationHost it finds, or nil.
func AsNotificationHost(t *Tree, id NodeID) NotificationHost {
	for cur := id; cur != NoParent; cur = t.ParentOf(cur) {
		if h, ok := t.Node(cur).(NotificationHost); ok {
			return h
		}
	}
	return nil
}

// AsWindowHost walks from id up through ancestors and returns the first
// WindowHost it finds, or nil.
func AsWindowHost(t *Tree, id NodeID) WindowHost {
	for cur := id; cur != NoParent; cur = t.ParentOf(cur) {
		if h, ok := t.Node(cur).(WindowHost); ok {
			return h
		}
	}
	return nil
}
