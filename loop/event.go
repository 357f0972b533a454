package loop

import "github.com/loomterm/loom/key"

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	W, H int
}

// InputEvent is one item drained by a frame: exactly one of Key, Mouse,
// or Resize is non-nil.
type InputEvent struct {
	Key    *key.KeyEvent
	Mouse  *key.MouseEvent
	Resize *ResizeEvent
}
