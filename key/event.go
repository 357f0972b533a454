package key

import "unicode"

// KeyEvent is a produced keystroke. Text is empty for non-printable keys,
// a single grapheme for ordinary typed characters, or multiple graphemes
// for paste/IME/emoji input.
type KeyEvent struct {
	Key  Key
	Text string
	Mods Modifier
}

// Step returns the KeyStep this event would match against a chord trie.
func (e KeyEvent) Step() KeyStep { return KeyStep{Key: e.Key, Mods: e.Mods} }

// IsPrintable reports whether the event carries displayable text: the
// text is non-empty and either spans more than one rune (paste, emoji,
// IME composition) or its single rune is not a control character.
func (e KeyEvent) IsPrintable() bool {
	if e.Text == "" {
		return false
	}
	runes := []rune(e.Text)
	if len(runes) > 1 {
		return true
	}
	return !unicode.IsControl(runes[0])
}

// Button identifies a mouse button or wheel direction.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonScrollUp
	ButtonScrollDown
)

// Action identifies what a mouse event represents.
type Action int

const (
	ActionMove Action = iota
	ActionDown
	ActionUp
	ActionDrag
)

// MouseEvent is a fully resolved mouse event, including the click_count
// the render loop has computed from consecutive same-button, same-
// coordinate Down events (§4.6 step 1). ClickCount is always >= 1.
type MouseEvent struct {
	Button     Button
	Action     Action
	X, Y       int
	Mods       Modifier
	ClickCount int
}

// Wire returns the wire-protocol subset of ev (everything the SGR mouse
// codec can actually carry; click_count is a render-loop concept, never
// transmitted on the wire).
func (ev MouseEvent) Wire() WireMouse {
	return WireMouse{Button: ev.Button, Action: ev.Action, X: ev.X, Y: ev.Y, Mods: ev.Mods}
}
