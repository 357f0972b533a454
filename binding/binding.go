// Package binding implements the binding model and chord trie (§4.4):
// the value types describing key, character, mouse, and drag bindings,
// and the prefix trie used to match key chords.
package binding

import (
	"errors"

	"github.com/loomterm/loom/actx"
	"github.com/loomterm/loom/key"
	"github.com/loomterm/loom/node"
)

// ErrEmptyChord is the panic value the builder raises when a key binding
// is declared with no key steps at all.
var ErrEmptyChord = errors.New("binding: key binding must have at least one key step")

// ErrConflictingModifiers is the panic value the builder raises when a
// key step requires both Shift and Control, which no terminal can
// distinguish from Control alone.
var ErrConflictingModifiers = errors.New("binding: a key step cannot require both Shift and Control")

// KeyBinding is a non-empty chord mapped to a handler.
type KeyBinding struct {
	Steps       []key.KeyStep
	Handler     actx.Handler
	Description string
	IsGlobal    bool
	// Owner is a diagnostic-only, non-owning reference to the node that
	// declared this binding; never dereferenced for routing.
	Owner node.Node
}

// CharacterBinding matches any non-empty text satisfying Predicate.
type CharacterBinding struct {
	Predicate   func(text string) bool
	Handler     actx.Handler
	Description string
}

// MouseBinding matches a mouse event by button, action, and modifiers
// whose click count is at least MinClickCount.
type MouseBinding struct {
	Button        key.Button
	Action        key.Action
	Mods          key.Modifier
	MinClickCount int
	Handler       actx.Handler
}

// Matches reports whether ev satisfies b.
func (b MouseBinding) Matches(ev key.MouseEvent) bool {
	return b.Button == ev.Button && b.Action == ev.Action && b.Mods == ev.Mods && ev.ClickCount >= b.MinClickCount
}

// DragBinding runs Factory at mouse-down; a non-empty returned
// DragHandler captures subsequent Drag/Up events until Up.
type DragBinding struct {
	Button  key.Button
	Mods    key.Modifier
	Factory actx.DragFactory
}

// Matches reports whether a mouse-down event satisfies b's button and
// modifiers (DragBindings only ever trigger on Action == key.ActionDown).
func (b DragBinding) Matches(ev key.MouseEvent) bool {
	return b.Button == ev.Button && b.Mods == ev.Mods
}
