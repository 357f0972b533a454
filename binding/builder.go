package binding

import (
	"fmt"

	"github.com/loomterm/loom/actx"
	"github.com/loomterm/loom/key"
	"github.com/loomterm/loom/node"
)

// Builder implements node.BindingDeclarer, collecting whatever a single
// node declares during one BuildBindings call. The router constructs a
// fresh Builder per node per routing pass; builders are never reused or
// shared across events.
type Builder struct {
	owner node.Node

	keys       []KeyBinding
	characters []CharacterBinding
	mice       []MouseBinding
	drags      []DragBinding
}

// NewBuilder returns a builder that attributes every binding declared
// through it to owner, for diagnostics.
func NewBuilder(owner node.Node) *Builder {
	return &Builder{owner: owner}
}

// DeclareKey records a chord binding. A binding with no steps, or any
// step requiring both Shift and Control, is a configuration defect (§7):
// a programmer error reported synchronously and not recovered from. It
// panics rather than returning or swallowing the error, so it surfaces
// through the render loop's existing panic recovery as a fatal
// PhaseError instead of silently dropping the binding.
func (b *Builder) DeclareKey(steps []key.KeyStep, handler actx.Handler, description string, isGlobal bool) {
	if len(steps) == 0 {
		panic(fmt.Errorf("%w: owner %T, description %q", ErrEmptyChord, b.owner, description))
	}
	for _, s := range steps {
		if !s.Mods.Valid() {
			panic(fmt.Errorf("%w: step %+v, owner %T, description %q", ErrConflictingModifiers, s, b.owner, description))
		}
	}
	b.keys = append(b.keys, KeyBinding{
		Steps:       append([]key.KeyStep(nil), steps...),
		Handler:     handler,
		Description: description,
		IsGlobal:    isGlobal,
		Owner:       b.owner,
	})
}

// DeclareCharacter records a character (predicate-matched text) binding.
func (b *Builder) DeclareCharacter(predicate func(string) bool, handler actx.Handler, description string) {
	b.characters = append(b.characters, CharacterBinding{
		Predicate:   predicate,
		Handler:     handler,
		Description: description,
	})
}

// DeclareMouse records a mouse binding.
func (b *Builder) DeclareMouse(btn key.Button, action key.Action, mods key.Modifier, minClickCount int, handler actx.Handler) {
	if minClickCount < 1 {
		minClickCount = 1
	}
	b.mice = append(b.mice, MouseBinding{
		Button:        btn,
		Action:        action,
		Mods:          mods,
		MinClickCount: minClickCount,
		Handler:       handler,
	})
}

// DeclareDrag records a drag binding.
func (b *Builder) DeclareDrag(btn key.Button, mods key.Modifier, factory actx.DragFactory) {
	b.drags = append(b.drags, DragBinding{Button: btn, Mods: mods, Factory: factory})
}

// KeyBindings returns the key bindings declared so far, in declaration
// order.
func (b *Builder) KeyBindings() []KeyBinding { return b.keys }

// CharacterBindings returns the character bindings declared so far, in
// declaration order (first match wins at lookup time).
func (b *Builder) CharacterBindings() []CharacterBinding { return b.characters }

// MouseBindings returns the mouse bindings declared so far.
func (b *Builder) MouseBindings() []MouseBinding { return b.mice }

// DragBindings returns the drag bindings declared so far.
func (b *Builder) DragBindings() []DragBinding { return b.drags }

// Build runs n.BuildBindings against a fresh builder owned by n and
// returns it, for router and test callers that just want one node's
// declarations.
func Build(n node.Node) *Builder {
	b := NewBuilder(n)
	n.BuildBindings(b)
	return b
}
