// Package term acquires the terminal (§4.6 startup/shutdown, §9 "a
// collaborator, not part of the core" for input decoding) and pumps
// translated key, mouse, and resize events into a render loop's input
// channel.
//
// tcell owns raw-mode entry/exit, the alternate screen, and the
// terminfo-driven key decoder — the parts a from-scratch implementation
// would only poorly approximate. It is deliberately NOT used to paint:
// this package never calls Screen.Show/SetContent/Sync. Output bytes
// come exclusively from cell.Writer.Diff, written straight to the tty
// (see Terminal.Sink). tcell's own SGR mouse decoding is used for
// robustness across terminal emulators; the hand-rolled codec in
// key.EncodeMouseSGR/ParseMouseSGR remains independently available (and
// independently tested) for any raw-byte input source that bypasses
// tcell entirely.
package term

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/loomterm/loom/key"
	"github.com/loomterm/loom/loop"
)

// Terminal wraps an acquired tcell.Screen for the one purpose this
// package needs it: size queries, raw event polling, and a raw tty
// writer for the hand-rolled writer's output.
//
// Raw-mode entry/exit is bracketed independently via golang.org/x/term
// rather than left to tcell's own Init/Fini, so that if a panic unwinds
// past tcell's Fini (or Fini itself fails) the tty is still restored —
// term.Restore runs in Close regardless of what Fini does.
type Terminal struct {
	screen      tcell.Screen
	prevButtons tcell.ButtonMask
	rawState    *term.State
}

// Open acquires the terminal: puts stdin into raw mode directly, then
// allocates a tcell.Screen, enters the alternate screen, and enables
// mouse tracking. Callers must call Close on every exit path.
func Open() (*Terminal, error) {
	var raw *term.State
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return nil, fmt.Errorf("term: make raw: %w", err)
		}
		raw = state
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		restoreRaw(raw)
		return nil, fmt.Errorf("term: allocate screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		restoreRaw(raw)
		return nil, fmt.Errorf("term: init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnablePaste()
	return &Terminal{screen: screen, rawState: raw}, nil
}

func restoreRaw(state *term.State) {
	if state != nil {
		term.Restore(int(os.Stdin.Fd()), state)
	}
}

// Close restores the terminal to its original state. Safe to call more
// than once (tcell.Screen.Fini and term.Restore both tolerate repeat
// calls on an already-restored fd).
func (t *Terminal) Close() {
	t.screen.Fini()
	restoreRaw(t.rawState)
}

// Size returns the current terminal dimensions in cells.
func (t *Terminal) Size() (w, h int) {
	return t.screen.Size()
}

// Sink returns the io.Writer the render loop's cell.Writer output (and
// startup/shutdown escape sequences) should be written to: the
// underlying tty, bypassing tcell's own cell buffer entirely.
func (t *Terminal) Sink() io.Writer {
	return ttyWriter{t.screen}
}

// ttyWriter adapts tcell.Screen.Tty() for the uncommon case where a
// Screen implementation can hand back a raw file descriptor, falling
// back to tcell.Screen.Beep-independent stderr-free no-op if it cannot
// (which only occurs on the simulation screen used in tests).
type ttyWriter struct {
	screen tcell.Screen
}

func (w ttyWriter) Write(p []byte) (int, error) {
	type ttyProvider interface {
		Tty() (tcell.Tty, bool)
	}
	if tp, ok := w.screen.(ttyProvider); ok {
		if tty, ok := tp.Tty(); ok {
			return tty.Write(p)
		}
	}
	return len(p), nil
}

// Pump polls tcell events until ctx is cancelled, translating each into
// a loop.InputEvent and sending it on dst. Intended to run in its own
// goroutine, feeding a Loop's InputChannel().
func (t *Terminal) Pump(ctx context.Context, dst chan<- loop.InputEvent) {
	events := make(chan tcell.Event, 16)
	go t.screen.ChannelEvents(events, ctx.Done())
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ie, ok := t.translate(ev); ok {
				select {
				case dst <- ie:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

func (t *Terminal) translate(ev tcell.Event) (loop.InputEvent, bool) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		w, h := e.Size()
		return loop.InputEvent{Resize: &loop.ResizeEvent{W: w, H: h}}, true
	case *tcell.EventKey:
		ke := translateKey(e)
		return loop.InputEvent{Key: &ke}, true
	case *tcell.EventMouse:
		me, ok := t.translateMouse(e)
		if !ok {
			return loop.InputEvent{}, false
		}
		return loop.InputEvent{Mouse: &me}, true
	default:
		return loop.InputEvent{}, false
	}
}

func (t *Terminal) translateMouse(e *tcell.EventMouse) (key.MouseEvent, bool) {
	x, y := e.Position()
	mods := translateMods(e.Modifiers())
	buttons := e.Buttons()

	if buttons&tcell.WheelUp != 0 {
		return key.MouseEvent{Button: key.ButtonScrollUp, Action: key.ActionDown, X: x, Y: y, Mods: mods}, true
	}
	if buttons&tcell.WheelDown != 0 {
		return key.MouseEvent{Button: key.ButtonScrollDown, Action: key.ActionDown, X: x, Y: y, Mods: mods}, true
	}

	primary := buttons & (tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle)
	btn := translateButton(primary)

	var action key.Action
	switch {
	case primary != 0 && t.prevButtons == 0:
		action = key.ActionDown
	case primary != 0 && t.prevButtons == primary:
		action = key.ActionDrag
	case primary == 0 && t.prevButtons != 0:
		action = key.ActionUp
		btn = translateButton(t.prevButtons & (tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle))
	default:
		action = key.ActionMove
		btn = key.ButtonNone
	}
	t.prevButtons = primary
	return key.MouseEvent{Button: btn, Action: action, X: x, Y: y, Mods: mods}, true
}

func translateButton(b tcell.ButtonMask) key.Button {
	switch {
	case b&tcell.ButtonPrimary != 0:
		return key.ButtonLeft
	case b&tcell.ButtonSecondary != 0:
		return key.ButtonRight
	case b&tcell.ButtonMiddle != 0:
		return key.ButtonMiddle
	default:
		return key.ButtonNone
	}
}

func translateMods(m tcell.ModMask) key.Modifier {
	var out key.Modifier
	if m&tcell.ModShift != 0 {
		out |= key.ModShift
	}
	if m&tcell.ModAlt != 0 {
		out |= key.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		out |= key.ModControl
	}
	return out
}
