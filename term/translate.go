package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/loomterm/loom/key"
)

// tcellKeys maps tcell's terminfo-decoded key constants to loom's
// platform-independent Key vocabulary. Keys with no loom equivalent
// (F13+, clipboard keys, etc.) are simply absent and fall through to
// KeyNone with whatever rune tcell decoded carried in Text.
var tcellKeys = map[tcell.Key]key.Key{
	tcell.KeyUp:        key.KeyUp,
	tcell.KeyDown:      key.KeyDown,
	tcell.KeyLeft:      key.KeyLeft,
	tcell.KeyRight:     key.KeyRight,
	tcell.KeyHome:      key.KeyHome,
	tcell.KeyEnd:       key.KeyEnd,
	tcell.KeyPgUp:      key.KeyPageUp,
	tcell.KeyPgDn:      key.KeyPageDown,
	tcell.KeyInsert:    key.KeyInsert,
	tcell.KeyDelete:    key.KeyDelete,
	tcell.KeyBackspace: key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyEnter:     key.KeyEnter,
	tcell.KeyTab:       key.KeyTab,
	tcell.KeyEscape:    key.KeyEscape,

	tcell.KeyF1:  key.KeyF1,
	tcell.KeyF2:  key.KeyF2,
	tcell.KeyF3:  key.KeyF3,
	tcell.KeyF4:  key.KeyF4,
	tcell.KeyF5:  key.KeyF5,
	tcell.KeyF6:  key.KeyF6,
	tcell.KeyF7:  key.KeyF7,
	tcell.KeyF8:  key.KeyF8,
	tcell.KeyF9:  key.KeyF9,
	tcell.KeyF10: key.KeyF10,
	tcell.KeyF11: key.KeyF11,
	tcell.KeyF12: key.KeyF12,

	// Control-letter keys: tcell reports Ctrl+A..Ctrl+Z as their own Key
	// constants rather than as a modifier over KeyRune; translate them
	// back into letter Key + ModControl so a single binding (e.g.
	// Ctrl+S) matches regardless of which form the terminal reported.
	// Ctrl+H, Ctrl+I and Ctrl+M share their codes with Backspace, Tab and
	// Enter, so they are absent here and translate as those keys.
	tcell.KeyCtrlA: key.KeyA,
	tcell.KeyCtrlB: key.KeyB,
	tcell.KeyCtrlC: key.KeyC,
	tcell.KeyCtrlD: key.KeyD,
	tcell.KeyCtrlE: key.KeyE,
	tcell.KeyCtrlF: key.KeyF,
	tcell.KeyCtrlG: key.KeyG,
	tcell.KeyCtrlJ: key.KeyJ,
	tcell.KeyCtrlK: key.KeyK,
	tcell.KeyCtrlL: key.KeyL,
	tcell.KeyCtrlN: key.KeyN,
	tcell.KeyCtrlO: key.KeyO,
	tcell.KeyCtrlP: key.KeyP,
	tcell.KeyCtrlQ: key.KeyQ,
	tcell.KeyCtrlR: key.KeyR,
	tcell.KeyCtrlS: key.KeyS,
	tcell.KeyCtrlT: key.KeyT,
	tcell.KeyCtrlU: key.KeyU,
	tcell.KeyCtrlV: key.KeyV,
	tcell.KeyCtrlW: key.KeyW,
	tcell.KeyCtrlX: key.KeyX,
	tcell.KeyCtrlY: key.KeyY,
	tcell.KeyCtrlZ: key.KeyZ,
}

// controlKeys is the subset of tcellKeys whose source tcell.Key implies
// ModControl rather than naming the plain letter.
var controlKeys = map[tcell.Key]bool{
	tcell.KeyCtrlA: true, tcell.KeyCtrlB: true, tcell.KeyCtrlC: true,
	tcell.KeyCtrlD: true, tcell.KeyCtrlE: true, tcell.KeyCtrlF: true,
	tcell.KeyCtrlG: true, tcell.KeyCtrlJ: true,
	tcell.KeyCtrlK: true, tcell.KeyCtrlL: true, tcell.KeyCtrlN: true,
	tcell.KeyCtrlO: true, tcell.KeyCtrlP: true, tcell.KeyCtrlQ: true,
	tcell.KeyCtrlR: true, tcell.KeyCtrlS: true, tcell.KeyCtrlT: true,
	tcell.KeyCtrlU: true, tcell.KeyCtrlV: true, tcell.KeyCtrlW: true,
	tcell.KeyCtrlX: true, tcell.KeyCtrlY: true, tcell.KeyCtrlZ: true,
}

var runeKeys = map[rune]key.Key{
	' ':  key.KeySpace,
	'0':  key.Key0, '1': key.Key1, '2': key.Key2, '3': key.Key3, '4': key.Key4,
	'5':  key.Key5, '6': key.Key6, '7': key.Key7, '8': key.Key8, '9': key.Key9,
	'-':  key.KeyMinus, '=': key.KeyEquals, '[': key.KeyLeftBracket,
	']':  key.KeyRightBracket, '\\': key.KeyBackslash, ';': key.KeySemicolon,
	'\'': key.KeyQuote, ',': key.KeyComma, '.': key.KeyPeriod, '/': key.KeySlash,
	'`':  key.KeyGrave,
}

func translateKey(e *tcell.EventKey) key.KeyEvent {
	mods := translateMods(e.Modifiers())

	if k, ok := tcellKeys[e.Key()]; ok {
		if controlKeys[e.Key()] {
			mods |= key.ModControl
		}
		return key.KeyEvent{Key: k, Mods: mods}
	}

	r := e.Rune()
	if e.Key() == tcell.KeyRune && r != 0 {
		if lk, ok := letterKey(r); ok {
			return key.KeyEvent{Key: lk, Text: string(r), Mods: mods}
		}
		if rk, ok := runeKeys[r]; ok {
			return key.KeyEvent{Key: rk, Text: string(r), Mods: mods}
		}
		return key.KeyEvent{Key: key.KeyNone, Text: string(r), Mods: mods}
	}

	return key.KeyEvent{Key: key.KeyNone, Mods: mods}
}

func letterKey(r rune) (key.Key, bool) {
	lower := r
	if lower >= 'A' && lower <= 'Z' {
		lower = lower - 'A' + 'a'
	}
	if lower < 'a' || lower > 'z' {
		return key.KeyNone, false
	}
	return key.KeyA + key.Key(lower-'a'), true
}
