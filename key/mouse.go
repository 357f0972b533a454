package key

import (
	"fmt"
	"strconv"
	"strings"
)

// WireMouse is the subset of MouseEvent the SGR extended mouse protocol
// (§6) can carry: a mouse event without the render loop's derived
// click_count.
type WireMouse struct {
	Button Button
	Action Action
	X, Y   int
	Mods   Modifier
}

const (
	bitShift   = 0x04
	bitAlt     = 0x08
	bitControl = 0x10
	bitMotion  = 0x20
	bitScroll  = 0x40

	buttonCodeLeft   = 0
	buttonCodeMiddle = 1
	buttonCodeRight  = 2
	buttonCodeNone   = 3
)

// EncodeMouseSGR serializes ev as an SGR extended mouse escape sequence:
// ESC[<Cb;Cx;Cy(M|m). Coordinates are 1-based on the wire.
func EncodeMouseSGR(ev WireMouse) string {
	var code int
	switch ev.Button {
	case ButtonLeft:
		code = buttonCodeLeft
	case ButtonMiddle:
		code = buttonCodeMiddle
	case ButtonRight:
		code = buttonCodeRight
	case ButtonScrollUp:
		code = bitScroll
	case ButtonScrollDown:
		code = bitScroll | 1
	default:
		code = buttonCodeNone
	}
	if ev.Action == ActionDrag || ev.Action == ActionMove {
		code |= bitMotion
	}
	if ev.Mods.Has(ModShift) {
		code |= bitShift
	}
	if ev.Mods.Has(ModAlt) {
		code |= bitAlt
	}
	if ev.Mods.Has(ModControl) {
		code |= bitControl
	}

	trailing := "M"
	if ev.Action == ActionUp {
		trailing = "m"
	}
	return fmt.Sprintf("\x1b[<%d;%d;%d%s", code, ev.X+1, ev.Y+1, trailing)
}

// ParseMouseSGR decodes an SGR extended mouse escape sequence. It returns
// false if seq is not well-formed, in which case the caller must drop the
// sequence and emit no event (§7 input parse failure).
func ParseMouseSGR(seq string) (WireMouse, bool) {
	const prefix = "\x1b[<"
	if !strings.HasPrefix(seq, prefix) {
		return WireMouse{}, false
	}
	body := seq[len(prefix):]
	if len(body) == 0 {
		return WireMouse{}, false
	}
	last := body[len(body)-1]
	if last != 'M' && last != 'm' {
		return WireMouse{}, false
	}
	body = body[:len(body)-1]

	parts := strings.Split(body, ";")
	if len(parts) != 3 {
		return WireMouse{}, false
	}
	code, err1 := strconv.Atoi(parts[0])
	cx, err2 := strconv.Atoi(parts[1])
	cy, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || code < 0 || cx < 1 || cy < 1 {
		return WireMouse{}, false
	}

	var ev WireMouse
	ev.X = cx - 1
	ev.Y = cy - 1

	if code&bitShift != 0 {
		ev.Mods |= ModShift
	}
	if code&bitAlt != 0 {
		ev.Mods |= ModAlt
	}
	if code&bitControl != 0 {
		ev.Mods |= ModControl
	}

	isRelease := last == 'm'
	motion := code&bitMotion != 0

	if code&bitScroll != 0 {
		if code&1 != 0 {
			ev.Button = ButtonScrollDown
		} else {
			ev.Button = ButtonScrollUp
		}
		ev.Action = ActionDown
		return ev, true
	}

	switch code & 0x3 {
	case buttonCodeLeft:
		ev.Button = ButtonLeft
	case buttonCodeMiddle:
		ev.Button = ButtonMiddle
	case buttonCodeRight:
		ev.Button = ButtonRight
	default:
		ev.Button = ButtonNone
	}

	switch {
	case isRelease:
		ev.Action = ActionUp
	case motion && ev.Button == ButtonNone:
		ev.Action = ActionMove
	case motion:
		ev.Action = ActionDrag
	default:
		ev.Action = ActionDown
	}

	return ev, true
}
