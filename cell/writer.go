package cell

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrWriteFailed wraps an I/O error from the terminal sink a Writer's
// diffed output was written to (§7 "I/O failure").
var ErrWriteFailed = errors.New("cell: write to terminal sink failed")

// Writer converts the difference between two grids into the minimal ANSI
// byte sequence that repaints a terminal currently displaying prev so
// that it displays next.
//
// Writer holds no state between calls; callers pass the previous and new
// grid each frame (§4.1, §4.6 step 7 "Diff & emit").
type Writer struct{}

// Diff returns the ANSI bytes to transform prev into next. prev may be nil
// (or of different dimensions than next) to request a full repaint: it is
// then treated as an all-blank grid of next's size.
func (w Writer) Diff(prev, next *Grid) []byte {
	if next == nil {
		return nil
	}
	if prev == nil || prev.W != next.W || prev.H != next.H {
		prev = NewGrid(next.W, next.H)
	}

	var buf bytes.Buffer
	var style Style
	haveStyle := false
	cursorX, cursorY := -1, -1

	moveTo := func(x, y int) {
		if cursorX == x && cursorY == y {
			return
		}
		fmt.Fprintf(&buf, "\x1b[%d;%dH", y+1, x+1)
		cursorX, cursorY = x, y
	}

	applyStyle := func(to Style) {
		if haveStyle && to == style {
			return
		}
		buf.WriteString(diffStyleSGR(style, to, haveStyle))
		style = to
		haveStyle = true
	}

	for y := 0; y < next.H; y++ {
		x := 0
		for x < next.W {
			nc := next.At(x, y)
			if nc.Continuation {
				x++
				continue
			}
			wide := x+1 < next.W && next.At(x+1, y).Continuation
			width := 1
			if wide {
				width = 2
			}

			pc := prev.At(x, y)
			pWide := x+1 < prev.W && prev.At(x+1, y).Continuation
			if pc == nc && pWide == wide {
				x += width
				continue
			}

			moveTo(x, y)
			applyStyle(nc.Style)
			g := nc.Grapheme
			if g == "" {
				g = " "
			}
			buf.WriteString(g)
			cursorX += width
			x += width
		}
	}

	return buf.Bytes()
}

// diffStyleSGR returns the ESC[...m sequence transforming from into to. If
// haveFrom is false, "from" is not trusted and every non-default field of
// to is emitted.
func diffStyleSGR(from, to Style, haveFrom bool) string {
	var codes []string

	fromAttrs := from.Attrs
	if !haveFrom {
		fromAttrs = 0
	}

	// Bold/Dim share a single "off" opcode (22) in real terminals, so
	// clearing either requires clearing both and re-asserting the one
	// that should remain on.
	fromBD := fromAttrs & (Bold | Dim)
	toBD := to.Attrs & (Bold | Dim)
	if fromBD != toBD {
		// Bold/Dim have no independent "off" opcode, only a shared
		// reset (22), so any change resets both and reasserts the
		// ones that should remain on.
		codes = append(codes, "22")
		if to.Attrs&Bold != 0 {
			codes = append(codes, "1")
		}
		if to.Attrs&Dim != 0 {
			codes = append(codes, "2")
		}
	}

	type toggle struct {
		bit    Attr
		on, off string
	}
	toggles := []toggle{
		{Italic, "3", "23"},
		{Underline, "4", "24"},
		{Blink, "5", "25"},
		{Reverse, "7", "27"},
		{Strike, "9", "29"},
		{Overline, "53", "55"},
	}
	for _, t := range toggles {
		wasOn := fromAttrs&t.bit != 0
		isOn := to.Attrs&t.bit != 0
		if wasOn == isOn {
			continue
		}
		if isOn {
			codes = append(codes, t.on)
		} else {
			codes = append(codes, t.off)
		}
	}

	if !haveFrom || from.Fg != to.Fg {
		codes = append(codes, colorCode(to.Fg, true))
	}
	if !haveFrom || from.Bg != to.Bg {
		codes = append(codes, colorCode(to.Bg, false))
	}

	if len(codes) == 0 {
		return ""
	}
	out := "\x1b["
	for i, c := range codes {
		if i > 0 {
			out += ";"
		}
		out += c
	}
	return out + "m"
}

// colorCode returns the SGR parameter(s) for c. The default sentinel
// color always produces the dedicated reset opcode (39 or 49), never a
// concrete RGB triple, per §4.1.
func colorCode(c Color, foreground bool) string {
	if c.IsDefault() {
		if foreground {
			return "39"
		}
		return "49"
	}
	if foreground {
		return fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B)
	}
	return fmt.Sprintf("48;2;%d;%d;%d", c.R, c.G, c.B)
}

// EnterAltScreen, ExitAltScreen, HideCursor, and ShowCursor are the fixed
// control sequences the render loop brackets a session with (§4.1, §4.6).
const (
	EnterAltScreen = "\x1b[?1049h"
	ExitAltScreen  = "\x1b[?1049l"
	HideCursorSeq  = "\x1b[?25l"
	ShowCursorSeq  = "\x1b[?25h"
	ResetSGR       = "\x1b[0m"

	EnableMouseSeq  = "\x1b[?1000h\x1b[?1002h\x1b[?1003h\x1b[?1006h"
	DisableMouseSeq = "\x1b[?1006l\x1b[?1003l\x1b[?1002l\x1b[?1000l"

	// QueryDA1 requests a Device Attributes 1 capability report.
	QueryDA1 = "\x1b[c"

	// OSC52Prefix/OSC52Suffix bracket a base64 clipboard payload for the
	// clipboard-copy (not paste) direction: the host terminal interprets
	// this escape; loom never parses the clipboard protocol itself.
	OSC52Prefix = "\x1b]52;c;"
	OSC52Suffix = "\x1b\\"
)
