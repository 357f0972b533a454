package widgets

import (
	"strings"
	"time"

	"github.com/loomterm/loom/cell"
	"github.com/loomterm/loom/node"
	"github.com/loomterm/loom/theme"
)

// KeyHint is a single "key:action" entry the status bar displays,
// usually gathered from the bindings declared along the focused path
// (§4.2 build_bindings is the read-only consumer this exercises).
type KeyHint struct {
	Key   string
	Label string
}

// FormatKeyHints joins hints with the status bar's separator glyph.
func FormatKeyHints(hints []KeyHint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		if h.Key == "" || h.Label == "" {
			continue
		}
		parts = append(parts, h.Key+":"+h.Label)
	}
	return strings.Join(parts, " │ ")
}

// MessageLevel selects a timed message's styling.
type MessageLevel int

const (
	MessageInfo MessageLevel = iota
	MessageSuccess
	MessageWarning
	MessageError
)

type timedMessage struct {
	text      string
	level     MessageLevel
	expiresAt time.Time
}

// StatusBar is an always-present, non-focusable node displaying key
// hints (left) and the highest-priority live timed message (right),
// grounded in the teacher's StatusBar/keyhints split between a read-only
// hint source and a message queue. Unlike the teacher, there is no
// background ticker: expiry is checked once per Render, matching the
// render loop's single-threaded frame model (§5) rather than a
// goroutine-driven invalidate.
type StatusBar struct {
	node.Base

	Hints    []KeyHint
	messages []timedMessage
}

// NewStatusBar returns an empty status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// Notify queues a message that remains visible for ttl (three seconds if
// ttl <= 0).
func (s *StatusBar) Notify(text string, level MessageLevel, ttl time.Duration, now time.Time) {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	s.messages = append(s.messages, timedMessage{text: text, level: level, expiresAt: now.Add(ttl)})
}

func (s *StatusBar) Children() []node.Node             { return nil }
func (s *StatusBar) FocusableDescendants() []node.Node { return nil }
func (s *StatusBar) BuildBindings(node.BindingDeclarer) {}
func (s *StatusBar) HandleInput(node.InputEvent) node.Handling {
	return node.NotHandled
}

func (s *StatusBar) expireMessages(now time.Time) {
	live := s.messages[:0]
	for _, m := range s.messages {
		if now.Before(m.expiresAt) {
			live = append(live, m)
		}
	}
	s.messages = live
}

func (s *StatusBar) topMessage() (timedMessage, bool) {
	var best timedMessage
	found := false
	for _, m := range s.messages {
		if !found || m.level >= best.level {
			best = m
			found = true
		}
	}
	return best, found
}

func messageStyle(colors theme.WidgetColors, level MessageLevel) cell.Style {
	fg := colors.TextSecondary
	switch level {
	case MessageSuccess:
		fg = colors.ActionPrimary
	case MessageWarning, MessageError:
		fg = colors.Accent
	}
	return cell.DefaultStyle.WithFg(fg).WithBg(colors.SurfaceBg)
}

// Render draws the hint strip and any live message, right-aligned within
// the bar's own bounds.
func (s *StatusBar) Render(c cell.Canvas) {
	s.expireMessages(time.Now())

	colors := theme.CurrentWidgetColors()
	bounds := s.Bounds()
	c.Fill(bounds, cell.Cell{Grapheme: " ", Style: colors.Style()})

	left := FormatKeyHints(s.Hints)
	c.WriteText(bounds.X, bounds.Y, left, colors.Style())

	if msg, ok := s.topMessage(); ok {
		text := msg.text
		style := messageStyle(colors, msg.level)
		x := bounds.Right() - len([]rune(text))
		if x < bounds.X+len([]rune(left))+1 {
			x = bounds.X + len([]rune(left)) + 1
		}
		c.WriteText(x, bounds.Y, text, style)
	}
}
