package key

import "testing"

func TestMouseRoundTrip(t *testing.T) {
	cases := []WireMouse{
		{Button: ButtonLeft, Action: ActionDown, X: 9, Y: 4},
		{Button: ButtonLeft, Action: ActionUp, X: 12, Y: 4},
		{Button: ButtonNone, Action: ActionMove, X: 0, Y: 0},
		{Button: ButtonRight, Action: ActionDrag, X: 300, Y: 300, Mods: ModShift | ModAlt},
		{Button: ButtonScrollUp, Action: ActionDown, X: 5, Y: 5},
		{Button: ButtonScrollDown, Action: ActionDown, X: 5, Y: 5, Mods: ModControl},
	}
	for _, want := range cases {
		seq := EncodeMouseSGR(want)
		got, ok := ParseMouseSGR(seq)
		if !ok {
			t.Fatalf("ParseMouseSGR(%q) failed to parse its own encoding", seq)
		}
		if got != want {
			t.Fatalf("round trip mismatch: got %+v, want %+v (seq %q)", got, want, seq)
		}
	}
}

func TestMouseCoordinatesAbove223(t *testing.T) {
	want := WireMouse{Button: ButtonLeft, Action: ActionDown, X: 500, Y: 999}
	seq := EncodeMouseSGR(want)
	got, ok := ParseMouseSGR(seq)
	if !ok || got != want {
		t.Fatalf("large coordinates not supported: got %+v ok=%v", got, ok)
	}
}

func TestParseMouseMalformedDropsSilently(t *testing.T) {
	_, ok := ParseMouseSGR("\x1b[<not-a-sequence")
	if ok {
		t.Fatalf("expected malformed sequence to fail to parse")
	}
	_, ok = ParseMouseSGR("garbage")
	if ok {
		t.Fatalf("expected non-prefixed input to fail to parse")
	}
}

func TestKeyEventIsPrintable(t *testing.T) {
	cases := []struct {
		ev   KeyEvent
		want bool
	}{
		{KeyEvent{Key: KeyA, Text: "a"}, true},
		{KeyEvent{Key: KeyEnter, Text: ""}, false},
		{KeyEvent{Key: KeyEnter, Text: "\r"}, false},
		{KeyEvent{Key: KeyNone, Text: "😀"}, true},
		{KeyEvent{Key: KeyNone, Text: "hello"}, true},
	}
	for _, c := range cases {
		if got := c.ev.IsPrintable(); got != c.want {
			t.Errorf("IsPrintable(%+v) = %v, want %v", c.ev, got, c.want)
		}
	}
}
