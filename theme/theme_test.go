package theme

import (
	"math"
	"testing"
)

func TestResolveColorStringHexLiteral(t *testing.T) {
	c := Config{}
	got := c.resolveColorString("#ff0000", 0)
	if got.R != 0xff || got.G != 0 || got.B != 0 {
		t.Fatalf("unexpected color: %+v", got)
	}
}

func TestResolveColorStringSectionIndirection(t *testing.T) {
	c := Config{
		"ui": Section{"accent": "#00ff00"},
	}
	got := c.resolveColorString("ui.accent", 0)
	if got.G != 0xff {
		t.Fatalf("expected indirection through ui.accent, got %+v", got)
	}
}

func TestResolveColorStringImplicitUIIndirection(t *testing.T) {
	c := Config{
		"ui": Section{"text.primary": "#0000ff"},
	}
	got := c.resolveColorString("text.primary", 0)
	if got.B != 0xff {
		t.Fatalf("expected implicit ui.<key> indirection, got %+v", got)
	}
}

func TestRegisterDefaultsNeverOverwritesUserValue(t *testing.T) {
	c := Config{"ui": Section{"accent": "#123456"}}
	c.RegisterDefaults("ui", Section{"accent": "#000000", "caret": "#abcdef"})

	if c["ui"]["accent"] != "#123456" {
		t.Fatalf("expected user value preserved, got %v", c["ui"]["accent"])
	}
	if c["ui"]["caret"] != "#abcdef" {
		t.Fatalf("expected default filled in for absent key")
	}
}

func TestOKLCHRoundTripsThroughCellColor(t *testing.T) {
	want := OKLCHToCell(0.7, 0.15, 270)
	l, c, h := CellToOKLCH(want)
	got := OKLCHToCell(l, c, h)

	if diff(got.R, want.R) > 2 || diff(got.G, want.G) > 2 || diff(got.B, want.B) > 2 {
		t.Fatalf("round trip drifted: want %+v got %+v (oklch %.3f %.3f %.1f)", want, got, l, c, h)
	}
}

func diff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func TestFormatOKLCH(t *testing.T) {
	got := FormatOKLCH(0.7, 0.15, 270.456)
	want := "oklch(0.700 0.150 270.5)"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestHexColorRoundTrip(t *testing.T) {
	c := HexColor("#a1b2c3").ToCell()
	back := FromCell(c)
	if math.Abs(float64(c.R)-0xa1) > 1 {
		t.Fatalf("unexpected red channel: %+v", c)
	}
	if string(back) != "#a1b2c3" {
		t.Fatalf("expected stable hex round trip, got %q", back)
	}
}
