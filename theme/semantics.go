package theme

import "github.com/loomterm/loom/cell"

// StandardSemantics maps semantic names to palette references. Widgets
// resolve style colors through these names rather than hardcoding
// palette entries directly, so a palette swap re-themes every widget
// without touching widget code.
var StandardSemantics = Section{
	"accent":           "@mauve",
	"accent_secondary": "@lavender",

	"bg.base":    "@base",
	"bg.mantle":  "@mantle",
	"bg.crust":   "@crust",
	"bg.surface": "@surface0",

	"text.primary":   "@text",
	"text.secondary": "@subtext1",
	"text.muted":     "@overlay0",
	"text.inverse":   "@base",
	"text.accent":    "accent",

	"action.primary": "accent",
	"action.success": "@green",
	"action.warning": "@yellow",
	"action.danger":  "@red",
	"selection":      "@surface2",

	"border.default": "@overlay0",
	"border.active":  "accent",
	"border.focus":   "accent_secondary",

	"caret": "@rosewater",
}

// LoadStandardSemantics registers StandardSemantics into the "ui"
// section, so every semantic name resolves even for a theme file that
// defines none of them.
func (c Config) LoadStandardSemantics() {
	c.RegisterDefaults("ui", StandardSemantics)
}

// GetSemanticColor resolves a semantic color name from the "ui" section.
func (c Config) GetSemanticColor(key string) cell.Color {
	return c.GetColor("ui", key, cell.Default)
}
