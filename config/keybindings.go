// Package config loads loom's YAML configuration files: user-remappable
// key-binding chords (this file) and, via loom/theme, the color theme.
// Key-binding defaults are a supplemented feature (§1.3): the spec's
// Binding Model never forbids externally configurable chords, so a
// widget may look up its chord through this package instead of
// hardcoding a key.KeyStep slice.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/loomterm/loom/key"
)

// keyNames maps a lowercase token to the Key it names. Letters, digits,
// and punctuation map to themselves; everything else needs a name.
var keyNames = map[string]key.Key{
	"f1": key.KeyF1, "f2": key.KeyF2, "f3": key.KeyF3, "f4": key.KeyF4,
	"f5": key.KeyF5, "f6": key.KeyF6, "f7": key.KeyF7, "f8": key.KeyF8,
	"f9": key.KeyF9, "f10": key.KeyF10, "f11": key.KeyF11, "f12": key.KeyF12,

	"up": key.KeyUp, "down": key.KeyDown, "left": key.KeyLeft, "right": key.KeyRight,
	"home": key.KeyHome, "end": key.KeyEnd, "pageup": key.KeyPageUp, "pagedown": key.KeyPageDown,

	"insert": key.KeyInsert, "delete": key.KeyDelete, "backspace": key.KeyBackspace,

	"enter": key.KeyEnter, "tab": key.KeyTab, "space": key.KeySpace, "escape": key.KeyEscape, "esc": key.KeyEscape,

	"-": key.KeyMinus, "=": key.KeyEquals, "[": key.KeyLeftBracket, "]": key.KeyRightBracket,
	"\\": key.KeyBackslash, ";": key.KeySemicolon, "'": key.KeyQuote,
	",": key.KeyComma, ".": key.KeyPeriod, "/": key.KeySlash, "`": key.KeyGrave,
}

// keyTokens is the reverse of keyNames, built once in init, for
// FormatChord.
var keyTokens = map[key.Key]string{}

func init() {
	for r := 'a'; r <= 'z'; r++ {
		keyNames[string(r)] = key.KeyA + key.Key(r-'a')
	}
	for d := '0'; d <= '9'; d++ {
		keyNames[string(d)] = key.Key0 + key.Key(d-'0')
	}
	for token, k := range keyNames {
		if _, ok := keyTokens[k]; !ok {
			keyTokens[k] = token
		}
	}
}

// ParseChord parses a chord specification such as "ctrl+s" (one step) or
// "g g" (two steps, space-separated) into the KeySteps a binding
// declares. Each step is "mod+mod+...+key", modifiers and key
// case-insensitive.
func ParseChord(spec string) ([]key.KeyStep, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, fmt.Errorf("config: empty chord spec")
	}
	steps := make([]key.KeyStep, len(fields))
	for i, f := range fields {
		step, err := parseStep(f)
		if err != nil {
			return nil, fmt.Errorf("config: chord %q: %w", spec, err)
		}
		steps[i] = step
	}
	return steps, nil
}

func parseStep(field string) (key.KeyStep, error) {
	parts := strings.Split(field, "+")
	var mods key.Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "ctrl", "control":
			mods |= key.ModControl
		case "alt":
			mods |= key.ModAlt
		case "shift":
			mods |= key.ModShift
		default:
			return key.KeyStep{}, fmt.Errorf("unknown modifier %q", p)
		}
	}
	name := strings.ToLower(parts[len(parts)-1])
	k, ok := keyNames[name]
	if !ok {
		return key.KeyStep{}, fmt.Errorf("unknown key %q", name)
	}
	if !mods.Valid() {
		return key.KeyStep{}, fmt.Errorf("conflicting modifiers in %q", field)
	}
	return key.KeyStep{Key: k, Mods: mods}, nil
}

// FormatChord renders steps back into the "mod+mod+key ..." notation
// ParseChord accepts, for display purposes (a status bar's hint strip,
// a help screen). A step whose key has no known token renders as "?".
func FormatChord(steps []key.KeyStep) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		var b strings.Builder
		if s.Mods.Has(key.ModControl) {
			b.WriteString("ctrl+")
		}
		if s.Mods.Has(key.ModAlt) {
			b.WriteString("alt+")
		}
		if s.Mods.Has(key.ModShift) {
			b.WriteString("shift+")
		}
		token, ok := keyTokens[s.Key]
		if !ok {
			token = "?"
		}
		b.WriteString(token)
		parts[i] = b.String()
	}
	return strings.Join(parts, " ")
}

// KeyBindings maps an application-defined action name to its configured
// chord, e.g. {"focus.next": "tab", "save": "ctrl+s", "goto.top": "g g"}.
type KeyBindings map[string]string

// Resolve parses every entry, returning the same keys with parsed chords.
// A malformed entry is reported with its action name but does not abort
// parsing the rest.
func (kb KeyBindings) Resolve() (map[string][]key.KeyStep, error) {
	out := make(map[string][]key.KeyStep, len(kb))
	var errs []string
	for action, spec := range kb {
		steps, err := ParseChord(spec)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", action, err))
			continue
		}
		out[action] = steps
	}
	if len(errs) > 0 {
		return out, fmt.Errorf("config: %d invalid key binding(s): %s", len(errs), strings.Join(errs, "; "))
	}
	return out, nil
}

func keyBindingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "loom", "keybindings.yaml"), nil
}

// LoadKeyBindings reads the user's key-binding overrides from the default
// path, returning an empty (not nil) map and no error if the file does
// not exist.
func LoadKeyBindings() (KeyBindings, error) {
	path, err := keyBindingsPath()
	if err != nil {
		return KeyBindings{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return KeyBindings{}, nil
		}
		return KeyBindings{}, err
	}
	var kb KeyBindings
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return KeyBindings{}, fmt.Errorf("config: parse key bindings: %w", err)
	}
	return kb, nil
}

// WithDefaults overlays kb on top of defaults: any action kb does not
// mention keeps its default chord string.
func (kb KeyBindings) WithDefaults(defaults KeyBindings) KeyBindings {
	out := make(KeyBindings, len(defaults))
	for action, spec := range defaults {
		out[action] = spec
	}
	for action, spec := range kb {
		out[action] = spec
	}
	return out
}
