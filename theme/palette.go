package theme

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/loomterm/loom/cell"
)

// Palette is a collection of named colors, referenced from a Config
// value as "@name".
type Palette map[string]cell.Color

// paletteFile is the on-disk/embedded YAML shape: name -> "#RRGGBB".
type paletteFile map[string]string

//go:embed palettes/*.yaml
var embeddedPalettes embed.FS

var (
	currentPalette = make(Palette)
	paletteMu      sync.RWMutex
)

// LoadPalette loads a named palette, checking the user config directory
// first and falling back to the built-in embedded defaults.
func LoadPalette(name string) error {
	var data []byte

	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "loom", "palettes", name+".yaml")
		if d, err := os.ReadFile(path); err == nil {
			data = d
		}
	}
	if data == nil {
		path := fmt.Sprintf("palettes/%s.yaml", name)
		if d, err := embeddedPalettes.ReadFile(path); err == nil {
			data = d
		}
	}
	if data == nil {
		return fmt.Errorf("theme: palette %q not found", name)
	}
	return loadPaletteData(data)
}

func loadPaletteData(data []byte) error {
	var pf paletteFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return err
	}
	next := make(Palette, len(pf))
	for name, hex := range pf {
		next[name] = HexColor(hex).ToCell()
	}
	paletteMu.Lock()
	currentPalette = next
	paletteMu.Unlock()
	return nil
}

// ResolveColorName looks up name in the active palette, returning
// cell.Default if it is not present.
func ResolveColorName(name string) cell.Color {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	if c, ok := currentPalette[name]; ok {
		return c
	}
	return cell.Default
}
