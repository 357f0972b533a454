// Package theme implements loom's styling configuration (§1.3): a
// singleton, lazily loaded Config keyed by section name, a named color
// palette, and semantic color bindings widgets resolve styles through.
package theme

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/loomterm/loom/cell"
)

// Config is the whole theme/configuration structure: a map of section
// name to its key/value pairs.
type Config map[string]Section

// Section is one namespaced part of the configuration.
type Section map[string]interface{}

var (
	instance Config
	once     sync.Once
	loadErr  error
	mu       sync.RWMutex
)

// Get returns the singleton Config, loading it from disk on first call.
// A load failure is logged and falls back to built-in defaults rather
// than failing the caller.
func Get() Config {
	once.Do(func() {
		instance = make(Config)
		loadErr = instance.Load()
		if loadErr != nil {
			log.Printf("theme: could not load theme file (%v); using built-in defaults", loadErr)
		}

		paletteName := instance.GetString("meta", "palette", "slate")
		if err := LoadPalette(paletteName); err != nil {
			log.Printf("theme: could not load palette %q (%v), falling back to \"slate\"", paletteName, err)
			LoadPalette("slate")
		}

		instance.LoadStandardSemantics()
	})

	mu.RLock()
	defer mu.RUnlock()
	return instance
}

// GetLoadError returns the error (if any) from the initial load.
func GetLoadError() error {
	_ = Get()
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// Reload re-reads the theme file and palette from disk, replacing the
// singleton instance.
func Reload() error {
	mu.Lock()
	defer mu.Unlock()

	next := make(Config)
	if err := next.Load(); err != nil {
		log.Printf("theme: reload failed: %v", err)
		return err
	}
	instance = next

	paletteName := instance.GetString("meta", "palette", "slate")
	if err := LoadPalette(paletteName); err != nil {
		log.Printf("theme: could not load palette %q (%v), falling back to \"slate\"", paletteName, err)
		LoadPalette("slate")
	}
	instance.LoadStandardSemantics()
	return nil
}

func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "loom", "theme.yaml"), nil
}

// Load reads the configuration from the default path, leaving c empty
// (not an error) if the file does not exist yet.
func (c Config) Load() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, &c)
}

// Save writes the current configuration to the default path.
func (c Config) Save() error {
	mu.Lock()
	defer mu.Unlock()

	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c Config) getRawValue(sectionName, key string) (interface{}, bool) {
	if section, ok := c[sectionName]; ok {
		if val, ok := section[key]; ok {
			return val, true
		}
	}
	return nil, false
}

// GetColor resolves a color value, following §-style indirection: a
// literal "#RRGGBB" hex string, a "@name" palette reference, a
// "section.key" cross-reference, or an implicit "ui.<key>" lookup when
// none of those match.
func (c Config) GetColor(sectionName, key string, def cell.Color) cell.Color {
	mu.RLock()
	defer mu.RUnlock()

	val, ok := c.getRawValue(sectionName, key)
	if !ok {
		return def
	}
	s, ok := val.(string)
	if !ok {
		return def
	}
	return c.resolveColorString(s, 0)
}

func (c Config) resolveColorString(s string, depth int) cell.Color {
	if depth > 5 {
		return cell.Default
	}
	if strings.HasPrefix(s, "#") {
		return HexColor(s).ToCell()
	}
	if strings.HasPrefix(s, "@") {
		return ResolveColorName(strings.TrimPrefix(s, "@"))
	}
	if parts := strings.SplitN(s, ".", 2); len(parts) == 2 {
		if ref, ok := c.getRawValue(parts[0], parts[1]); ok {
			if refStr, ok := ref.(string); ok {
				return c.resolveColorString(refStr, depth+1)
			}
		}
	}
	if ref, ok := c.getRawValue("ui", s); ok {
		if refStr, ok := ref.(string); ok {
			return c.resolveColorString(refStr, depth+1)
		}
	}
	if len(s) == 6 {
		if _, err := strconv.ParseInt(s, 16, 64); err == nil {
			return HexColor("#" + s).ToCell()
		}
	}
	return cell.Default
}

// GetString retrieves a string value, or def if absent/wrong type.
func (c Config) GetString(sectionName, key, def string) string {
	if section, ok := c[sectionName]; ok {
		if v, ok := section[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return def
}

// GetFloat retrieves a float value, or def if absent/wrong type.
func (c Config) GetFloat(sectionName, key string, def float64) float64 {
	if section, ok := c[sectionName]; ok {
		if v, ok := section[key]; ok {
			switch t := v.(type) {
			case float64:
				return t
			case int:
				return float64(t)
			case string:
				if f, err := strconv.ParseFloat(t, 64); err == nil {
					return f
				}
			}
		}
	}
	return def
}

// GetInt retrieves an int value, or def if absent/wrong type.
func (c Config) GetInt(sectionName, key string, def int) int {
	if section, ok := c[sectionName]; ok {
		if v, ok := section[key]; ok {
			switch t := v.(type) {
			case int:
				return t
			case float64:
				return int(t)
			case string:
				if i, err := strconv.Atoi(t); err == nil {
					return i
				}
			}
		}
	}
	return def
}

// GetBool retrieves a bool value, or def if absent/wrong type.
func (c Config) GetBool(sectionName, key string, def bool) bool {
	if section, ok := c[sectionName]; ok {
		if v, ok := section[key]; ok {
			switch t := v.(type) {
			case bool:
				return t
			case string:
				if b, err := strconv.ParseBool(t); err == nil {
					return b
				}
			}
		}
	}
	return def
}

// RegisterDefaults fills in defaults for keys the user hasn't set,
// without overwriting anything they have.
func (c Config) RegisterDefaults(sectionName string, defaults Section) {
	if _, ok := c[sectionName]; !ok {
		c[sectionName] = make(Section)
	}
	for key, def := range defaults {
		if _, ok := c[sectionName][key]; !ok {
			c[sectionName][key] = def
		}
	}
}

// Err returns the error (if any) from the initial load.
func Err() error { return loadErr }
