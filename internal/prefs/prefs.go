// Package prefs remembers roster's display preferences between runs.
// Preferences live in ~/.config/roster/prefs.toml. No user data is stored.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/roster/internal/config"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme string `toml:"theme"`
}

const (
	defaultPrefsPath = "~/.config/roster/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path. Any problem yields the defaults.
func Load(path string) Prefs {
	p := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return p
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return p
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{Theme: defaultTheme}
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	return p
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp := resolved + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, resolved); err != nil {
		return errors.Join(fmt.Errorf("replace prefs: %w", err), os.Remove(tmp))
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return config.ExpandPath(defaultPrefsPath)
	}
	return config.ExpandPath(path)
}
