// Package prefs persists the per-user display preference overrides, the
// highest tier of the preference resolution. Overrides are sparse: an unset
// option falls through to the system configuration.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ravenfield/recview/internal/format"
)

const prefsFile = "preferences.json"

func prefsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "recview")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, prefsFile), nil
}

// Save writes the overrides atomically.
func Save(p format.UserOverrides) error {
	path, err := prefsPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load reads the overrides. A missing file means no overrides.
func Load() (format.UserOverrides, error) {
	path, err := prefsPath()
	if err != nil {
		return format.UserOverrides{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return format.UserOverrides{}, nil
		}
		return format.UserOverrides{}, err
	}
	var p format.UserOverrides
	if err := json.Unmarshal(data, &p); err != nil {
		return format.UserOverrides{}, err
	}
	return p, nil
}
