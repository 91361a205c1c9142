package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slidefig/slidefig/internal/preset"
)

// PresetEntry is one user-defined preset fragment on disk.
type PresetEntry struct {
	Kind     string          `json:"kind"` // "anchor", "size" or "modifier"
	Name     string          `json:"name"`
	Fragment preset.Fragment `json:"fragment"`
}

// DefaultPresetsPath returns the default file path for custom presets.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SavePresets saves custom preset entries to a JSON file.
func SavePresets(path string, entries []PresetEntry) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPresets loads custom preset entries from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadPresets(path string) ([]PresetEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []PresetEntry{}, nil
		}
		return nil, err
	}

	var entries []PresetEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ApplyPresets registers the entries into the registry, on top of the
// built-in vocabulary.
func ApplyPresets(reg *preset.Registry, entries []PresetEntry) error {
	for _, e := range entries {
		var err error
		switch e.Kind {
		case "anchor":
			err = reg.RegisterAnchor(e.Name, e.Fragment)
		case "size":
			err = reg.RegisterSize(e.Name, e.Fragment)
		case "modifier":
			err = reg.RegisterModifier(e.Name, e.Fragment)
		default:
			err = fmt.Errorf("unknown preset kind %q", e.Kind)
		}
		if err != nil {
			return fmt.Errorf("registering preset %q: %w", e.Name, err)
		}
	}
	return nil
}
