// Package project persists user-level configuration: application
// defaults and custom preset vocabularies, stored as JSON under the
// user's config directory.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/slidefig/slidefig/internal/model"
)

// DefaultConfigDir returns the default directory for application
// configuration. On all platforms this is ~/.slidefig/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".slidefig")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// maxRecentManifests caps the recent-manifests list.
const maxRecentManifests = 10

// RememberManifest moves path to the front of the recent-manifests
// list, dropping any earlier occurrence and trimming to the cap.
func RememberManifest(cfg *model.AppConfig, path string) {
	recent := []string{path}
	for _, p := range cfg.RecentManifests {
		if p != path && len(recent) < maxRecentManifests {
			recent = append(recent, p)
		}
	}
	cfg.RecentManifests = recent
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	var config model.AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	// Ensure RecentManifests is never nil
	if config.RecentManifests == nil {
		config.RecentManifests = []string{}
	}
	return config, nil
}
