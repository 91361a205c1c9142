package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/slidefig/slidefig/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultKeepAspect = false
	cfg.DefaultBox = "TopRightXL"
	cfg.RecentManifests = []string{"/tmp/a.csv", "/tmp/b.xlsx"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultKeepAspect {
		t.Error("expected keep-aspect default to survive the round trip")
	}
	if loaded.DefaultBox != "TopRightXL" {
		t.Errorf("expected default box TopRightXL, got %q", loaded.DefaultBox)
	}
	if len(loaded.RecentManifests) != 2 {
		t.Errorf("expected 2 recent manifests, got %d", len(loaded.RecentManifests))
	}
}

func TestLoadAppConfigMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if !cfg.DefaultKeepAspect || !cfg.DefaultDeletePlaceholders {
		t.Error("expected stock defaults for a missing file")
	}
	if cfg.RecentManifests == nil {
		t.Error("expected RecentManifests to be non-nil")
	}
}

func TestRememberManifest(t *testing.T) {
	cfg := model.DefaultAppConfig()

	RememberManifest(&cfg, "/tmp/a.csv")
	RememberManifest(&cfg, "/tmp/b.xlsx")
	if len(cfg.RecentManifests) != 2 || cfg.RecentManifests[0] != "/tmp/b.xlsx" {
		t.Errorf("expected newest manifest first, got %v", cfg.RecentManifests)
	}

	// Re-remembering moves to the front without duplicating.
	RememberManifest(&cfg, "/tmp/a.csv")
	if len(cfg.RecentManifests) != 2 || cfg.RecentManifests[0] != "/tmp/a.csv" {
		t.Errorf("expected dedup and move-to-front, got %v", cfg.RecentManifests)
	}
}

func TestRememberManifestCapsList(t *testing.T) {
	cfg := model.DefaultAppConfig()
	for i := 0; i < 15; i++ {
		RememberManifest(&cfg, filepath.Join("/tmp", string(rune('a'+i))+".csv"))
	}
	if len(cfg.RecentManifests) != 10 {
		t.Errorf("expected the list capped at 10, got %d", len(cfg.RecentManifests))
	}
	if cfg.RecentManifests[0] != "/tmp/o.csv" {
		t.Errorf("expected newest manifest first, got %v", cfg.RecentManifests[0])
	}
}

func TestLoadAppConfigCreatesParentDirsOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "config.json")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to exist: %v", err)
	}
}
