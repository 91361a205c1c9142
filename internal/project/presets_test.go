package project

import (
	"path/filepath"
	"testing"

	"github.com/slidefig/slidefig/internal/preset"
)

func TestSaveAndLoadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")

	entries := []PresetEntry{
		{Kind: "anchor", Name: "Banner", Fragment: preset.Fragment{0, 0, 1, 0.2}},
		{Kind: "size", Name: "S", Fragment: preset.Fragment{0.25, 0.25, 0.5, 0.5}},
		{Kind: "modifier", Name: "thirdleft", Fragment: preset.Fragment{0, 0, 1.0 / 3, 1}},
	}

	if err := SavePresets(path, entries); err != nil {
		t.Fatalf("SavePresets failed: %v", err)
	}

	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(loaded))
	}
	if loaded[0].Name != "Banner" || loaded[0].Fragment[3] != 0.2 {
		t.Errorf("unexpected first entry %+v", loaded[0])
	}
}

func TestLoadPresetsMissingFile(t *testing.T) {
	loaded, err := LoadPresets(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected no entries, got %d", len(loaded))
	}
}

func TestApplyPresets(t *testing.T) {
	reg := preset.NewRegistry()

	entries := []PresetEntry{
		{Kind: "anchor", Name: "Banner", Fragment: preset.Fragment{0, 0, 1, 0.2}},
		{Kind: "size", Name: "S", Fragment: preset.Fragment{0.25, 0.25, 0.5, 0.5}},
	}
	if err := ApplyPresets(reg, entries); err != nil {
		t.Fatalf("ApplyPresets failed: %v", err)
	}

	if !reg.Known("banner") {
		t.Error("expected Banner anchor to be registered")
	}
	if !reg.Known("LeftS") {
		t.Error("expected the S size token to extend compound names")
	}
}

func TestApplyPresetsRejectsUnknownKind(t *testing.T) {
	reg := preset.NewRegistry()
	err := ApplyPresets(reg, []PresetEntry{{Kind: "flavor", Name: "X", Fragment: preset.Fragment{0, 0, 1, 1}}})
	if err == nil {
		t.Error("expected error for unknown preset kind")
	}
}

func TestApplyPresetsRejectsBadFragment(t *testing.T) {
	reg := preset.NewRegistry()
	err := ApplyPresets(reg, []PresetEntry{{Kind: "anchor", Name: "X", Fragment: preset.Fragment{0, 0, 3, 1}}})
	if err == nil {
		t.Error("expected error for out-of-range fragment")
	}
}
