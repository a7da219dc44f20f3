package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iburimskiy/mandala-visualization/internal/palette"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "mandala.yaml")
	yamlContent := `
variant: hexes
seed: 7
diamonds:
  rings: 50
  baseSpokes: 12
  maxSpokes: 30
grid:
  palette: ["#000000", "#ffffff"]
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Variant != VariantHexes || cfg.Seed != 7 {
		t.Errorf("variant/seed = %q/%d", cfg.Variant, cfg.Seed)
	}
	if cfg.Diamonds.Rings != 50 || cfg.Diamonds.BaseSpokes != 12 || cfg.Diamonds.MaxSpokes != 30 {
		t.Errorf("diamond overrides not applied: %+v", cfg.Diamonds)
	}
	if cfg.Diamonds.InnerRadius != 120 || cfg.Diamonds.ColorMode != "spiral" {
		t.Errorf("omitted diamond fields lost their defaults: %+v", cfg.Diamonds)
	}
	if len(cfg.Grid.Palette) != 2 {
		t.Errorf("grid palette = %v", cfg.Grid.Palette)
	}
	if len(cfg.Shapes.Palette) != len(NeonPalette) {
		t.Errorf("shapes palette lost its default: %v", cfg.Shapes.Palette)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load of a missing file: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		target error
	}{
		{"unknown variant", "variant: spiral", ErrUnknownVariant},
		{"empty palette", "hexes:\n  palette: []", palette.ErrEmpty},
		{"no rings", "diamonds:\n  rings: 0", nil},
		{"inverted radii", "diamonds:\n  innerRadius: 800", nil},
		{"bad color mode", "diamonds:\n  colorMode: zigzag", nil},
		{"threshold at one", "diamonds:\n  threshold: 1", nil},
		{"bad hex color", "grid:\n  palette: [\"#zzzzzz\"]", nil},
		{"no rotation steps", "hexes:\n  rotationSteps: []", nil},
		{"zero cell", "grid:\n  cellSize: 0", nil},
		{"malformed yaml", "diamonds: [", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error %v does not wrap %v", err, tt.target)
			}
		})
	}
}

func TestNextVariant(t *testing.T) {
	name := VariantDiamonds
	seen := map[string]bool{}
	for range Variants {
		seen[name] = true
		name = NextVariant(name)
	}
	if name != VariantDiamonds || len(seen) != len(Variants) {
		t.Errorf("cycling visited %v and ended at %q", seen, name)
	}
	if got := NextVariant("nope"); got != Variants[0] {
		t.Errorf("NextVariant of unknown = %q", got)
	}
}
