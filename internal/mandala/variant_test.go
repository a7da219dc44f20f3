package mandala

import (
	"errors"
	"testing"

	"github.com/iburimskiy/mandala-visualization/internal/config"
	"github.com/iburimskiy/mandala-visualization/internal/palette"
)

func TestNewVariants(t *testing.T) {
	cfg := config.Default()
	modes := map[string]Mode{
		config.VariantDiamonds:  OnScroll,
		config.VariantParticles: Continuous,
		config.VariantShapes:    OnScroll,
		config.VariantHexes:     Continuous,
		config.VariantGrid:      OnScroll,
	}
	for _, name := range config.Variants {
		v, err := New(name, &cfg)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if v.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, v.Name())
		}
		if v.Mode() != modes[name] {
			t.Errorf("%s mode = %v, want %v", name, v.Mode(), modes[name])
		}
	}
}

func TestNewErrors(t *testing.T) {
	cfg := config.Default()
	if _, err := New("spiral", &cfg); !errors.Is(err, config.ErrUnknownVariant) {
		t.Errorf("unknown variant error = %v", err)
	}

	cfg.Hexes.Palette = nil
	if _, err := New(config.VariantHexes, &cfg); !errors.Is(err, palette.ErrEmpty) {
		t.Errorf("empty palette error = %v", err)
	}
}
