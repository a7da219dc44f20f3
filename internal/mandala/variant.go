package mandala

import (
	"fmt"

	"github.com/iburimskiy/mandala-visualization/internal/config"
	"github.com/iburimskiy/mandala-visualization/internal/palette"
)

// New builds the named variant from its section of cfg.
func New(name string, cfg *config.Config) (Variant, error) {
	parse := func(section string, hexes []string) (palette.Palette, error) {
		p, err := palette.Parse(hexes)
		if err != nil {
			return nil, fmt.Errorf("%s palette: %w", section, err)
		}
		return p, nil
	}

	switch name {
	case config.VariantDiamonds:
		pal, err := parse(name, cfg.Diamonds.Palette)
		if err != nil {
			return nil, err
		}
		return NewDiamonds(cfg.Diamonds, pal), nil
	case config.VariantParticles:
		pal, err := parse(name, cfg.Particles.Palette)
		if err != nil {
			return nil, err
		}
		return NewParticles(cfg.Particles, pal), nil
	case config.VariantShapes:
		pal, err := parse(name, cfg.Shapes.Palette)
		if err != nil {
			return nil, err
		}
		return NewShapes(cfg.Shapes, pal), nil
	case config.VariantHexes:
		pal, err := parse(name, cfg.Hexes.Palette)
		if err != nil {
			return nil, err
		}
		return NewHexes(cfg.Hexes, pal), nil
	case config.VariantGrid:
		pal, err := parse(name, cfg.Grid.Palette)
		if err != nil {
			return nil, err
		}
		return NewGrid(cfg.Grid, pal), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownVariant, name)
}
