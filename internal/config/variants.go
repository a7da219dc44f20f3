package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/mandala-visualization/internal/palette"
)

// Variant names accepted by Config.Variant and the -variant flag.
const (
	VariantDiamonds  = "diamonds"
	VariantParticles = "particles"
	VariantShapes    = "shapes"
	VariantHexes     = "hexes"
	VariantGrid      = "grid"
)

// Variants lists every variant in cycling order.
var Variants = []string{VariantDiamonds, VariantParticles, VariantShapes, VariantHexes, VariantGrid}

var ErrUnknownVariant = errors.New("unknown variant")

// Config holds one section per variant.
type Config struct {
	Variant   string         `yaml:"variant"`
	Seed      int64          `yaml:"seed"`
	Diamonds  DiamondConfig  `yaml:"diamonds"`
	Particles ParticleConfig `yaml:"particles"`
	Shapes    ShapeConfig    `yaml:"shapes"`
	Hexes     HexConfig      `yaml:"hexes"`
	Grid      GridConfig     `yaml:"grid"`
}

// DiamondConfig radiating diamond pattern.
type DiamondConfig struct {
	Palette      []string `yaml:"palette"`
	Rings        int      `yaml:"rings"`
	InnerRadius  float64  `yaml:"innerRadius"`
	OuterRadius  float64  `yaml:"outerRadius"`
	BaseSpokes   int      `yaml:"baseSpokes"`
	MaxSpokes    int      `yaml:"maxSpokes"`
	ColorMode    string   `yaml:"colorMode"` // "spiral" or "stride"
	ColorStride  int      `yaml:"colorStride"`
	SpiralFactor float64  `yaml:"spiralFactor"`
	Stagger      bool     `yaml:"stagger"`
	Threshold    float64  `yaml:"threshold"`
	Elongation   float64  `yaml:"elongation"`
	CoreSize     float64  `yaml:"coreSize"`
	CoreStart    float64  `yaml:"coreStart"`
	GroupSpin    float64  `yaml:"groupSpin"`
	GroupScale   float64  `yaml:"groupScale"`
}

// ParticleConfig canvas particle rings.
type ParticleConfig struct {
	Palette       []string `yaml:"palette"`
	Rings         int      `yaml:"rings"`
	RadiusRatio   float64  `yaml:"radiusRatio"`
	BaseCount     int      `yaml:"baseCount"`
	CountStep     int      `yaml:"countStep"`
	Outward       float64  `yaml:"outward"`
	SpinBase      float64  `yaml:"spinBase"`
	SpinStep      float64  `yaml:"spinStep"`
	SpinRate      float64  `yaml:"spinRate"` // radians per 60 Hz frame per unit speed
	LinkTolerance float64  `yaml:"linkTolerance"`
	LinkAlpha     float64  `yaml:"linkAlpha"`
	CoreRadius    float64  `yaml:"coreRadius"`
	CoreGrowth    float64  `yaml:"coreGrowth"`
}

// ShapeConfig blurred gradient shapes with spoke and Metatron overlays.
type ShapeConfig struct {
	Palette        []string `yaml:"palette"`
	Layers         int      `yaml:"layers"`
	PerLayer       int      `yaml:"perLayer"`
	RadiusRatio    float64  `yaml:"radiusRatio"`
	Jitter         float64  `yaml:"jitter"`
	Outward        float64  `yaml:"outward"`
	Sweep          float64  `yaml:"sweep"` // turns of orbit at full progress
	ShiftFactor    float64  `yaml:"shiftFactor"`
	Spokes         int      `yaml:"spokes"`
	SpokeShift     float64  `yaml:"spokeShift"`
	MetatronRatio  float64  `yaml:"metatronRatio"`
	MetatronGrowth float64  `yaml:"metatronGrowth"`
}

// HexConfig hexagon arrangement with rotation timers.
type HexConfig struct {
	Palette       []string  `yaml:"palette"`
	Size          float64   `yaml:"size"`
	Outward       float64   `yaml:"outward"`
	BaseOpacity   float64   `yaml:"baseOpacity"`
	RotationSteps []float64 `yaml:"rotationSteps"` // degrees
	InitialDelay  int       `yaml:"initialDelayMs"`
	MinInterval   int       `yaml:"minIntervalMs"`
	IntervalRange int       `yaml:"intervalRangeMs"`
	RevealStart   int       `yaml:"revealStartMs"`
	RevealStep    int       `yaml:"revealStepMs"`
	RevealHold    int       `yaml:"revealHoldMs"`
	RevealRestart int       `yaml:"revealRestartMs"`
	RevealFade    int       `yaml:"revealFadeMs"`
	NodeRadius    float64   `yaml:"nodeRadius"`
}

// GridConfig square grid cells bucketed into rings.
type GridConfig struct {
	Palette      []string `yaml:"palette"`
	CellSize     float64  `yaml:"cellSize"`
	RadiusRatio  float64  `yaml:"radiusRatio"`
	SpiralFactor float64  `yaml:"spiralFactor"`
	Outward      float64  `yaml:"outward"`
	Spin         float64  `yaml:"spin"`
	ShiftFactor  float64  `yaml:"shiftFactor"`
	BaseOpacity  float64  `yaml:"baseOpacity"`
	Shimmer      float64  `yaml:"shimmer"`
}

// PrimaryPalette is the saturated set used by the diamond pattern.
var PrimaryPalette = []string{"#FF0000", "#FFFF00", "#00FF00", "#00FFFF", "#FF00FF"}

// NeonPalette is the softer set the other variants use.
var NeonPalette = []string{"#FF3333", "#FFEB00", "#00FF66", "#00D9FF", "#FF00CC"}

// Default returns the configuration every variant ships with.
func Default() Config {
	return Config{
		Variant: VariantDiamonds,
		Seed:    1,
		Diamonds: DiamondConfig{
			Palette:      append([]string(nil), PrimaryPalette...),
			Rings:        60,
			InnerRadius:  120,
			OuterRadius:  700,
			BaseSpokes:   20,
			MaxSpokes:    50,
			ColorMode:    "spiral",
			ColorStride:  5,
			SpiralFactor: 5,
			Threshold:    0.2,
			Elongation:   1.2,
			CoreSize:     240,
			CoreStart:    0.1,
		},
		Particles: ParticleConfig{
			Palette:       append([]string(nil), NeonPalette...),
			Rings:         30,
			RadiusRatio:   0.4,
			BaseCount:     8,
			CountStep:     2,
			Outward:       0.5,
			SpinBase:      0.5,
			SpinStep:      0.1,
			SpinRate:      0.01,
			LinkTolerance: 0.3,
			LinkAlpha:     0.3,
			CoreRadius:    80,
			CoreGrowth:    40,
		},
		Shapes: ShapeConfig{
			Palette:        append([]string(nil), NeonPalette...),
			Layers:         5,
			PerLayer:       10,
			RadiusRatio:    0.6,
			Jitter:         40,
			Outward:        0.4,
			Sweep:          0.75,
			ShiftFactor:    1.5,
			Spokes:         16,
			SpokeShift:     2,
			MetatronRatio:  0.6,
			MetatronGrowth: 0.3,
		},
		Hexes: HexConfig{
			Palette:       append([]string(nil), NeonPalette...),
			Size:          200,
			Outward:       0.4,
			BaseOpacity:   0.6,
			RotationSteps: []float64{60, 120, 180, 240},
			InitialDelay:  500,
			MinInterval:   1000,
			IntervalRange: 1000,
			RevealStart:   300,
			RevealStep:    150,
			RevealHold:    2000,
			RevealRestart: 500,
			RevealFade:    600,
			NodeRadius:    15,
		},
		Grid: GridConfig{
			Palette:      append([]string(nil), NeonPalette...),
			CellSize:     40,
			RadiusRatio:  0.55,
			SpiralFactor: 5,
			Outward:      0.3,
			Spin:         0.25,
			ShiftFactor:  1,
			BaseOpacity:  0.7,
			Shimmer:      0.3,
		},
	}
}

// Load reads a YAML config file. Fields the file omits keep their defaults.
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse overlays a YAML document onto Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects configurations the generators cannot lay out.
func (c *Config) Validate() error {
	if !KnownVariant(c.Variant) {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, c.Variant)
	}

	d := c.Diamonds
	if d.Rings < 1 {
		return fmt.Errorf("diamonds.rings must be >= 1, got %d", d.Rings)
	}
	if d.InnerRadius < 0 || d.OuterRadius <= d.InnerRadius {
		return fmt.Errorf("diamonds radii must satisfy 0 <= inner < outer, got %v..%v", d.InnerRadius, d.OuterRadius)
	}
	if d.BaseSpokes < 1 || d.MaxSpokes < d.BaseSpokes {
		return fmt.Errorf("diamonds spokes must satisfy 1 <= base <= max, got %d..%d", d.BaseSpokes, d.MaxSpokes)
	}
	if d.ColorMode != "spiral" && d.ColorMode != "stride" {
		return fmt.Errorf("diamonds.colorMode must be spiral or stride, got %q", d.ColorMode)
	}
	if d.Threshold < 0 || d.Threshold >= 1 {
		return fmt.Errorf("diamonds.threshold must be in [0,1), got %v", d.Threshold)
	}
	if err := checkPalette("diamonds", d.Palette); err != nil {
		return err
	}

	p := c.Particles
	if p.Rings < 1 {
		return fmt.Errorf("particles.rings must be >= 1, got %d", p.Rings)
	}
	if p.RadiusRatio <= 0 {
		return fmt.Errorf("particles.radiusRatio must be > 0, got %v", p.RadiusRatio)
	}
	if p.CountStep < 0 {
		return fmt.Errorf("particles.countStep must be >= 0, got %d", p.CountStep)
	}
	if err := checkPalette("particles", p.Palette); err != nil {
		return err
	}

	s := c.Shapes
	if s.Layers < 1 || s.PerLayer < 1 {
		return fmt.Errorf("shapes layers and perLayer must be >= 1, got %d x %d", s.Layers, s.PerLayer)
	}
	if s.Jitter < 0 {
		return fmt.Errorf("shapes.jitter must be >= 0, got %v", s.Jitter)
	}
	if s.Spokes < 1 {
		return fmt.Errorf("shapes.spokes must be >= 1, got %d", s.Spokes)
	}
	if err := checkPalette("shapes", s.Palette); err != nil {
		return err
	}

	h := c.Hexes
	if h.Size <= 0 {
		return fmt.Errorf("hexes.size must be > 0, got %v", h.Size)
	}
	if len(h.RotationSteps) == 0 {
		return fmt.Errorf("hexes.rotationSteps cannot be empty")
	}
	if h.MinInterval <= 0 || h.RevealStep <= 0 || h.RevealFade <= 0 {
		return fmt.Errorf("hexes timings must be > 0")
	}
	if err := checkPalette("hexes", h.Palette); err != nil {
		return err
	}

	g := c.Grid
	if g.CellSize <= 0 {
		return fmt.Errorf("grid.cellSize must be > 0, got %v", g.CellSize)
	}
	if g.RadiusRatio <= 0 {
		return fmt.Errorf("grid.radiusRatio must be > 0, got %v", g.RadiusRatio)
	}
	return checkPalette("grid", g.Palette)
}

// KnownVariant reports whether name is one of Variants.
func KnownVariant(name string) bool {
	for _, v := range Variants {
		if v == name {
			return true
		}
	}
	return false
}

// NextVariant returns the variant after name in cycling order.
func NextVariant(name string) string {
	for i, v := range Variants {
		if v == name {
			return Variants[(i+1)%len(Variants)]
		}
	}
	return Variants[0]
}

func checkPalette(section string, colors []string) error {
	if _, err := palette.Parse(colors); err != nil {
		return fmt.Errorf("%s.palette: %w", section, err)
	}
	return nil
}
