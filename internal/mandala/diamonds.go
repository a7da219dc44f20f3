package mandala

import (
	"math"
	"math/rand"
	"time"

	"github.com/iburimskiy/mandala-visualization/internal/config"
	"github.com/iburimskiy/mandala-visualization/internal/palette"
)

// diamondDesignSize is the square the diamond radii are expressed in; the
// pattern is scaled so this square fits the shorter viewport side.
const diamondDesignSize = 1000.0

// Diamonds is the radiating diamond pattern. Rings get denser outward, colors
// follow a spiral (or stride) index, and late in the scroll every diamond
// cross-fades to a black/white checkerboard while the center disc grows.
type Diamonds struct {
	cfg config.DiamondConfig
	pal palette.Palette
}

// NewDiamonds builds the variant from its config section.
func NewDiamonds(cfg config.DiamondConfig, pal palette.Palette) *Diamonds {
	return &Diamonds{cfg: cfg, pal: pal}
}

func (d *Diamonds) Name() string { return config.VariantDiamonds }
func (d *Diamonds) Mode() Mode   { return OnScroll }

func (d *Diamonds) Generate(vp Viewport, _ *rand.Rand) *Scene {
	s := NewScene(vp)
	fit := math.Min(vp.Width, vp.Height) / diamondDesignSize
	inner := d.cfg.InnerRadius * fit
	outer := d.cfg.OuterRadius * fit
	rings := d.cfg.Rings
	width := outer - inner
	if rings > 1 {
		width /= float64(rings - 1)
	}
	count := LinearCount(d.cfg.BaseSpokes, d.cfg.MaxSpokes)

	for ring := 0; ring < rings; ring++ {
		radius := RingRadius(ring, rings, inner, outer)
		spokes := count(ring, rings, radius)
		for spoke := 0; spoke < spokes; spoke++ {
			angle := SpokeAngle(spoke, spokes, ring, d.cfg.Stagger)
			s.add(Primitive{
				Kind:    KindDiamond,
				Shape:   ShapePolygon,
				Ring:    ring,
				Index:   spoke,
				Radius:  radius,
				Angle:   angle,
				Base:    Polar(s.Center, radius, angle),
				Size:    math.Pi * radius / float64(spokes),
				Extent:  width * d.cfg.Elongation / 2,
				Color:   d.colorIndex(ring, spoke, spokes),
				Opacity: 1,
				From:    -1,
				To:      -1,
			})
		}
	}
	s.indexRings(KindDiamond)
	s.Groups = make([]Group, rings)
	for ring := range s.Groups {
		s.Groups[ring] = Group{Ring: ring, Scale: 1}
	}

	s.add(Primitive{
		Kind:    KindCore,
		Shape:   ShapeCircle,
		Ring:    -1,
		Base:    s.Center,
		Size:    d.cfg.CoreSize / 2,
		Opacity: 1,
		From:    -1,
		To:      -1,
	})
	return s
}

func (d *Diamonds) colorIndex(ring, spoke, spokes int) int {
	if d.cfg.ColorMode == "stride" {
		return StrideIndex(ring, spoke, d.cfg.ColorStride, d.pal.Len())
	}
	return SpiralIndex(ring, float64(spoke)/float64(spokes), d.cfg.SpiralFactor, d.pal.Len())
}

func (d *Diamonds) Apply(s *Scene, progress float64, _ time.Duration) {
	for ring := range s.Groups {
		dir := 1.0
		if ring%2 == 1 {
			dir = -1
		}
		s.Groups[ring].Rotation = dir * Spin(progress, d.cfg.GroupSpin)
		s.Groups[ring].Scale = RadialScale(progress, d.cfg.GroupScale)
	}
	mix := CheckerMix(progress, d.cfg.Threshold)

	for i := range s.Primitives {
		p := &s.Primitives[i]
		switch p.Kind {
		case KindDiamond:
			g := s.Groups[p.Ring]
			angle := p.Angle + g.Rotation
			center := Polar(s.Center, p.Radius*g.Scale, angle)
			target := palette.Black
			if IsWhite(p.Ring, p.Index) {
				target = palette.White
			}
			p.Display = Attrs{
				X:        center.X(),
				Y:        center.Y(),
				Size:     p.Size * g.Scale,
				Rotation: angle,
				Fill:     palette.Blend(d.pal.At(p.Color), target, mix),
				Opacity:  p.Opacity,
				Points:   Rhombus(center, p.Extent*g.Scale, p.Size*g.Scale, angle),
			}
		case KindCore:
			p.Display = Attrs{
				X:       p.Base.X(),
				Y:       p.Base.Y(),
				Size:    d.coreDiameter(s.Viewport, progress) / 2,
				Fill:    palette.White,
				Opacity: 1,
			}
		}
	}
}

// coreDiameter holds at CoreSize until CoreStart, then grows linearly to twice
// the longer viewport side at full progress.
func (d *Diamonds) coreDiameter(vp Viewport, progress float64) float64 {
	size := d.cfg.CoreSize
	if progress <= d.cfg.CoreStart || d.cfg.CoreStart >= 1 {
		return size
	}
	full := 2 * math.Max(vp.Width, vp.Height)
	return size + (progress-d.cfg.CoreStart)*(full-size)/(1-d.cfg.CoreStart)
}
