package mandala

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/mandala-visualization/internal/config"
	"github.com/iburimskiy/mandala-visualization/internal/palette"
)

// cellFill is the share of a grid cell its square covers.
const cellFill = 0.9

// Grid tiles square cells in concentric square rings around the center (the
// center cell itself is left empty, so ring 0 already has 8 cells). Colors
// follow the spiral index so bands twist instead of lining up with the grid.
type Grid struct {
	cfg config.GridConfig
	pal palette.Palette
}

// NewGrid builds the variant from its config section.
func NewGrid(cfg config.GridConfig, pal palette.Palette) *Grid {
	return &Grid{cfg: cfg, pal: pal}
}

func (v *Grid) Name() string { return config.VariantGrid }
func (v *Grid) Mode() Mode   { return OnScroll }

func (v *Grid) rings(vp Viewport) int {
	n := int(math.Floor(math.Min(vp.Width, vp.Height) * v.cfg.RadiusRatio / v.cfg.CellSize))
	if n < 1 {
		n = 1
	}
	return n
}

func (v *Grid) Generate(vp Viewport, _ *rand.Rand) *Scene {
	s := NewScene(vp)
	n := v.rings(vp)
	c := v.cfg.CellSize

	for gy := -n; gy <= n; gy++ {
		for gx := -n; gx <= n; gx++ {
			k := max(abs(gx), abs(gy))
			if k == 0 {
				continue
			}
			ring := k - 1
			off := mgl64.Vec2{float64(gx) * c, float64(gy) * c}
			angle := WrapAngle(math.Atan2(off.Y(), off.X()))
			s.add(Primitive{
				Kind:    KindCell,
				Shape:   ShapeSquare,
				Ring:    ring,
				Radius:  off.Len(),
				Angle:   angle,
				Base:    s.Center.Add(off),
				Size:    c * cellFill / 2,
				Color:   SpiralIndex(ring, angle/twoPi, v.cfg.SpiralFactor, v.pal.Len()),
				Opacity: v.cfg.BaseOpacity,
				From:    -1,
				To:      -1,
			})
		}
	}
	s.indexRings(KindCell)
	for _, ids := range s.Rings {
		for i, id := range ids {
			s.Primitives[id].Index = i
		}
	}
	return s
}

func (v *Grid) Apply(s *Scene, progress float64, _ time.Duration) {
	rings := float64(len(s.Rings))
	size := v.pal.Len()
	for i := range s.Primitives {
		p := &s.Primitives[i]
		if p.Kind != KindCell {
			continue
		}
		scale := RadialScale(progress, v.cfg.Outward*(1+float64(p.Ring)/rings))
		pos := s.Center.Add(p.Base.Sub(s.Center).Mul(scale))
		rot := Spin(progress, v.cfg.Spin)
		if p.Ring%2 == 1 {
			rot = -rot
		}
		p.Display = Attrs{
			X:        pos.X(),
			Y:        pos.Y(),
			Size:     p.Size,
			Rotation: rot,
			Fill:     v.pal.At(ShiftIndex(p.Color, progress, size, v.cfg.ShiftFactor)),
			Opacity:  Opacity(Shimmer(p.Opacity, v.cfg.Shimmer, progress, float64(p.Ring))),
			Points:   RegularPolygon(pos, p.Size*math.Sqrt2, 4, rot+math.Pi/4),
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
