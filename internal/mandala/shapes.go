package mandala

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/mandala-visualization/internal/config"
	"github.com/iburimskiy/mandala-visualization/internal/palette"
)

const (
	blobStops      = 3
	blobStarPoints = 6
	spokeInner     = 0.25
	spokeOuter     = 0.95
)

// Shapes layers soft gradient blobs (stars, hexagons, circles) in rings,
// under a rotating fan of angular spokes and a Metatron's cube overlay.
type Shapes struct {
	cfg config.ShapeConfig
	pal palette.Palette
}

// NewShapes builds the variant from its config section.
func NewShapes(cfg config.ShapeConfig, pal palette.Palette) *Shapes {
	return &Shapes{cfg: cfg, pal: pal}
}

func (v *Shapes) Name() string { return config.VariantShapes }
func (v *Shapes) Mode() Mode   { return OnScroll }

func (v *Shapes) maxRadius(vp Viewport) float64 {
	return math.Min(vp.Width, vp.Height) * v.cfg.RadiusRatio
}

// Generate places PerLayer blobs on each layer ring, each pushed in or out by
// up to Jitter pixels.
func (v *Shapes) Generate(vp Viewport, rng *rand.Rand) *Scene {
	s := NewScene(vp)
	maxR := v.maxRadius(vp)
	layers := v.cfg.Layers

	for layer := 0; layer < layers; layer++ {
		layerRadius := float64(layer) / float64(layers) * maxR
		for i := 0; i < v.cfg.PerLayer; i++ {
			angle := SpokeAngle(i, v.cfg.PerLayer, layer, false)
			radius := layerRadius + rng.Float64()*2*v.cfg.Jitter - v.cfg.Jitter
			s.add(Primitive{
				Kind:    KindBlob,
				Shape:   ShapeFor(i),
				Ring:    layer,
				Index:   i,
				Radius:  radius,
				Angle:   angle,
				Base:    Polar(s.Center, radius, angle),
				Size:    float64(180+layer*40) / 2,
				Color:   palette.Wrap(i, v.pal.Len()),
				Opacity: 0.25 - float64(layer)*0.04,
				Blur:    float64(50 + layer*25),
				From:    -1,
				To:      -1,
			})
		}
	}
	s.indexRings(KindBlob)

	for i := 0; i < v.cfg.Spokes; i++ {
		s.add(Primitive{
			Kind:    KindSpoke,
			Shape:   ShapePolygon,
			Ring:    -1,
			Index:   i,
			Angle:   twoPi * float64(i) / float64(v.cfg.Spokes),
			Base:    s.Center,
			Color:   palette.Wrap(i, v.pal.Len()),
			Opacity: 0.5,
			From:    -1,
			To:      -1,
		})
	}

	s.add(Primitive{
		Kind:    KindMetatron,
		Shape:   ShapeMetatron,
		Ring:    -1,
		Base:    s.Center,
		Size:    maxR * v.cfg.MetatronRatio / 2,
		Opacity: 0.4,
		From:    -1,
		To:      -1,
	})
	return s
}

func (v *Shapes) Apply(s *Scene, progress float64, _ time.Duration) {
	maxR := v.maxRadius(s.Viewport)
	size := v.pal.Len()
	for i := range s.Primitives {
		p := &s.Primitives[i]
		switch p.Kind {
		case KindBlob:
			radius := p.Radius * RadialScale(progress, v.cfg.Outward)
			pos := Polar(s.Center, radius, p.Angle+Spin(progress, v.cfg.Sweep))
			stops := v.pal.Stops(ShiftIndex(p.Color, progress, size, v.cfg.ShiftFactor), blobStops)
			rot := 0.0
			if p.Shape != ShapeCircle {
				rot = progress * math.Pi
			}
			p.Display = Attrs{
				X:        pos.X(),
				Y:        pos.Y(),
				Size:     p.Size,
				Rotation: rot,
				Fill:     stops[0],
				Stops:    stops,
				Opacity:  Opacity(Shimmer(0.15, 0.25, progress, float64(p.Ring))),
				Blur:     p.Blur,
				Points:   v.outline(p, pos, rot),
			}
		case KindSpoke:
			p.Display = Attrs{
				X:        s.Center.X(),
				Y:        s.Center.Y(),
				Size:     maxR * spokeOuter,
				Rotation: Spin(progress, 1),
				Fill:     v.pal.At(ShiftIndex(p.Index, progress, size, v.cfg.SpokeShift)),
				Opacity:  Opacity(Shimmer(0.3, 0.3, progress, float64(p.Index))),
				Points:   RotateAbout(v.spoke(s.Center, p.Angle, maxR), s.Center, Spin(progress, 1), 1),
			}
		case KindMetatron:
			p.Display = Attrs{
				X:           p.Base.X(),
				Y:           p.Base.Y(),
				Size:        p.Size * RadialScale(progress, v.cfg.MetatronGrowth),
				Rotation:    progress * math.Pi,
				Stroke:      palette.White,
				StrokeWidth: 1,
				Opacity:     Opacity(0.3 + progress*0.3),
			}
		}
	}
}

// outline returns the polygon for star and hexagon blobs, nil for circles.
func (v *Shapes) outline(p *Primitive, center mgl64.Vec2, rot float64) []mgl64.Vec2 {
	switch p.Shape {
	case ShapeStar:
		outer := p.Size * math.Min(1, float64(100+p.Ring*20)/100)
		return Star(center, outer, outer/2, blobStarPoints, rot)
	case ShapeHexagon:
		return RegularPolygon(center, p.Size, 6, rot)
	}
	return nil
}

// spoke is the triangle from the inner point at angle out to the two outer
// corners half a spoke to either side.
func (v *Shapes) spoke(center mgl64.Vec2, angle, maxR float64) []mgl64.Vec2 {
	half := math.Pi / float64(v.cfg.Spokes)
	return []mgl64.Vec2{
		Polar(center, maxR*spokeInner, angle),
		Polar(center, maxR*spokeOuter, angle-half),
		Polar(center, maxR*spokeOuter, angle+half),
	}
}
