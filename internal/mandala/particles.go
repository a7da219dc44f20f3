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
	particleFrameRate = 60.0
	coreRingCount     = 5
	coreRingStep      = 15.0
)

// Particles is the canvas particle-ring mandala. Every ring spins on its own,
// alternating direction, so it runs continuously; scroll pushes outer rings
// further out. Each particle is tied to the nearest particle of the ring
// inside it by a faint line.
type Particles struct {
	cfg config.ParticleConfig
	pal palette.Palette
}

// NewParticles builds the variant from its config section.
func NewParticles(cfg config.ParticleConfig, pal palette.Palette) *Particles {
	return &Particles{cfg: cfg, pal: pal}
}

func (v *Particles) Name() string { return config.VariantParticles }
func (v *Particles) Mode() Mode   { return Continuous }

func (v *Particles) Generate(vp Viewport, _ *rand.Rand) *Scene {
	s := NewScene(vp)
	rings := v.cfg.Rings
	maxR := math.Min(vp.Width, vp.Height) * v.cfg.RadiusRatio
	count := StepCount(v.cfg.BaseCount, v.cfg.CountStep)

	for ring := 0; ring < rings; ring++ {
		radius := RingRadius(ring, rings, maxR/float64(rings), maxR)
		n := count(ring, rings, radius)
		dir := 1.0
		if ring%2 == 1 {
			dir = -1
		}
		speed := dir * (v.cfg.SpinBase + float64(ring)*v.cfg.SpinStep)
		for i := 0; i < n; i++ {
			angle := SpokeAngle(i, n, ring, false)
			s.add(Primitive{
				Kind:    KindParticle,
				Shape:   ShapeCircle,
				Ring:    ring,
				Index:   i,
				Radius:  radius,
				Angle:   angle,
				Base:    Polar(s.Center, radius, angle),
				Size:    float64(3 + ring%3),
				Color:   palette.Wrap(ring, v.pal.Len()),
				Speed:   speed,
				Opacity: 1,
				From:    -1,
				To:      -1,
			})
		}
	}
	s.indexRings(KindParticle)

	for i := 0; i < coreRingCount; i++ {
		s.add(Primitive{
			Kind:    KindCoreRing,
			Shape:   ShapeRing,
			Ring:    -1,
			Index:   i,
			Base:    s.Center,
			Opacity: 1,
			From:    -1,
			To:      -1,
		})
	}
	s.add(Primitive{
		Kind:    KindCoreHex,
		Shape:   ShapePolygon,
		Ring:    -1,
		Base:    s.Center,
		Opacity: 1,
		From:    -1,
		To:      -1,
	})
	return s
}

// Advance accumulates each particle's spin; speeds are in SpinRate units per
// 60 Hz frame so the motion is frame-rate independent.
func (v *Particles) Advance(s *Scene, dt time.Duration) {
	frames := dt.Seconds() * particleFrameRate
	for i := range s.Primitives {
		p := &s.Primitives[i]
		if p.Kind == KindParticle {
			p.spin += p.Speed * v.cfg.SpinRate * frames
		}
	}
}

func (v *Particles) scale(ring int, progress float64) float64 {
	return RadialScale(progress, v.cfg.Outward*float64(ring)/float64(v.cfg.Rings))
}

func (v *Particles) position(s *Scene, p *Primitive, progress float64) mgl64.Vec2 {
	return Polar(s.Center, p.Radius*v.scale(p.Ring, progress), p.Angle+p.spin)
}

func (v *Particles) Apply(s *Scene, progress float64, _ time.Duration) {
	core := v.cfg.CoreRadius + progress*v.cfg.CoreGrowth
	for i := range s.Primitives {
		p := &s.Primitives[i]
		switch p.Kind {
		case KindParticle:
			pos := v.position(s, p, progress)
			fill := v.pal.At(p.Color)
			p.Display = Attrs{
				X:       pos.X(),
				Y:       pos.Y(),
				Size:    p.Size * v.scale(p.Ring, progress),
				Fill:    fill,
				Opacity: p.Opacity,
			}
			if n, ok := v.neighbor(s, p); ok {
				p.Display.Link = &Segment{
					From:  v.position(s, n, progress),
					To:    pos,
					Color: palette.Fade(fill, v.cfg.LinkAlpha),
					Width: 1,
				}
			}
		case KindCoreRing:
			p.Display = Attrs{
				X:           p.Base.X(),
				Y:           p.Base.Y(),
				Size:        math.Max(0, core-float64(p.Index)*coreRingStep),
				Stroke:      palette.HSL(float64(p.Index)*60, 0.7, 0.6),
				StrokeWidth: 2,
				Opacity:     1,
			}
		case KindCoreHex:
			p.Display = Attrs{
				X:           p.Base.X(),
				Y:           p.Base.Y(),
				Size:        core,
				Stroke:      palette.White,
				StrokeWidth: 1.5,
				Opacity:     1,
				Points:      RegularPolygon(p.Base, core, 6, 0),
			}
		}
	}
}

// neighbor finds the particle in the previous ring closest in current angle.
// Rings spin as a whole, so removing the previous ring's spin turns the
// lookup into a slot index. It reports false on ring 0 or when the nearest
// particle is outside the link tolerance.
func (v *Particles) neighbor(s *Scene, p *Primitive) (*Primitive, bool) {
	prev := s.Ring(p.Ring - 1)
	if len(prev) == 0 {
		return nil, false
	}
	first, ok := s.Lookup(prev[0])
	if !ok {
		return nil, false
	}
	angle := p.Angle + p.spin
	step := twoPi / float64(len(prev))
	rel := WrapAngle(angle - first.spin - first.Angle)
	slot := palette.Wrap(int(math.Round(rel/step)), len(prev))
	n, ok := s.Lookup(prev[slot])
	if !ok {
		return nil, false
	}
	if math.Abs(AngleDiff(angle, n.Angle+n.spin)) >= v.cfg.LinkTolerance {
		return nil, false
	}
	return n, true
}
