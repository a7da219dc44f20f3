package mandala

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/mandala-visualization/internal/config"
	"github.com/iburimskiy/mandala-visualization/internal/palette"
)

const hexCenterIndex = 6

type hexLink struct {
	from, to int
	alpha    float64
	width    float64
	dashed   bool
}

// Hexes arranges seven hexagons around a center, joined by a sacred-geometry
// line pattern that reveals itself element by element. Each hexagon turns by
// random multiples of 60° on its own timer; scroll spreads and enlarges them.
type Hexes struct {
	cfg    config.HexConfig
	pal    palette.Palette
	seq    []revealElement
	reveal Reveal
}

// NewHexes builds the variant from its config section.
func NewHexes(cfg config.HexConfig, pal palette.Palette) *Hexes {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	seq := revealSequence()
	return &Hexes{
		cfg: cfg,
		pal: pal,
		seq: seq,
		reveal: Reveal{
			Count:   len(seq),
			Start:   ms(cfg.RevealStart),
			Step:    ms(cfg.RevealStep),
			Hold:    ms(cfg.RevealHold),
			Restart: ms(cfg.RevealRestart),
			Fade:    ms(cfg.RevealFade),
		},
	}
}

func (v *Hexes) Name() string { return config.VariantHexes }
func (v *Hexes) Mode() Mode   { return Continuous }

// hexOffsets are the seven cell centers in units of (horizontal, vertical)
// spacing: top, two middle, two lower, bottom, center.
var hexOffsets = [7][2]float64{
	{0, -1},
	{-0.5, -0.5},
	{0.5, -0.5},
	{-0.5, 0.5},
	{0.5, 0.5},
	{0, 1},
	{0, 0},
}

// revealElement is one step of the pattern reveal: a node circle when node
// is non-negative, otherwise link.
type revealElement struct {
	node int
	link hexLink
}

// revealSequence lists the pattern elements in the order they appear.
func revealSequence() []revealElement {
	var order []revealElement
	seen := map[int]bool{}
	addLink := func(l hexLink) {
		order = append(order, revealElement{node: -1, link: l})
	}
	addNode := func(n int) {
		if seen[n] {
			return
		}
		seen[n] = true
		order = append(order, revealElement{node: n})
	}

	for _, n := range []int{1, 2, 3, 4} {
		addLink(hexLink{from: hexCenterIndex, to: n, alpha: 0.4, width: 1})
		addNode(n)
	}
	for _, c := range [][2]int{{1, 2}, {2, 4}, {4, 3}, {3, 1}} {
		addLink(hexLink{from: c[0], to: c[1], alpha: 0.3, width: 0.8})
	}
	for _, c := range [][2]int{{0, 1}, {0, 2}} {
		addLink(hexLink{from: c[0], to: c[1], alpha: 0.25, width: 0.8})
		addNode(c[0])
	}
	for _, c := range [][2]int{{5, 3}, {5, 4}} {
		addLink(hexLink{from: c[0], to: c[1], alpha: 0.25, width: 0.8})
	}
	for _, c := range [][2]int{{0, hexCenterIndex}, {5, hexCenterIndex}} {
		addLink(hexLink{from: c[0], to: c[1], alpha: 0.2, width: 0.6, dashed: true})
	}
	addNode(hexCenterIndex)
	for n := range hexOffsets {
		addNode(n)
	}
	return order
}

func (v *Hexes) Generate(vp Viewport, _ *rand.Rand) *Scene {
	s := NewScene(vp)
	h := v.cfg.Size * math.Sqrt(3)
	vs := v.cfg.Size * 1.5

	hexIDs := make([]int, len(hexOffsets))
	for i, off := range hexOffsets {
		base := s.Center.Add(mgl64.Vec2{off[0] * h, off[1] * vs})
		d := base.Sub(s.Center)
		hexIDs[i] = s.add(Primitive{
			Kind:    KindHex,
			Shape:   ShapeHexagon,
			Ring:    0,
			Index:   i,
			Radius:  d.Len(),
			Angle:   math.Atan2(d.Y(), d.X()),
			Base:    base,
			Size:    v.cfg.Size / 2,
			Color:   palette.Wrap(i, v.pal.Len()),
			Opacity: v.cfg.BaseOpacity,
			From:    -1,
			To:      -1,
		})
	}
	s.indexRings(KindHex)

	for order, el := range v.seq {
		if el.node >= 0 {
			s.add(Primitive{
				Kind:  KindNode,
				Shape: ShapeCircle,
				Ring:  -1,
				Index: order,
				Size:  v.cfg.NodeRadius,
				From:  hexIDs[el.node],
				To:    -1,
			})
			continue
		}
		s.add(Primitive{
			Kind:    KindLink,
			Shape:   ShapeLine,
			Ring:    -1,
			Index:   order,
			Size:    el.link.width,
			Opacity: el.link.alpha,
			From:    hexIDs[el.link.from],
			To:      hexIDs[el.link.to],
		})
	}
	return s
}

// Schedule starts one rotation timer per hexagon: a first turn after a random
// initial delay, then a turn every 1-2 s plus that delay.
func (v *Hexes) Schedule(s *Scene, t *Timers, rng *rand.Rand) {
	for i := range s.Primitives {
		p := &s.Primitives[i]
		if p.Kind != KindHex {
			continue
		}
		id := p.ID
		initial := time.Duration(rng.Float64() * float64(v.cfg.InitialDelay) * float64(time.Millisecond))
		interval := time.Duration(v.cfg.MinInterval)*time.Millisecond +
			time.Duration(rng.Float64()*float64(v.cfg.IntervalRange)*float64(time.Millisecond)) +
			initial
		turn := func() {
			hex, ok := s.Lookup(id)
			if !ok {
				return
			}
			hex.spin += v.cfg.RotationSteps[rng.Intn(len(v.cfg.RotationSteps))]
		}
		t.Every(interval, turn)
		t.After(initial, turn)
	}
}

func (v *Hexes) position(s *Scene, p *Primitive, scale float64) mgl64.Vec2 {
	return s.Center.Add(p.Base.Sub(s.Center).Mul(scale))
}

func (v *Hexes) Apply(s *Scene, progress float64, elapsed time.Duration) {
	scale := RadialScale(progress, v.cfg.Outward)
	for i := range s.Primitives {
		p := &s.Primitives[i]
		switch p.Kind {
		case KindHex:
			pos := v.position(s, p, scale)
			rot := mgl64.DegToRad(p.spin)
			c := v.pal.At(p.Color)
			p.Display = Attrs{
				X:           pos.X(),
				Y:           pos.Y(),
				Size:        p.Size * scale,
				Rotation:    rot,
				Fill:        palette.Fade(c, 0.35),
				Stroke:      c,
				StrokeWidth: 2,
				Opacity:     Opacity(p.Opacity + progress*(1-p.Opacity)),
				Points:      RegularPolygon(pos, p.Size*scale, 6, rot-math.Pi/2),
			}
		case KindNode:
			hex, ok := s.Lookup(p.From)
			if !ok {
				p.Display = Attrs{Hidden: true}
				continue
			}
			pos := v.position(s, hex, scale)
			p.Display = Attrs{
				X:           pos.X(),
				Y:           pos.Y(),
				Size:        p.Size,
				Fill:        palette.Fade(palette.White, 0.8),
				Stops:       []color.RGBA{palette.Fade(palette.White, 0.8), palette.Fade(palette.White, 0.3)},
				Stroke:      palette.Fade(palette.White, 0.6),
				StrokeWidth: 1.5,
				Opacity:     v.reveal.Opacity(elapsed, p.Index),
			}
		case KindLink:
			a, okA := s.Lookup(p.From)
			b, okB := s.Lookup(p.To)
			if !okA || !okB {
				p.Display = Attrs{Hidden: true}
				continue
			}
			from, to := v.position(s, a, scale), v.position(s, b, scale)
			p.Display = Attrs{
				X:           from.X(),
				Y:           from.Y(),
				Stroke:      palette.Fade(palette.White, p.Opacity),
				StrokeWidth: p.Size,
				Dashed:      v.seq[p.Index].link.dashed,
				Opacity:     v.reveal.Opacity(elapsed, p.Index),
				Points:      []mgl64.Vec2{from, to},
			}
		}
	}
}
