// Package mandala generates radial primitive layouts and maps scroll progress
// and elapsed time onto their display state. Drawing is left to a Renderer.
package mandala

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape tells a renderer how to draw a primitive.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeRing
	ShapeHexagon
	ShapeStar
	ShapePolygon
	ShapeLine
	ShapeSquare
	ShapeMetatron
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeRing:
		return "ring"
	case ShapeHexagon:
		return "hexagon"
	case ShapeStar:
		return "star"
	case ShapePolygon:
		return "polygon"
	case ShapeLine:
		return "line"
	case ShapeSquare:
		return "square"
	case ShapeMetatron:
		return "metatron"
	}
	return "unknown"
}

// Kind is the role a primitive plays inside its variant.
type Kind int

const (
	KindDiamond Kind = iota
	KindCore
	KindParticle
	KindCoreRing
	KindCoreHex
	KindBlob
	KindSpoke
	KindMetatron
	KindHex
	KindNode
	KindLink
	KindCell
)

// Viewport is the host surface size in pixels.
type Viewport struct {
	Width, Height float64
}

// Center returns the middle of the viewport.
func (v Viewport) Center() mgl64.Vec2 {
	return mgl64.Vec2{v.Width / 2, v.Height / 2}
}

// Segment is a connective line drawn alongside a primitive.
type Segment struct {
	From, To mgl64.Vec2
	Color    color.RGBA
	Width    float64
}

// Attrs is the display state handed to a Renderer. Colors are straight alpha;
// Opacity multiplies every alpha at draw time.
type Attrs struct {
	Shape       Shape
	X, Y        float64
	Size        float64 // radius or half extent after scaling
	Rotation    float64 // radians
	Fill        color.RGBA
	Stops       []color.RGBA // radial gradient, center outward
	Stroke      color.RGBA
	StrokeWidth float64
	Opacity     float64
	Blur        float64
	Dashed      bool
	Points      []mgl64.Vec2 // absolute vertices for polygons and lines
	Link        *Segment
	Hidden      bool
}

// Primitive is one drawable unit. Everything except Display and the spin
// accumulator is fixed once the layout is generated.
type Primitive struct {
	ID      int
	Kind    Kind
	Shape   Shape
	Ring    int // -1 for primitives outside the ring structure
	Index   int
	Radius  float64 // polar distance from the scene center
	Angle   float64
	Base    mgl64.Vec2 // absolute base position
	Size    float64
	Extent  float64 // secondary half extent (diamond tangential axis)
	Color   int
	Speed   float64
	Opacity float64
	Blur    float64
	From    int // link endpoints or owning primitive, -1 when unused
	To      int

	Display Attrs

	spin float64
}

// Spin returns the autonomous rotation accumulated so far.
func (p *Primitive) Spin() float64 { return p.spin }

// Group is the display transform shared by a ring of primitives.
type Group struct {
	Ring     int
	Rotation float64
	Scale    float64
}

// Scene is one layout generation: the primitives plus the adjacency built
// alongside them.
type Scene struct {
	Viewport   Viewport
	Center     mgl64.Vec2
	Primitives []Primitive
	Rings      [][]int // ring -> primitive ids ordered by angle
	Groups     []Group
}

// NewScene returns an empty scene for vp.
func NewScene(vp Viewport) *Scene {
	return &Scene{Viewport: vp, Center: vp.Center()}
}

func (s *Scene) add(p Primitive) int {
	p.ID = len(s.Primitives)
	s.Primitives = append(s.Primitives, p)
	return p.ID
}

// Lookup returns the primitive with id, or false when it does not exist.
func (s *Scene) Lookup(id int) (*Primitive, bool) {
	if id < 0 || id >= len(s.Primitives) {
		return nil, false
	}
	return &s.Primitives[id], true
}

// Ring returns the ids in ring r, or nil when r is out of range.
func (s *Scene) Ring(r int) []int {
	if r < 0 || r >= len(s.Rings) {
		return nil
	}
	return s.Rings[r]
}

// Count returns the number of primitives of kind k.
func (s *Scene) Count(k Kind) int {
	n := 0
	for i := range s.Primitives {
		if s.Primitives[i].Kind == k {
			n++
		}
	}
	return n
}

// indexRings builds Rings from every primitive of kind k, each ring ordered
// by base angle.
func (s *Scene) indexRings(k Kind) {
	maxRing := -1
	for i := range s.Primitives {
		if p := &s.Primitives[i]; p.Kind == k && p.Ring > maxRing {
			maxRing = p.Ring
		}
	}
	s.Rings = make([][]int, maxRing+1)
	for i := range s.Primitives {
		p := &s.Primitives[i]
		if p.Kind == k && p.Ring >= 0 {
			s.Rings[p.Ring] = append(s.Rings[p.Ring], p.ID)
		}
	}
	for _, ids := range s.Rings {
		sort.SliceStable(ids, func(a, b int) bool {
			return WrapAngle(s.Primitives[ids[a]].Angle) < WrapAngle(s.Primitives[ids[b]].Angle)
		})
	}
}
