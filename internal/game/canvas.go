package game

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/mandala-visualization/internal/mandala"
)

const (
	dashLength = 5.0
	haloLayers = 3
)

// Canvas paints retained primitives onto an ebiten image each frame.
type Canvas struct {
	mandala.Store

	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewCanvas returns an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

// Draw paints every visible primitive in creation order.
func (c *Canvas) Draw(dst *ebiten.Image) {
	c.Each(func(_ int, a mandala.Attrs) {
		if a.Opacity <= 0 {
			return
		}
		if l := a.Link; l != nil {
			vector.StrokeLine(dst, float32(l.From.X()), float32(l.From.Y()), float32(l.To.X()), float32(l.To.Y()),
				float32(l.Width), straight(l.Color, a.Opacity), true)
		}
		c.primitive(dst, a)
	})
}

func (c *Canvas) primitive(dst *ebiten.Image, a mandala.Attrs) {
	center := mgl64.Vec2{a.X, a.Y}
	switch a.Shape {
	case mandala.ShapeLine:
		if len(a.Points) == 2 {
			line(dst, a.Points[0], a.Points[1], a.StrokeWidth, straight(a.Stroke, a.Opacity), a.Dashed)
		}
	case mandala.ShapeRing:
		vector.StrokeCircle(dst, float32(a.X), float32(a.Y), float32(a.Size), float32(a.StrokeWidth),
			straight(a.Stroke, a.Opacity), true)
	case mandala.ShapeMetatron:
		metatron(dst, center, a)
	case mandala.ShapeCircle:
		c.halo(dst, a, nil)
		c.disc(dst, a)
	default:
		if len(a.Points) < 3 {
			c.halo(dst, a, nil)
			c.disc(dst, a)
			return
		}
		c.halo(dst, a, a.Points)
		c.polygon(dst, a)
	}
}

// disc fills a circle; gradients are stacked discs from the outer stop in.
func (c *Canvas) disc(dst *ebiten.Image, a mandala.Attrs) {
	if n := len(a.Stops); n > 1 {
		for i := n - 1; i >= 0; i-- {
			r := a.Size * float64(i+1) / float64(n)
			vector.DrawFilledCircle(dst, float32(a.X), float32(a.Y), float32(r), straight(a.Stops[i], a.Opacity), true)
		}
	} else if a.Fill.A > 0 {
		vector.DrawFilledCircle(dst, float32(a.X), float32(a.Y), float32(a.Size), straight(a.Fill, a.Opacity), true)
	}
	if a.StrokeWidth > 0 && a.Stroke.A > 0 {
		vector.StrokeCircle(dst, float32(a.X), float32(a.Y), float32(a.Size), float32(a.StrokeWidth),
			straight(a.Stroke, a.Opacity), true)
	}
}

func (c *Canvas) polygon(dst *ebiten.Image, a mandala.Attrs) {
	center := mgl64.Vec2{a.X, a.Y}
	if n := len(a.Stops); n > 1 {
		for i := n - 1; i >= 0; i-- {
			c.fan(dst, center, a.Points, float64(i+1)/float64(n), a.Stops[i], a.Opacity)
		}
	} else if a.Fill.A > 0 {
		c.fan(dst, center, a.Points, 1, a.Fill, a.Opacity)
	}
	if a.StrokeWidth > 0 && a.Stroke.A > 0 {
		clr := straight(a.Stroke, a.Opacity)
		for i, p := range a.Points {
			q := a.Points[(i+1)%len(a.Points)]
			line(dst, p, q, a.StrokeWidth, clr, a.Dashed)
		}
	}
}

// halo approximates a blur with a few faint enlarged copies of the shape.
func (c *Canvas) halo(dst *ebiten.Image, a mandala.Attrs, pts []mgl64.Vec2) {
	if a.Blur <= 0 || a.Size <= 0 {
		return
	}
	clr := a.Fill
	if len(a.Stops) > 0 {
		clr = a.Stops[0]
	}
	center := mgl64.Vec2{a.X, a.Y}
	for k := haloLayers; k >= 1; k-- {
		grow := a.Blur * float64(k) / haloLayers
		opacity := a.Opacity / (2 * haloLayers)
		if pts == nil {
			vector.DrawFilledCircle(dst, float32(a.X), float32(a.Y), float32(a.Size+grow), straight(clr, opacity), true)
			continue
		}
		c.fan(dst, center, pts, (a.Size+grow)/a.Size, clr, opacity)
	}
}

// fan fills pts, scaled by scale about center, as a triangle fan from center.
// Every mandala polygon is star-shaped about its center.
func (c *Canvas) fan(dst *ebiten.Image, center mgl64.Vec2, pts []mgl64.Vec2, scale float64, clr color.RGBA, opacity float64) {
	if c.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		c.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	r, g, b := float32(clr.R)/0xff, float32(clr.G)/0xff, float32(clr.B)/0xff
	alpha := float32(float64(clr.A) / 0xff * clamp01(opacity))
	vertex := func(p mgl64.Vec2) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(p.X()), DstY: float32(p.Y()),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: alpha,
		}
	}

	c.vertices = append(c.vertices[:0], vertex(center))
	c.indices = c.indices[:0]
	for i, p := range pts {
		c.vertices = append(c.vertices, vertex(center.Add(p.Sub(center).Mul(scale))))
		next := (i+1)%len(pts) + 1
		c.indices = append(c.indices, 0, uint16(i+1), uint16(next))
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(c.vertices, c.indices, c.white, op)
}

func metatron(dst *ebiten.Image, center mgl64.Vec2, a mandala.Attrs) {
	clr := straight(a.Stroke, a.Opacity)
	centers := mandala.Metatron(center, a.Size, a.Rotation)
	for _, p := range centers {
		vector.StrokeCircle(dst, float32(p.X()), float32(p.Y()), float32(a.Size/4), float32(a.StrokeWidth), clr, true)
	}
	for i := range centers {
		for j := i + 1; j < len(centers); j++ {
			line(dst, centers[i], centers[j], a.StrokeWidth, clr, false)
		}
	}
}

func line(dst *ebiten.Image, from, to mgl64.Vec2, width float64, clr color.Color, dashed bool) {
	if width <= 0 {
		width = 1
	}
	if !dashed {
		vector.StrokeLine(dst, float32(from.X()), float32(from.Y()), float32(to.X()), float32(to.Y()), float32(width), clr, true)
		return
	}
	d := to.Sub(from)
	length := d.Len()
	if length == 0 {
		return
	}
	step := d.Mul(1 / length)
	for s := 0.0; s < length; s += 2 * dashLength {
		a := from.Add(step.Mul(s))
		b := from.Add(step.Mul(math.Min(s+dashLength, length)))
		vector.StrokeLine(dst, float32(a.X()), float32(a.Y()), float32(b.X()), float32(b.Y()), float32(width), clr, true)
	}
}

// straight converts a straight-alpha color and opacity to what ebiten expects.
func straight(c color.RGBA, opacity float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A)*clamp01(opacity) + 0.5)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
