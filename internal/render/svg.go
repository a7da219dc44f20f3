// Package render holds the retained renderers that do not need a window: an
// SVG snapshot writer and a character-cell terminal rasterizer.
package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/mandala-visualization/internal/mandala"
)

// SVG records primitives and writes them as one SVG document.
type SVG struct {
	mandala.Store
	Background color.RGBA
	Title      string
}

// NewSVG returns an SVG renderer with a black background.
func NewSVG(title string) *SVG {
	return &SVG{Background: color.RGBA{A: 255}, Title: title}
}

// Encode writes the visible primitives, in creation order, as an SVG of vp's
// size.
func (r *SVG) Encode(w io.Writer, vp mandala.Viewport) error {
	cw := &errWriter{w: w}
	canvas := svg.New(cw)
	canvas.Start(int(math.Round(vp.Width)), int(math.Round(vp.Height)))
	if r.Title != "" {
		canvas.Title(r.Title)
	}
	canvas.Rect(0, 0, int(math.Round(vp.Width)), int(math.Round(vp.Height)), fill(r.Background, 1))

	r.defs(canvas)
	r.Each(func(id int, a mandala.Attrs) {
		if a.Opacity <= 0 {
			return
		}
		if a.Link != nil {
			canvas.Line(ipt(a.Link.From.X()), ipt(a.Link.From.Y()), ipt(a.Link.To.X()), ipt(a.Link.To.Y()),
				stroke(a.Link.Color, a.Opacity, a.Link.Width, false))
		}
		r.primitive(canvas, id, a)
	})
	canvas.End()
	return cw.err
}

// defs declares one radial gradient per gradient primitive and one blur
// filter per distinct blur radius.
func (r *SVG) defs(canvas *svg.SVG) {
	blurs := map[int]bool{}
	opened := false
	open := func() {
		if !opened {
			canvas.Def()
			opened = true
		}
	}
	r.Each(func(id int, a mandala.Attrs) {
		if len(a.Stops) > 1 {
			open()
			stops := make([]svg.Offcolor, len(a.Stops))
			for i, c := range a.Stops {
				stops[i] = svg.Offcolor{
					Offset:  uint8(100 * i / (len(a.Stops) - 1)),
					Color:   rgb(c),
					Opacity: float64(c.A) / 255,
				}
			}
			canvas.RadialGradient(gradientID(id), 50, 50, 50, 50, 50, stops)
		}
		if b := int(math.Round(a.Blur)); b > 0 && !blurs[b] {
			open()
			blurs[b] = true
			canvas.Filter(blurID(b))
			canvas.FeGaussianBlur(svg.Filterspec{In: "SourceGraphic"}, a.Blur/4, a.Blur/4)
			canvas.Fend()
		}
	})
	if opened {
		canvas.DefEnd()
	}
}

func (r *SVG) primitive(canvas *svg.SVG, id int, a mandala.Attrs) {
	style := r.style(id, a)
	x, y := ipt(a.X), ipt(a.Y)
	switch a.Shape {
	case mandala.ShapeLine:
		if len(a.Points) == 2 {
			canvas.Line(ipt(a.Points[0].X()), ipt(a.Points[0].Y()), ipt(a.Points[1].X()), ipt(a.Points[1].Y()),
				stroke(a.Stroke, a.Opacity, a.StrokeWidth, a.Dashed))
		}
	case mandala.ShapeRing:
		canvas.Circle(x, y, ipt(a.Size), "fill:none;"+stroke(a.Stroke, a.Opacity, a.StrokeWidth, false))
	case mandala.ShapeMetatron:
		r.metatron(canvas, a)
	case mandala.ShapeCircle:
		canvas.Circle(x, y, ipt(a.Size), style)
	default:
		if len(a.Points) < 3 {
			canvas.Circle(x, y, ipt(a.Size), style)
			return
		}
		xs, ys := coords(a.Points)
		canvas.Polygon(xs, ys, style)
	}
}

func (r *SVG) metatron(canvas *svg.SVG, a mandala.Attrs) {
	centers := mandala.Metatron(mgl64.Vec2{a.X, a.Y}, a.Size, a.Rotation)
	s := stroke(a.Stroke, a.Opacity, a.StrokeWidth, false)
	canvas.Gstyle("fill:none;" + s)
	for _, c := range centers {
		canvas.Circle(ipt(c.X()), ipt(c.Y()), ipt(a.Size/4))
	}
	for i := range centers {
		for j := i + 1; j < len(centers); j++ {
			canvas.Line(ipt(centers[i].X()), ipt(centers[i].Y()), ipt(centers[j].X()), ipt(centers[j].Y()))
		}
	}
	canvas.Gend()
}

func (r *SVG) style(id int, a mandala.Attrs) string {
	var s string
	switch {
	case len(a.Stops) > 1:
		s = fmt.Sprintf("fill:url(#%s);fill-opacity:%.3f", gradientID(id), a.Opacity)
	case a.Fill.A > 0:
		s = fill(a.Fill, a.Opacity)
	default:
		s = "fill:none"
	}
	if a.StrokeWidth > 0 && a.Stroke.A > 0 {
		s += ";" + stroke(a.Stroke, a.Opacity, a.StrokeWidth, a.Dashed)
	}
	if b := int(math.Round(a.Blur)); b > 0 {
		s += fmt.Sprintf(";filter:url(#%s)", blurID(b))
	}
	return s
}

func gradientID(id int) string { return fmt.Sprintf("g%d", id) }
func blurID(b int) string      { return fmt.Sprintf("blur%d", b) }

func rgb(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func fill(c color.RGBA, opacity float64) string {
	return fmt.Sprintf("fill:%s;fill-opacity:%.3f", rgb(c), float64(c.A)/255*opacity)
}

func stroke(c color.RGBA, opacity, width float64, dashed bool) string {
	s := fmt.Sprintf("stroke:%s;stroke-opacity:%.3f;stroke-width:%.2f", rgb(c), float64(c.A)/255*opacity, width)
	if dashed {
		s += ";stroke-dasharray:5,5"
	}
	return s
}

func ipt(v float64) int { return int(math.Round(v)) }

func coords(pts []mgl64.Vec2) ([]int, []int) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = ipt(p.X()), ipt(p.Y())
	}
	return xs, ys
}

// errWriter keeps the first write error; svgo itself ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err == nil {
		_, e.err = e.w.Write(p)
	}
	return len(p), nil
}
