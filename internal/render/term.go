package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/mandala-visualization/internal/mandala"
)

// Terminal cells are roughly twice as tall as they are wide; the mandala is
// laid out in this many virtual pixels per cell.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Surface is the part of tcell.Screen the terminal renderer draws on.
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// TermViewport is the virtual pixel viewport covering cols x rows cells.
func TermViewport(cols, rows int) mandala.Viewport {
	return mandala.Viewport{Width: float64(cols) * CellWidth, Height: float64(rows) * CellHeight}
}

type cell struct {
	bg    [3]float64
	glyph rune
	fg    color.RGBA
}

// Term rasterizes retained primitives into character cells: large shapes
// become background color, small ones a glyph.
type Term struct {
	mandala.Store
	Background color.RGBA

	cols, rows int
	cells      []cell
}

// NewTerm returns a terminal renderer on a black background.
func NewTerm() *Term {
	return &Term{Background: color.RGBA{A: 255}}
}

// Draw paints every cell of s.
func (t *Term) Draw(s Surface) {
	cols, rows := s.Size()
	t.rasterize(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := t.cells[y*cols+x]
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(
				int32(c.bg[0]), int32(c.bg[1]), int32(c.bg[2])))
			glyph := ' '
			if c.glyph != 0 {
				glyph = c.glyph
				style = style.Foreground(tcell.NewRGBColor(int32(c.fg.R), int32(c.fg.G), int32(c.fg.B)))
			}
			s.SetContent(x, y, glyph, nil, style)
		}
	}
}

func (t *Term) rasterize(cols, rows int) {
	t.cols, t.rows = cols, rows
	if n := cols * rows; cap(t.cells) < n {
		t.cells = make([]cell, n)
	} else {
		t.cells = t.cells[:n]
	}
	bg := [3]float64{float64(t.Background.R), float64(t.Background.G), float64(t.Background.B)}
	for i := range t.cells {
		t.cells[i] = cell{bg: bg}
	}

	t.Each(func(_ int, a mandala.Attrs) {
		if a.Opacity <= 0 {
			return
		}
		if a.Link != nil {
			t.line(a.Link.From, a.Link.To, a.Link.Color, false)
		}
		t.primitive(a)
	})
}

func (t *Term) primitive(a mandala.Attrs) {
	center := mgl64.Vec2{a.X, a.Y}
	switch a.Shape {
	case mandala.ShapeLine:
		if len(a.Points) == 2 && alpha(a.Stroke, a.Opacity) > 0 {
			t.line(a.Points[0], a.Points[1], a.Stroke, a.Dashed)
		}
	case mandala.ShapeRing:
		t.outline(center, a.Size, a.Stroke, a.Opacity)
	case mandala.ShapeMetatron:
		for _, c := range mandala.Metatron(center, a.Size, a.Rotation) {
			t.outline(c, a.Size/4, a.Stroke, a.Opacity)
		}
	case mandala.ShapeCircle:
		if a.Size < CellWidth {
			t.glyph(center, '•', paint(a), a.Opacity)
			return
		}
		t.disc(center, a)
	default:
		if len(a.Points) < 3 || a.Size < CellWidth {
			t.glyph(center, glyphFor(a.Shape), paint(a), a.Opacity)
			return
		}
		t.polygon(a)
	}
}

// paint is the color a primitive shows: its fill, its first gradient stop,
// or its stroke when unfilled.
func paint(a mandala.Attrs) color.RGBA {
	switch {
	case len(a.Stops) > 0:
		return a.Stops[0]
	case a.Fill.A > 0:
		return a.Fill
	}
	return a.Stroke
}

func glyphFor(s mandala.Shape) rune {
	switch s {
	case mandala.ShapeHexagon:
		return '⬢'
	case mandala.ShapeStar:
		return '*'
	case mandala.ShapeSquare:
		return '■'
	}
	return '◆'
}

func alpha(c color.RGBA, opacity float64) float64 {
	return float64(c.A) / 255 * opacity
}

func (t *Term) at(p mgl64.Vec2) (int, bool) {
	x := int(math.Floor(p.X() / CellWidth))
	y := int(math.Floor(p.Y() / CellHeight))
	if x < 0 || y < 0 || x >= t.cols || y >= t.rows {
		return 0, false
	}
	return y*t.cols + x, true
}

func (t *Term) blend(i int, c color.RGBA, a float64) {
	if a <= 0 {
		return
	}
	if a > 1 {
		a = 1
	}
	bg := &t.cells[i].bg
	bg[0] = bg[0]*(1-a) + float64(c.R)*a
	bg[1] = bg[1]*(1-a) + float64(c.G)*a
	bg[2] = bg[2]*(1-a) + float64(c.B)*a
}

func (t *Term) glyph(p mgl64.Vec2, r rune, c color.RGBA, opacity float64) {
	if alpha(c, opacity) <= 0 {
		return
	}
	if i, ok := t.at(p); ok {
		t.cells[i].glyph = r
		t.cells[i].fg = c
	}
}

// cellCenter is the virtual pixel at the middle of cell i.
func (t *Term) cellCenter(i int) mgl64.Vec2 {
	x, y := i%t.cols, i/t.cols
	return mgl64.Vec2{(float64(x) + 0.5) * CellWidth, (float64(y) + 0.5) * CellHeight}
}

// span visits the cells overlapping the box [lo, hi].
func (t *Term) span(lo, hi mgl64.Vec2, fn func(i int, p mgl64.Vec2)) {
	x0 := int(math.Max(0, math.Floor(lo.X()/CellWidth)))
	y0 := int(math.Max(0, math.Floor(lo.Y()/CellHeight)))
	x1 := int(math.Min(float64(t.cols-1), math.Floor(hi.X()/CellWidth)))
	y1 := int(math.Min(float64(t.rows-1), math.Floor(hi.Y()/CellHeight)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			i := y*t.cols + x
			fn(i, t.cellCenter(i))
		}
	}
}

func (t *Term) disc(center mgl64.Vec2, a mandala.Attrs) {
	r := a.Size
	ext := mgl64.Vec2{r, r}
	t.span(center.Sub(ext), center.Add(ext), func(i int, p mgl64.Vec2) {
		d := p.Sub(center).Len()
		if d > r {
			return
		}
		c := a.Fill
		if n := len(a.Stops); n > 0 {
			c = a.Stops[min(n-1, int(d/r*float64(n)))]
		}
		t.blend(i, c, alpha(c, a.Opacity))
	})
	if a.StrokeWidth > 0 {
		t.outline(center, r, a.Stroke, a.Opacity)
	}
}

func (t *Term) polygon(a mandala.Attrs) {
	lo, hi := a.Points[0], a.Points[0]
	for _, p := range a.Points[1:] {
		lo = mgl64.Vec2{math.Min(lo.X(), p.X()), math.Min(lo.Y(), p.Y())}
		hi = mgl64.Vec2{math.Max(hi.X(), p.X()), math.Max(hi.Y(), p.Y())}
	}
	c := paint(a)
	t.span(lo, hi, func(i int, p mgl64.Vec2) {
		if inside(a.Points, p) {
			t.blend(i, c, alpha(c, a.Opacity))
		}
	})
}

// inside is the even-odd ray cast test.
func inside(poly []mgl64.Vec2, p mgl64.Vec2) bool {
	in := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y() > p.Y()) != (b.Y() > p.Y()) &&
			p.X() < (b.X()-a.X())*(p.Y()-a.Y())/(b.Y()-a.Y())+a.X() {
			in = !in
		}
		j = i
	}
	return in
}

func (t *Term) outline(center mgl64.Vec2, r float64, c color.RGBA, opacity float64) {
	if r <= 0 || alpha(c, opacity) <= 0 {
		return
	}
	steps := max(12, int(2*math.Pi*r/CellWidth))
	for k := 0; k < steps; k++ {
		t.glyph(mandala.Polar(center, r, 2*math.Pi*float64(k)/float64(steps)), '·', c, opacity)
	}
}

func (t *Term) line(from, to mgl64.Vec2, c color.RGBA, dashed bool) {
	if c.A == 0 {
		return
	}
	d := to.Sub(from)
	steps := max(1, int(math.Max(math.Abs(d.X())/CellWidth, math.Abs(d.Y())/CellHeight)))
	for k := 0; k <= steps; k++ {
		if dashed && k%2 == 1 {
			continue
		}
		t.glyph(from.Add(d.Mul(float64(k)/float64(steps))), '·', c, 1)
	}
}
