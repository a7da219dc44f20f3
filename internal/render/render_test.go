package render

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/mandala-visualization/internal/config"
	"github.com/iburimskiy/mandala-visualization/internal/mandala"
)

var red = color.RGBA{R: 255, A: 255}

func TestSVGEncode(t *testing.T) {
	r := NewSVG("test")
	r.CreatePrimitive(0, mandala.ShapeCircle)
	r.UpdatePrimitive(0, mandala.Attrs{X: 50, Y: 50, Size: 10, Fill: red, Opacity: 1})
	r.CreatePrimitive(1, mandala.ShapePolygon)
	r.UpdatePrimitive(1, mandala.Attrs{
		Fill:    red,
		Opacity: 0.5,
		Points:  []mgl64.Vec2{{0, 0}, {10, 0}, {10, 10}},
		Blur:    20,
	})
	r.CreatePrimitive(2, mandala.ShapeCircle)
	r.UpdatePrimitive(2, mandala.Attrs{X: 1, Y: 1, Size: 5, Stops: []color.RGBA{red, red, red}, Opacity: 1})
	r.CreatePrimitive(3, mandala.ShapeLine)
	r.UpdatePrimitive(3, mandala.Attrs{Stroke: red, StrokeWidth: 1, Dashed: true, Opacity: 1,
		Points: []mgl64.Vec2{{0, 0}, {5, 5}}})
	r.CreatePrimitive(4, mandala.ShapeCircle)

	var buf bytes.Buffer
	if err := r.Encode(&buf, mandala.Viewport{Width: 100, Height: 80}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`width="100"`,
		"<polygon",
		"fill:url(#g2)",
		"filter:url(#blur20)",
		"stroke-dasharray",
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if n := strings.Count(out, "<circle"); n != 2 {
		t.Errorf("%d circles written, want 2 (hidden primitive skipped)", n)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSVGEncodeError(t *testing.T) {
	if err := NewSVG("").Encode(failingWriter{}, mandala.Viewport{Width: 1, Height: 1}); err == nil {
		t.Error("write error was swallowed")
	}
}

func TestSVGEveryVariant(t *testing.T) {
	cfg := config.Default()
	for _, name := range config.Variants {
		t.Run(name, func(t *testing.T) {
			v, err := mandala.New(name, &cfg)
			if err != nil {
				t.Fatal(err)
			}
			r := NewSVG(name)
			c := mandala.NewController(v, r, 1)
			vp := mandala.Viewport{Width: 400, Height: 300}
			c.Init(vp)
			c.Scroll(150)
			c.Frame(5 * time.Second)

			var buf bytes.Buffer
			if err := r.Encode(&buf, vp); err != nil {
				t.Fatal(err)
			}
			if !strings.HasSuffix(strings.TrimSpace(buf.String()), "</svg>") {
				t.Error("document not terminated")
			}
		})
	}
}

type fakeSurface struct {
	cols, rows int
	cells      map[[2]int]rune
	styles     map[[2]int]tcell.Style
}

func newFakeSurface(cols, rows int) *fakeSurface {
	return &fakeSurface{cols: cols, rows: rows, cells: map[[2]int]rune{}, styles: map[[2]int]tcell.Style{}}
}

func (f *fakeSurface) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	f.cells[[2]int{x, y}] = primary
	f.styles[[2]int{x, y}] = style
}

func (f *fakeSurface) Size() (int, int) { return f.cols, f.rows }

func TestTermDraw(t *testing.T) {
	term := NewTerm()
	term.CreatePrimitive(0, mandala.ShapeCircle)
	term.UpdatePrimitive(0, mandala.Attrs{X: 40, Y: 80, Size: 40, Fill: red, Opacity: 1})
	term.CreatePrimitive(1, mandala.ShapeCircle)
	term.UpdatePrimitive(1, mandala.Attrs{X: 4, Y: 8, Size: 2, Fill: red, Opacity: 1})

	s := newFakeSurface(10, 10)
	term.Draw(s)
	if len(s.cells) != 100 {
		t.Fatalf("Draw set %d cells, want 100", len(s.cells))
	}
	if s.cells[[2]int{0, 0}] != '•' {
		t.Errorf("small circle drawn as %q", s.cells[[2]int{0, 0}])
	}

	// Cell (5,5) is covered by the large disc.
	center := term.cells[5*10+5]
	if center.bg != [3]float64{255, 0, 0} {
		t.Errorf("disc cell background = %v", center.bg)
	}
	corner := term.cells[9*10+9]
	if corner.bg != [3]float64{0, 0, 0} {
		t.Errorf("uncovered cell background = %v", corner.bg)
	}
}

func TestTermBlendsOpacity(t *testing.T) {
	term := NewTerm()
	term.CreatePrimitive(0, mandala.ShapeSquare)
	term.UpdatePrimitive(0, mandala.Attrs{
		X: 40, Y: 80, Size: 40, Fill: red, Opacity: 0.5,
		Points: []mgl64.Vec2{{0, 0}, {80, 0}, {80, 160}, {0, 160}},
	})
	term.Draw(newFakeSurface(10, 10))
	if got := term.cells[0].bg; got != [3]float64{127.5, 0, 0} {
		t.Errorf("half-opaque square over black = %v", got)
	}
}

func TestInside(t *testing.T) {
	square := []mgl64.Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if !inside(square, mgl64.Vec2{5, 5}) || inside(square, mgl64.Vec2{15, 5}) {
		t.Error("point-in-polygon test is wrong")
	}
}

func TestTermViewport(t *testing.T) {
	vp := TermViewport(80, 24)
	if vp.Width != 640 || vp.Height != 384 {
		t.Errorf("TermViewport = %+v", vp)
	}
}
