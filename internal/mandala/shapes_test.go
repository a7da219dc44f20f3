package mandala

import (
	"math"
	"math/rand"
	"testing"

	"github.com/iburimskiy/mandala-visualization/internal/config"
	"github.com/iburimskiy/mandala-visualization/internal/palette"
)

func newShapes(t *testing.T) *Shapes {
	t.Helper()
	cfg := config.Default().Shapes
	pal, err := palette.Parse(cfg.Palette)
	if err != nil {
		t.Fatal(err)
	}
	return NewShapes(cfg, pal)
}

func TestShapesLayout(t *testing.T) {
	v := newShapes(t)
	s := v.Generate(testViewport, rand.New(rand.NewSource(9)))

	if s.Count(KindBlob) != 50 || s.Count(KindSpoke) != 16 || s.Count(KindMetatron) != 1 {
		t.Fatalf("counts = %d blobs, %d spokes, %d metatron",
			s.Count(KindBlob), s.Count(KindSpoke), s.Count(KindMetatron))
	}
	maxR := 800 * 0.6
	for _, p := range s.Primitives {
		if p.Kind != KindBlob {
			continue
		}
		layerRadius := float64(p.Ring) / 5 * maxR
		if math.Abs(p.Radius-layerRadius) > 40 {
			t.Errorf("blob %d jittered %v off its layer", p.ID, p.Radius-layerRadius)
		}
		if p.Shape != ShapeFor(p.Index) {
			t.Errorf("blob %d shape %v, want %v", p.ID, p.Shape, ShapeFor(p.Index))
		}
	}
}

func TestShapesSeededLayout(t *testing.T) {
	v := newShapes(t)
	a := v.Generate(testViewport, rand.New(rand.NewSource(5)))
	b := v.Generate(testViewport, rand.New(rand.NewSource(5)))
	c := v.Generate(testViewport, rand.New(rand.NewSource(6)))

	same, differs := true, false
	for i := range a.Primitives {
		if a.Primitives[i].Radius != b.Primitives[i].Radius {
			same = false
		}
		if a.Primitives[i].Radius != c.Primitives[i].Radius {
			differs = true
		}
	}
	if !same {
		t.Error("same seed produced different layouts")
	}
	if !differs {
		t.Error("different seeds produced identical jitter")
	}
}

func TestShapesApply(t *testing.T) {
	v := newShapes(t)
	s := v.Generate(testViewport, rand.New(rand.NewSource(1)))

	v.Apply(s, 0, 0)
	for _, p := range s.Primitives {
		switch p.Kind {
		case KindBlob:
			want := Opacity(Shimmer(0.15, 0.25, 0, float64(p.Ring)))
			if math.Abs(p.Display.Opacity-want) > 1e-12 {
				t.Fatalf("blob %d opacity at rest = %v, want %v", p.ID, p.Display.Opacity, want)
			}
			if len(p.Display.Stops) != 3 || p.Display.Stops[0] != v.pal.At(p.Color) {
				t.Fatalf("blob %d gradient %v does not start at its color", p.ID, p.Display.Stops)
			}
			if p.Shape == ShapeCircle && p.Display.Points != nil {
				t.Fatalf("circle blob %d has an outline", p.ID)
			}
		case KindSpoke:
			if len(p.Display.Points) != 3 {
				t.Fatalf("spoke %d has %d vertices", p.ID, len(p.Display.Points))
			}
		}
	}

	v.Apply(s, 1, 0)
	for _, p := range s.Primitives {
		switch p.Kind {
		case KindBlob:
			if p.Shape != ShapeCircle && math.Abs(p.Display.Rotation-math.Pi) > 1e-12 {
				t.Fatalf("blob %d rotation at full progress = %v, want π", p.ID, p.Display.Rotation)
			}
			if p.Display.Opacity < 0 || p.Display.Opacity > 1 {
				t.Fatalf("blob %d opacity %v out of range", p.ID, p.Display.Opacity)
			}
		case KindMetatron:
			if math.Abs(p.Display.Opacity-0.6) > 1e-12 {
				t.Errorf("metatron opacity at full progress = %v, want 0.6", p.Display.Opacity)
			}
			if math.Abs(p.Display.Size-p.Size*1.3) > 1e-9 {
				t.Errorf("metatron size = %v, want %v", p.Display.Size, p.Size*1.3)
			}
		}
	}
}
