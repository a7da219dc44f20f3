package mandala

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/iburimskiy/mandala-visualization/internal/config"
)

type recordingRenderer struct {
	Store
	creates, updates, removes int
}

func (r *recordingRenderer) CreatePrimitive(id int, shape Shape) {
	r.creates++
	r.Store.CreatePrimitive(id, shape)
}

func (r *recordingRenderer) UpdatePrimitive(id int, attrs Attrs) {
	r.updates++
	r.Store.UpdatePrimitive(id, attrs)
}

func (r *recordingRenderer) RemoveAll() {
	r.removes++
	r.Store.RemoveAll()
}

// stubVariant lays out a single ring and records every progress it is
// applied with.
type stubVariant struct {
	mode    Mode
	applied []float64
}

func (v *stubVariant) Name() string { return "stub" }
func (v *stubVariant) Mode() Mode   { return v.mode }

func (v *stubVariant) Generate(vp Viewport, _ *rand.Rand) *Scene {
	s := NewScene(vp)
	for i := 0; i < MinPerRing; i++ {
		angle := SpokeAngle(i, MinPerRing, 0, false)
		s.add(Primitive{Kind: KindParticle, Shape: ShapeCircle, Angle: angle, Radius: 50,
			Base: Polar(s.Center, 50, angle), From: -1, To: -1})
	}
	s.indexRings(KindParticle)
	return s
}

func (v *stubVariant) Apply(s *Scene, progress float64, _ time.Duration) {
	v.applied = append(v.applied, progress)
	for i := range s.Primitives {
		s.Primitives[i].Display = Attrs{Opacity: progress}
	}
}

func newVariant(t *testing.T, name string) Variant {
	t.Helper()
	cfg := config.Default()
	v, err := New(name, &cfg)
	if err != nil {
		t.Fatalf("New(%q): %v", name, err)
	}
	return v
}

var testViewport = Viewport{Width: 800, Height: 800}

func TestControllerCoalescesScrolls(t *testing.T) {
	v := &stubVariant{mode: OnScroll}
	r := &recordingRenderer{}
	c := NewController(v, r, 1)
	c.Init(testViewport)
	if len(v.applied) != 1 || v.applied[0] != 0 {
		t.Fatalf("Init applied %v, want [0]", v.applied)
	}

	c.Scroll(100)
	c.Scroll(200)
	c.Scroll(400)
	if len(v.applied) != 1 {
		t.Fatal("Scroll applied transforms before the frame")
	}
	if !c.Frame(config.FrameInterval) {
		t.Fatal("Frame after scroll did not apply")
	}
	if len(v.applied) != 2 || v.applied[1] != 0.5 {
		t.Fatalf("applied %v, want one pass at the latest progress 0.5", v.applied)
	}
	if c.Frame(config.FrameInterval) {
		t.Error("Frame without a new scroll applied again")
	}
	if c.Passes() != 2 {
		t.Errorf("Passes = %d, want 2", c.Passes())
	}
	a, _ := r.Attrs(0)
	if a.Opacity != 0.5 {
		t.Errorf("renderer holds stale attrs %+v", a)
	}
}

func TestControllerContinuousAppliesEveryFrame(t *testing.T) {
	v := &stubVariant{mode: Continuous}
	c := NewController(v, &recordingRenderer{}, 1)
	c.Init(testViewport)
	for i := 0; i < 5; i++ {
		if !c.Frame(config.FrameInterval) {
			t.Fatalf("frame %d did not apply", i)
		}
	}
	if c.Passes() != 6 {
		t.Errorf("Passes = %d, want 6", c.Passes())
	}
	if c.Elapsed() != 5*config.FrameInterval {
		t.Errorf("Elapsed = %v", c.Elapsed())
	}
}

func TestControllerFrameBeforeInit(t *testing.T) {
	c := NewController(&stubVariant{}, &recordingRenderer{}, 1)
	if c.Frame(time.Second) {
		t.Error("Frame without a scene applied")
	}
}

func TestControllerResizeRegenerates(t *testing.T) {
	r := &recordingRenderer{}
	c := NewController(newVariant(t, config.VariantShapes), r, 42)
	c.Init(testViewport)
	first := append([]Primitive(nil), c.Scene().Primitives...)

	c.Scroll(300)
	c.Frame(config.FrameInterval)
	c.Resize(testViewport)

	second := c.Scene().Primitives
	if len(second) != len(first) {
		t.Fatalf("resize changed primitive count %d -> %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Base != second[i].Base || first[i].Radius != second[i].Radius {
			t.Fatalf("primitive %d layout differs after resize", i)
		}
	}
	if r.removes != 1 || r.Len() != len(second) {
		t.Errorf("renderer has %d primitives after %d RemoveAll, want %d", r.Len(), r.removes, len(second))
	}
	if c.Progress() != 300.0/800 {
		t.Errorf("resize lost scroll progress: %v", c.Progress())
	}

	c.Resize(Viewport{Width: 400, Height: 400})
	if c.Scene().Center.X() != 200 {
		t.Errorf("scene center = %v after resize", c.Scene().Center)
	}
}

func TestControllerTeardown(t *testing.T) {
	r := &recordingRenderer{}
	c := NewController(newVariant(t, config.VariantHexes), r, 1)
	c.Init(testViewport)
	if c.Timers() != 14 {
		t.Fatalf("pending timers = %d, want two per hexagon", c.Timers())
	}
	c.Frame(time.Second)
	if c.Timers() != 7 {
		t.Fatalf("pending timers after initial turns = %d, want 7", c.Timers())
	}

	c.Teardown()
	if c.Timers() != 0 || c.Scene() != nil || r.Len() != 0 {
		t.Errorf("teardown left timers=%d scene=%v primitives=%d", c.Timers(), c.Scene() != nil, r.Len())
	}
	if c.Frame(time.Second) {
		t.Error("Frame after Teardown applied")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	for _, name := range config.Variants {
		t.Run(name, func(t *testing.T) {
			c := NewController(newVariant(t, name), &recordingRenderer{}, 3)
			c.Init(testViewport)
			c.Scroll(0.37 * testViewport.Height)
			c.Frame(1700 * time.Millisecond)

			s := c.Scene()
			before := make([]Attrs, len(s.Primitives))
			for i := range s.Primitives {
				before[i] = s.Primitives[i].Display
			}
			c.Variant().Apply(s, c.Progress(), c.Elapsed())
			for i := range s.Primitives {
				if !reflect.DeepEqual(before[i], s.Primitives[i].Display) {
					t.Fatalf("primitive %d display changed on re-apply", i)
				}
			}
		})
	}
}

func TestApplyKeepsBaseState(t *testing.T) {
	for _, name := range config.Variants {
		t.Run(name, func(t *testing.T) {
			c := NewController(newVariant(t, name), &recordingRenderer{}, 3)
			c.Init(testViewport)

			type base struct {
				pos           [2]float64
				radius, angle float64
				size, opacity float64
				color         int
			}
			snapshot := func() []base {
				out := make([]base, len(c.Scene().Primitives))
				for i, p := range c.Scene().Primitives {
					out[i] = base{[2]float64{p.Base.X(), p.Base.Y()}, p.Radius, p.Angle, p.Size, p.Opacity, p.Color}
				}
				return out
			}
			want := snapshot()
			for step := 0; step <= 10; step++ {
				c.Scroll(float64(step) / 10 * testViewport.Height)
				c.Frame(250 * time.Millisecond)
			}
			if got := snapshot(); !reflect.DeepEqual(got, want) {
				t.Error("scrolling mutated base layout state")
			}
		})
	}
}
