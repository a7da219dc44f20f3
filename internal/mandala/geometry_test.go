package mandala

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func near(a, b mgl64.Vec2) bool {
	return a.Sub(b).Len() < 1e-9
}

func TestWrapAndDiff(t *testing.T) {
	if got := WrapAngle(-math.Pi / 2); math.Abs(got-1.5*math.Pi) > 1e-12 {
		t.Errorf("WrapAngle(-π/2) = %v", got)
	}
	if got := AngleDiff(0.1, twoPi-0.1); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("AngleDiff across zero = %v, want 0.2", got)
	}
	if got := AngleDiff(twoPi-0.1, 0.1); math.Abs(got+0.2) > 1e-12 {
		t.Errorf("AngleDiff backwards across zero = %v, want -0.2", got)
	}
}

func TestRhombus(t *testing.T) {
	c := mgl64.Vec2{10, 10}
	pts := Rhombus(c, 4, 2, math.Pi/2)
	want := []mgl64.Vec2{{10, 14}, {8, 10}, {10, 6}, {12, 10}}
	for i := range want {
		if !near(pts[i], want[i]) {
			t.Errorf("vertex %d = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestPolygons(t *testing.T) {
	c := mgl64.Vec2{0, 0}
	hex := RegularPolygon(c, 10, 6, 0)
	for i, p := range hex {
		if math.Abs(p.Len()-10) > 1e-9 {
			t.Errorf("hex vertex %d at radius %v", i, p.Len())
		}
	}
	star := Star(c, 10, 5, 6, 0)
	if len(star) != 12 || math.Abs(star[1].Len()-5) > 1e-9 {
		t.Errorf("star vertices = %d, inner radius %v", len(star), star[1].Len())
	}
}

func TestRotateAbout(t *testing.T) {
	pivot := mgl64.Vec2{1, 1}
	got := RotateAbout([]mgl64.Vec2{{2, 1}}, pivot, math.Pi/2, 2)
	if !near(got[0], mgl64.Vec2{1, 3}) {
		t.Errorf("RotateAbout = %v, want [1 3]", got[0])
	}
}

func TestMetatron(t *testing.T) {
	pts := Metatron(mgl64.Vec2{0, 0}, 100, 0)
	if len(pts) != 13 {
		t.Fatalf("Metatron has %d centers, want 13", len(pts))
	}
	if pts[1].Len() < 49.999 || pts[1].Len() > 50.001 || pts[7].Len() < 99.999 || pts[7].Len() > 100.001 {
		t.Errorf("hexagon radii = %v and %v", pts[1].Len(), pts[7].Len())
	}
}
