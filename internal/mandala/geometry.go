package mandala

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const twoPi = 2 * math.Pi

// Polar returns center + r*(cos a, sin a).
func Polar(center mgl64.Vec2, r, a float64) mgl64.Vec2 {
	return center.Add(mgl64.Vec2{math.Cos(a), math.Sin(a)}.Mul(r))
}

// WrapAngle maps a into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

// AngleDiff returns the signed shortest rotation from b to a, in [-π, π).
func AngleDiff(a, b float64) float64 {
	d := WrapAngle(a-b+math.Pi) - math.Pi
	return d
}

// RegularPolygon returns the vertices of a regular polygon whose first
// vertex sits at angle rotation.
func RegularPolygon(center mgl64.Vec2, radius float64, sides int, rotation float64) []mgl64.Vec2 {
	pts := make([]mgl64.Vec2, sides)
	for i := range pts {
		pts[i] = Polar(center, radius, rotation+float64(i)*twoPi/float64(sides))
	}
	return pts
}

// Star alternates outer and inner radii over 2*points vertices.
func Star(center mgl64.Vec2, outer, inner float64, points int, rotation float64) []mgl64.Vec2 {
	pts := make([]mgl64.Vec2, points*2)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		pts[i] = Polar(center, r, rotation+float64(i)*math.Pi/float64(points))
	}
	return pts
}

// Rhombus returns a diamond with half extent radial along angle and
// tangential across it.
func Rhombus(center mgl64.Vec2, radial, tangential, angle float64) []mgl64.Vec2 {
	rot := mgl64.Rotate2D(angle)
	local := [4]mgl64.Vec2{
		{radial, 0},
		{0, tangential},
		{-radial, 0},
		{0, -tangential},
	}
	pts := make([]mgl64.Vec2, len(local))
	for i, v := range local {
		pts[i] = center.Add(rot.Mul2x1(v))
	}
	return pts
}

// RotateAbout rotates pts around pivot by angle and scales them by scale,
// returning a new slice.
func RotateAbout(pts []mgl64.Vec2, pivot mgl64.Vec2, angle, scale float64) []mgl64.Vec2 {
	rot := mgl64.Rotate2D(angle)
	out := make([]mgl64.Vec2, len(pts))
	for i, p := range pts {
		out[i] = pivot.Add(rot.Mul2x1(p.Sub(pivot)).Mul(scale))
	}
	return out
}

// Metatron returns the 13 circle centers of Metatron's cube: the center, an
// inner hexagon at radius/2 and an outer hexagon at radius, all turned by
// rotation.
func Metatron(center mgl64.Vec2, radius, rotation float64) []mgl64.Vec2 {
	pts := make([]mgl64.Vec2, 0, 13)
	pts = append(pts, center)
	pts = append(pts, RegularPolygon(center, radius/2, 6, rotation)...)
	pts = append(pts, RegularPolygon(center, radius, 6, rotation)...)
	return pts
}
