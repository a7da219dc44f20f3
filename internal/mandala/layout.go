package mandala

import (
	"math"

	"github.com/iburimskiy/mandala-visualization/internal/config"
	"github.com/iburimskiy/mandala-visualization/internal/palette"
)

// MinPerRing is the smallest primitive count any ring is allowed to have.
const MinPerRing = config.MinPrimitivesRow

// CountFunc returns how many primitives ring r of rings gets.
type CountFunc func(r, rings int, radius float64) int

// ringT is r's position between the first (0) and last (1) ring.
func ringT(r, rings int) float64 {
	if rings <= 1 {
		return 0
	}
	return float64(r) / float64(rings-1)
}

// RingRadius interpolates linearly from inner (ring 0) to outer (last ring).
func RingRadius(r, rings int, inner, outer float64) float64 {
	return inner + ringT(r, rings)*(outer-inner)
}

// LinearCount grows from base on ring 0 to top on the last ring.
func LinearCount(base, top int) CountFunc {
	return func(r, rings int, _ float64) int {
		return ClampCount(int(math.Floor(float64(base) + ringT(r, rings)*float64(top-base))))
	}
}

// StepCount adds step primitives per ring starting from base.
func StepCount(base, step int) CountFunc {
	return func(r, _ int, _ float64) int {
		return ClampCount(base + r*step)
	}
}

// CircumferenceCount fits as many primitives as spacing allows around the ring.
func CircumferenceCount(spacing float64) CountFunc {
	return func(_, _ int, radius float64) int {
		if spacing <= 0 {
			return MinPerRing
		}
		return ClampCount(int(math.Floor(twoPi * radius / spacing)))
	}
}

// ClampCount enforces MinPerRing.
func ClampCount(n int) int {
	if n < MinPerRing {
		return MinPerRing
	}
	return n
}

// SpokeAngle is the angle of primitive i out of count. Odd rings are shifted
// by half a step when stagger is set, which breaks up radial seams.
func SpokeAngle(i, count, ring int, stagger bool) float64 {
	step := twoPi / float64(count)
	a := float64(i) * step
	if stagger && ring%2 == 1 {
		a += step / 2
	}
	return a
}

// StrideIndex is (ring*k + i) mod size.
func StrideIndex(ring, i, k, size int) int {
	return palette.Wrap(ring*k+i, size)
}

// SpiralIndex is floor(ring + frac*factor) mod size. frac is the primitive's
// angular position in [0,1); the ring offset twists color bands into spirals.
func SpiralIndex(ring int, frac, factor float64, size int) int {
	return palette.Wrap(int(math.Floor(float64(ring)+frac*factor)), size)
}

// ShapeFor cycles star, hexagon, circle by i mod 3.
func ShapeFor(i int) Shape {
	switch i % 3 {
	case 0:
		return ShapeStar
	case 1:
		return ShapeHexagon
	}
	return ShapeCircle
}
