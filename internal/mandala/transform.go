package mandala

import (
	"math"

	"github.com/iburimskiy/mandala-visualization/internal/palette"
)

// RadialScale is 1 + progress*outward.
func RadialScale(progress, outward float64) float64 {
	return 1 + progress*outward
}

// Spin is progress*turns full revolutions, in radians.
func Spin(progress, turns float64) float64 {
	return progress * turns * twoPi
}

// ShiftIndex advances base by floor(progress*size*shift) palette slots.
// The result is always in [0, size).
func ShiftIndex(base int, progress float64, size int, shift float64) int {
	return palette.Wrap(base+int(math.Floor(progress*float64(size)*shift)), size)
}

// Shimmer is base + amp*sin(2π*progress + phase). Callers clamp when the
// value feeds an opacity.
func Shimmer(base, amp, progress, phase float64) float64 {
	return base + amp*math.Sin(progress*twoPi+phase)
}

// CheckerMix is how far the checkerboard has replaced the palette colors:
// 0 up to threshold, rising linearly to 1 at full progress.
func CheckerMix(progress, threshold float64) float64 {
	if threshold >= 1 {
		return 0
	}
	return clamp01((progress - threshold) / (1 - threshold))
}

// IsWhite reports the checkerboard parity of (ring, spoke).
func IsWhite(ring, spoke int) bool {
	return (ring+spoke)%2 == 0
}

// Opacity clamps v into [0,1].
func Opacity(v float64) float64 {
	return clamp01(v)
}
