package mandala

import (
	"math"
	"testing"
)

func TestRadialScaleMonotonic(t *testing.T) {
	for _, outward := range []float64{0.3, 0.4, 0.5, 2} {
		prev := 0.0
		for i := 0; i <= 100; i++ {
			p := float64(i) / 100
			s := RadialScale(p, outward)
			if s < prev {
				t.Fatalf("RadialScale(%v, %v) = %v decreased from %v", p, outward, s, prev)
			}
			prev = s
		}
		if got := RadialScale(1, outward); math.Abs(got-(1+outward)) > 1e-12 {
			t.Errorf("RadialScale(1, %v) = %v, want %v", outward, got, 1+outward)
		}
	}
}

func TestSpin(t *testing.T) {
	if got := Spin(0.5, 1); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("Spin(0.5, 1) = %v, want π", got)
	}
	if got := Spin(0, 3); got != 0 {
		t.Errorf("Spin(0, 3) = %v, want 0", got)
	}
}

func TestShiftIndexRange(t *testing.T) {
	for base := -12; base <= 12; base++ {
		for i := 0; i <= 40; i++ {
			p := float64(i) / 40
			for _, shift := range []float64{1, 1.5, 2} {
				got := ShiftIndex(base, p, 5, shift)
				if got < 0 || got >= 5 {
					t.Fatalf("ShiftIndex(%d, %v, 5, %v) = %d out of range", base, p, shift, got)
				}
			}
		}
	}
}

func TestShiftIndexValues(t *testing.T) {
	tests := []struct {
		name     string
		base     int
		progress float64
		shift    float64
		want     int
	}{
		{"no progress", 3, 0, 1.5, 3},
		{"one slot", 0, 0.2, 1, 1},
		{"shapes factor", 1, 0.5, 1.5, 4},
		{"full wrap", 2, 1, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShiftIndex(tt.base, tt.progress, 5, tt.shift); got != tt.want {
				t.Errorf("ShiftIndex = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestShimmer(t *testing.T) {
	if got := Shimmer(0.15, 0.25, 0, 0); math.Abs(got-0.15) > 1e-12 {
		t.Errorf("Shimmer at zero = %v, want 0.15", got)
	}
	if got := Shimmer(0.15, 0.25, 0.25, 0); math.Abs(got-0.4) > 1e-12 {
		t.Errorf("Shimmer at quarter = %v, want 0.4", got)
	}
	// Neighbouring rings are out of phase.
	if Shimmer(0.5, 0.5, 0.1, 0) == Shimmer(0.5, 0.5, 0.1, 1) {
		t.Error("Shimmer ignores the phase offset")
	}
	if got := Opacity(Shimmer(0.15, 0.25, 0.75, 0)); got != 0 {
		t.Errorf("clamped shimmer = %v, want 0", got)
	}
}

func TestCheckerMix(t *testing.T) {
	tests := []struct {
		progress float64
		want     float64
	}{
		{0, 0},
		{0.2, 0},
		{0.6, 0.5},
		{1, 1},
	}
	for _, tt := range tests {
		if got := CheckerMix(tt.progress, 0.2); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("CheckerMix(%v, 0.2) = %v, want %v", tt.progress, got, tt.want)
		}
	}
	if got := CheckerMix(1, 1); got != 0 {
		t.Errorf("CheckerMix with threshold 1 = %v, want 0", got)
	}
}

func TestIsWhite(t *testing.T) {
	if !IsWhite(0, 0) || IsWhite(0, 1) || IsWhite(1, 0) || !IsWhite(3, 5) {
		t.Error("IsWhite does not follow (ring+spoke) parity")
	}
}
