package soundtrack

import (
	"math"
	"sync"

	"github.com/faiface/beep"

	"github.com/iburimskiy/mandala-visualization/internal/config"
)

// Tap wraps a beep.Streamer and records the last N samples into a ring buffer
// so the host can react to recently played audio.
type Tap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	mu        sync.RWMutex
}

// NewTap taps src with a ring of ringSize stereo samples.
func NewTap(src beep.Streamer, ringSize int) *Tap {
	if ringSize < 1 {
		ringSize = 1
	}
	return &Tap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Snapshot returns the last n samples, oldest first.
func (t *Tap) Snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > len(t.buffer) {
		n = len(t.buffer)
	}
	out := make([][2]float64, n)
	idx := t.nextIndex - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := range out {
		out[i] = t.buffer[idx]
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
	return out
}

// Meter turns tapped samples into a single smoothed loudness in [0,1].
type Meter struct {
	Smoothing float64
	level     float64
}

// NewMeter returns a meter with the default smoothing.
func NewMeter() *Meter {
	return &Meter{Smoothing: config.SmoothingFactor}
}

// Update folds a window of samples into the level and returns it. The mono
// RMS is compressed with a 0.3 power so quiet passages still register.
func (m *Meter) Update(samples [][2]float64) float64 {
	if len(samples) == 0 {
		return m.level
	}
	var sumSquares float64
	for _, s := range samples {
		mono := (s[0] + s[1]) * 0.5
		sumSquares += mono * mono
	}
	rms := math.Sqrt(sumSquares / float64(len(samples)))
	mag := math.Min(1, math.Pow(rms, 0.3))
	m.level = m.Smoothing*m.level + (1-m.Smoothing)*mag
	return m.level
}

// Decay lets the level fall toward silence when nothing is playing.
func (m *Meter) Decay() float64 {
	m.level *= m.Smoothing
	return m.level
}

// Level returns the last computed level.
func (m *Meter) Level() float64 { return m.level }
