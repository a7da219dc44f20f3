package mandala

import (
	"time"

	"github.com/iburimskiy/mandala-visualization/internal/config"
)

// Mapper turns the host's vertical scroll offset into progress in [0,1].
// It only remembers the latest notification.
type Mapper struct {
	offset   float64
	height   float64
	progress float64
}

// Update records a scroll notification and recomputes progress.
func (m *Mapper) Update(offsetY, viewportHeight float64) float64 {
	m.offset = offsetY
	m.height = viewportHeight
	m.progress = Progress(offsetY, viewportHeight)
	return m.progress
}

// Progress returns the last computed progress.
func (m *Mapper) Progress() float64 { return m.progress }

// Offset returns the last scroll offset seen.
func (m *Mapper) Offset() float64 { return m.offset }

// NavVisible reports whether the scroll offset is past half a viewport.
// Exactly half is not past.
func (m *Mapper) NavVisible() bool {
	return m.offset > m.height*config.NavThreshold
}

// IntroVisible reports whether the intro caption should show: only after the
// intro delay and only while the page is at (or very near) the top.
func (m *Mapper) IntroVisible(elapsed time.Duration) bool {
	return elapsed > config.IntroDelay && m.offset <= config.IntroHideOffset
}

// Progress is clamp(offsetY/viewportHeight, 0, 1); a non-positive height
// yields 0.
func Progress(offsetY, viewportHeight float64) float64 {
	if viewportHeight <= 0 {
		return 0
	}
	return clamp01(offsetY / viewportHeight)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
