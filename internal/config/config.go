package config

import "time"

const (
	WindowWidth  = 1024
	WindowHeight = 768

	// Soundtrack tap
	VisualRingSize  = 8192
	SmoothingFactor = 0.6
	LevelWindow     = 2048

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 50

	// Virtual page
	ScrollPages = 2.0
	WheelStep   = 40.0
	KeyStep     = 24.0

	// Host frame cadence
	FrameRate     = 60
	FrameInterval = time.Second / FrameRate

	// Overlays
	NavThreshold     = 0.5
	IntroDelay       = 2 * time.Second
	IntroHideOffset  = 10.0
	MinPrimitivesRow = 8
)
