package mandala

import (
	"testing"
	"time"
)

func TestProgressClamping(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		height float64
		want   float64
	}{
		{"top", 0, 800, 0},
		{"half", 400, 800, 0.5},
		{"one viewport", 800, 800, 1},
		{"beyond", 2400, 800, 1},
		{"negative", -50, 800, 0},
		{"zero height", 100, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.offset, tt.height); got != tt.want {
				t.Errorf("Progress(%v, %v) = %v, want %v", tt.offset, tt.height, got, tt.want)
			}
		})
	}
}

func TestMapperNavVisibility(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		want   bool
	}{
		{"top", 0, false},
		{"exactly half", 500, false},
		{"just past half", 500.5, true},
		{"far down", 3000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Mapper
			m.Update(tt.offset, 1000)
			if got := m.NavVisible(); got != tt.want {
				t.Errorf("NavVisible at offset %v = %v, want %v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestMapperHalfViewport(t *testing.T) {
	var m Mapper
	if got := m.Update(500, 1000); got != 0.5 {
		t.Errorf("Update(500, 1000) = %v, want 0.5", got)
	}
	if m.Progress() != 0.5 || m.Offset() != 500 {
		t.Errorf("mapper state = (%v, %v), want (0.5, 500)", m.Progress(), m.Offset())
	}
}

func TestMapperIntroVisibility(t *testing.T) {
	var m Mapper
	m.Update(0, 1000)
	if m.IntroVisible(time.Second) {
		t.Error("intro visible before the delay")
	}
	if !m.IntroVisible(3 * time.Second) {
		t.Error("intro hidden at the top after the delay")
	}
	m.Update(11, 1000)
	if m.IntroVisible(3 * time.Second) {
		t.Error("intro visible after scrolling away from the top")
	}
	m.Update(10, 1000)
	if !m.IntroVisible(3 * time.Second) {
		t.Error("intro hidden at offset 10")
	}
}
