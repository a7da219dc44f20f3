package soundtrack

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

func constant(v float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{v, v}
		}
		return len(samples), true
	})
}

func counting() beep.Streamer {
	next := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{next, -next}
			next++
		}
		return len(samples), true
	})
}

func TestTapSnapshotOrder(t *testing.T) {
	tap := NewTap(counting(), 8)
	buf := make([][2]float64, 5)
	tap.Stream(buf)
	tap.Stream(buf)

	got := tap.Snapshot(4)
	for i, want := range []float64{6, 7, 8, 9} {
		if got[i][0] != want {
			t.Fatalf("Snapshot = %v, want samples 6..9 oldest first", got)
		}
	}
	if n := len(tap.Snapshot(100)); n != 8 {
		t.Errorf("oversized snapshot returned %d samples, want the ring size 8", n)
	}
}

func TestMeterConverges(t *testing.T) {
	tap := NewTap(constant(0.5), 1024)
	tap.Stream(make([][2]float64, 1024))

	m := NewMeter()
	var level float64
	for i := 0; i < 60; i++ {
		level = m.Update(tap.Snapshot(512))
	}
	want := math.Pow(0.5, 0.3)
	if math.Abs(level-want) > 1e-6 {
		t.Errorf("level = %v, want %v", level, want)
	}

	for i := 0; i < 60; i++ {
		level = m.Decay()
	}
	if level > 1e-6 {
		t.Errorf("level after decay = %v", level)
	}
	if m.Update(nil) != level {
		t.Error("empty window changed the level")
	}
}

func TestOpenUnsupported(t *testing.T) {
	if _, err := Open("song.ogg"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Open(.ogg) error = %v", err)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "none.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open of a missing file error = %v", err)
	}
}

func TestOpenWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.WAV")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Take(4000, constant(0.25)), format); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	track, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer track.Close()

	if track.Duration() != 500*time.Millisecond {
		t.Errorf("Duration = %v, want 500ms", track.Duration())
	}
	if track.Name() != "tone.WAV" {
		t.Errorf("Name = %q", track.Name())
	}

	buf := make([][2]float64, 800)
	if n, _ := track.Streamer().Stream(buf); n != 800 {
		t.Fatalf("streamed %d samples", n)
	}
	if track.Position() != 100*time.Millisecond {
		t.Errorf("Position = %v, want 100ms", track.Position())
	}
	if level := NewMeter().Update(track.Tap().Snapshot(800)); level <= 0 {
		t.Error("tap recorded silence from a non-silent track")
	}
}

func TestFormatPosition(t *testing.T) {
	if got := FormatPosition(65*time.Second, 3*time.Minute+2*time.Second); got != "01:05 / 03:02" {
		t.Errorf("FormatPosition = %q", got)
	}
}
