package soundtrack

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/mandala-visualization/internal/config"
)

// Player owns the speaker and at most one playing Track.
type Player struct {
	mu       sync.Mutex
	track    *Track
	meter    *Meter
	initDone bool
	rate     beep.SampleRate
	paused   bool
}

// NewPlayer returns an idle player. The speaker is initialized lazily on the
// first Load.
func NewPlayer() *Player {
	return &Player{meter: NewMeter()}
}

// Choose asks the user for an audio file. A canceled dialog returns "" and
// no error.
func Choose() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: Patterns,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}

// Load stops the current track, if any, and starts playing path.
func (p *Player) Load(path string) error {
	track, err := Open(path)
	if err != nil {
		return err
	}

	format := track.Format()
	bufferSize := format.SampleRate.N(time.Second / 20)
	if !p.initDone {
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = track.Close()
			return err
		}
		p.initDone = true
		p.rate = format.SampleRate
	} else if p.rate != format.SampleRate {
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = track.Close()
			return err
		}
		p.rate = format.SampleRate
	} else {
		speaker.Clear()
	}

	p.mu.Lock()
	prev := p.track
	p.track = track
	p.paused = false
	p.mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}

	log.Printf("[Soundtrack] playing %s (%s)", track.Name(), formatDuration(track.Duration()))
	speaker.Play(beep.Seq(track.Streamer(), beep.Callback(func() {
		p.finished(track)
	})))
	return nil
}

// finished runs on the speaker goroutine when a track ends.
func (p *Player) finished(track *Track) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.track != track {
		return
	}
	_ = track.Close()
	p.track = nil
	log.Printf("[Soundtrack] finished %s", track.Name())
}

// TogglePause pauses or resumes the current track.
func (p *Player) TogglePause() {
	p.mu.Lock()
	track := p.track
	if track == nil {
		p.mu.Unlock()
		return
	}
	p.paused = !p.paused
	paused := p.paused
	p.mu.Unlock()

	speaker.Lock()
	track.ctrl.Paused = paused
	speaker.Unlock()
}

// Playing reports whether a track is loaded.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track != nil
}

// Paused reports whether the loaded track is paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track != nil && p.paused
}

// Level samples the tap and returns the smoothed loudness. Without a playing
// track the level decays toward zero.
func (p *Player) Level() float64 {
	p.mu.Lock()
	track, paused := p.track, p.paused
	p.mu.Unlock()
	if track == nil || paused {
		return p.meter.Decay()
	}
	return p.meter.Update(track.Tap().Snapshot(config.LevelWindow))
}

// Status returns the track name, position and duration, or ok=false when
// nothing is loaded.
func (p *Player) Status() (name string, pos, total time.Duration, ok bool) {
	p.mu.Lock()
	track := p.track
	p.mu.Unlock()
	if track == nil {
		return "", 0, 0, false
	}
	speaker.Lock()
	pos = track.Position()
	speaker.Unlock()
	return track.Name(), pos, track.Duration(), true
}

// Close stops playback and releases the track.
func (p *Player) Close() {
	if p.initDone {
		speaker.Clear()
	}
	p.mu.Lock()
	track := p.track
	p.track = nil
	p.mu.Unlock()
	if track != nil {
		_ = track.Close()
	}
}
