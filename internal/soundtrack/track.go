// Package soundtrack plays an optional audio file next to the mandala and
// exposes its loudness so the host background can pulse with it.
package soundtrack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/mandala-visualization/internal/config"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Patterns lists the file patterns Open can decode, for file dialogs.
var Patterns = []string{"*.wav", "*.mp3", "*.flac"}

// Track is a decoded audio file wired as streamer -> tap -> ctrl.
type Track struct {
	Path string

	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	tap      *Tap
	ctrl     *beep.Ctrl
}

// Open decodes the file at path based on its extension.
func Open(path string) (*Track, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open soundtrack: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	tap := NewTap(streamer, config.VisualRingSize)
	return &Track{
		Path:     path,
		file:     f,
		streamer: streamer,
		format:   format,
		tap:      tap,
		ctrl:     &beep.Ctrl{Streamer: tap},
	}, nil
}

// Name returns the file name without its directory.
func (t *Track) Name() string { return filepath.Base(t.Path) }

// Format returns the decoded sample format.
func (t *Track) Format() beep.Format { return t.format }

// Streamer is the head of the chain to hand to the speaker.
func (t *Track) Streamer() beep.Streamer { return t.ctrl }

// Tap exposes the recent-sample ring.
func (t *Track) Tap() *Tap { return t.tap }

// Duration is the total track length.
func (t *Track) Duration() time.Duration {
	return t.format.SampleRate.D(t.streamer.Len())
}

// Position is the current playback position. Callers playing the track must
// hold the speaker lock.
func (t *Track) Position() time.Duration {
	return t.format.SampleRate.D(t.streamer.Position())
}

// Close releases the decoder and the file.
func (t *Track) Close() error {
	err := t.streamer.Close()
	if cerr := t.file.Close(); err == nil && !errors.Is(cerr, os.ErrClosed) {
		err = cerr
	}
	return err
}
