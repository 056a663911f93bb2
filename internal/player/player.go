package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

var (
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// Player drives the speaker for one track at a time.
// It is not safe for concurrent use; the playback service serializes calls.
type Player struct {
	state      State
	ctrl       *beep.Ctrl
	streamer   beep.StreamSeekCloser
	format     beep.Format
	file       *os.File
	duration   time.Duration
	finishedCh chan struct{}
}

// New creates a stopped player.
func New() *Player {
	return &Player{
		state:      Stopped,
		finishedCh: make(chan struct{}, 1),
	}
}

// Play starts playback of the given audio file, replacing the current one.
func (p *Player) Play(path string) error {
	p.Stop()

	// Drain any stale finish signal from the previous track
	select {
	case <-p.finishedCh:
	default:
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !isSupported(ext) {
		return fmt.Errorf("unsupported format: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	streamer, format, err := decode(f, ext)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	if !speakerInitialized {
		speakerSampleRate = format.SampleRate
		if err := speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			f.Close()
			return err
		}
		speakerInitialized = true
	}

	p.file = f
	p.streamer = streamer
	p.format = format
	p.duration = format.SampleRate.D(streamer.Len())

	var out beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		out = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}
	p.ctrl = &beep.Ctrl{Streamer: out}
	p.state = Playing

	finished := p.finishedCh
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		select {
		case finished <- struct{}{}:
		default:
		}
	})))

	return nil
}

// State returns the current state.
func (p *Player) State() State { return p.state }

// Duration returns the length of the current track.
func (p *Player) Duration() time.Duration { return p.duration }

// FinishedChan implements Interface.
func (p *Player) FinishedChan() <-chan struct{} { return p.finishedCh }
