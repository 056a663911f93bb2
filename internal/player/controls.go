package player

import (
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// Stop stops playback and releases resources.
func (p *Player) Stop() {
	if p.state == Stopped {
		return
	}

	speaker.Clear()

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}

	p.ctrl = nil
	p.duration = 0
	p.state = Stopped
}

// Pause pauses playback.
func (p *Player) Pause() {
	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Resume resumes paused playback.
func (p *Player) Resume() {
	if p.state != Paused || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

// Toggle toggles between playing and paused states.
func (p *Player) Toggle() {
	switch p.state {
	case Playing:
		p.Pause()
	case Paused:
		p.Resume()
	case Stopped:
		// Nothing to toggle when stopped
	}
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.format.SampleRate.D(p.streamer.Position())
}

// Seek moves the playback position by delta, clamped to the track bounds.
func (p *Player) Seek(delta time.Duration) {
	if p.streamer == nil || p.state == Stopped {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()

	pos := p.streamer.Position() + p.format.SampleRate.N(delta)
	pos = min(max(pos, 0), max(p.streamer.Len()-1, 0))
	_ = p.streamer.Seek(pos)
}
