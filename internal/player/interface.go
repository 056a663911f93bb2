package player

import "time"

// Interface is the audio engine contract consumed by the playback service.
type Interface interface {
	Play(path string) error
	Stop()
	Pause()
	Resume()
	Toggle()
	State() State
	Position() time.Duration
	Duration() time.Duration
	Seek(delta time.Duration)
	// FinishedChan signals natural end of the current track.
	// Manual stops do not signal.
	FinishedChan() <-chan struct{}
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
