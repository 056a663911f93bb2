package playlistpanel

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavelist/internal/playlistview"
)

const frameInterval = time.Second / 30

// frameMsg advances the affordance animation started with sequence seq.
type frameMsg struct {
	seq int
}

// animator interpolates the affordance between what is on screen and a
// target. A new target always starts from the current on-screen values,
// so an interrupted animation continues smoothly.
type animator struct {
	height, opacity float64

	fromHeight, fromOpacity float64
	target                  playlistview.Affordance
	start                   time.Time
	duration                time.Duration
	running                 bool
	seq                     int

	now func() time.Time
}

func (a *animator) set(target playlistview.Affordance, t playlistview.Transition) tea.Cmd {
	a.seq++
	a.target = target
	if !t.IsAnimated() || a.at(target) {
		a.height = float64(target.Height)
		a.opacity = target.Opacity
		a.running = false
		return nil
	}
	a.fromHeight, a.fromOpacity = a.height, a.opacity
	a.start = a.now()
	a.duration = t.Duration()
	a.running = true
	return a.frame()
}

func (a *animator) at(target playlistview.Affordance) bool {
	return a.height == float64(target.Height) && a.opacity == target.Opacity
}

func (a *animator) frame() tea.Cmd {
	seq := a.seq
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{seq: seq}
	})
}

// step applies one frame. Frames of a superseded animation are dropped.
func (a *animator) step(msg frameMsg) tea.Cmd {
	if !a.running || msg.seq != a.seq {
		return nil
	}
	p := float64(a.now().Sub(a.start)) / float64(a.duration)
	if p >= 1 {
		a.height = float64(a.target.Height)
		a.opacity = a.target.Opacity
		a.running = false
		return nil
	}
	e := smoothstep(max(p, 0))
	a.height = lerp(a.fromHeight, float64(a.target.Height), e)
	a.opacity = lerp(a.fromOpacity, a.target.Opacity, e)
	return a.frame()
}

// current is the affordance as drawn now, height rounded to whole rows.
func (a *animator) current() playlistview.Affordance {
	return playlistview.Affordance{
		Height:  int(math.Round(a.height)),
		Opacity: a.opacity,
	}
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}
