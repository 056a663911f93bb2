package playlistview

import "time"

// Default affordance geometry and timing.
const (
	DefaultAffordanceHeight  = 3
	DefaultAnimationDuration = 500 * time.Millisecond
)

// Affordance is the visual state of the control that opens the player
// screen. Height is in terminal rows; Opacity is in [0, 1].
type Affordance struct {
	Height  int
	Opacity float64
}

// AffordanceFor returns the target affordance for the given visibility.
func AffordanceFor(visible bool, height int) Affordance {
	if !visible {
		return Affordance{}
	}
	return Affordance{Height: height, Opacity: 1}
}

// Visible reports whether any part of the affordance is shown.
func (a Affordance) Visible() bool {
	return a.Height > 0 && a.Opacity > 0
}

// Transition selects how the surface applies an affordance change.
type Transition struct {
	animated bool
	duration time.Duration
}

// Immediate applies the change in one step.
func Immediate() Transition {
	return Transition{}
}

// Animated interpolates from the current on-screen state over d.
// A non-positive d behaves like Immediate.
func Animated(d time.Duration) Transition {
	if d <= 0 {
		return Transition{}
	}
	return Transition{animated: true, duration: d}
}

// IsAnimated reports whether the transition interpolates.
func (t Transition) IsAnimated() bool { return t.animated }

// Duration returns the animation length (zero when immediate).
func (t Transition) Duration() time.Duration { return t.duration }

func (t Transition) String() string {
	if !t.animated {
		return "immediate"
	}
	return "animated(" + t.duration.String() + ")"
}
