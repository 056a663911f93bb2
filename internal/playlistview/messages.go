package playlistview

import "github.com/llehouerou/wavelist/internal/playback"

// EventKind tells which notification produced a ChangedMsg.
type EventKind int

const (
	KindTrackChanged EventKind = iota
	KindStateChanged
	// KindRequeued marks a reconciliation deferred from a re-entrant call.
	KindRequeued
)

func (k EventKind) String() string {
	switch k {
	case KindTrackChanged:
		return "track"
	case KindStateChanged:
		return "state"
	case KindRequeued:
		return "requeued"
	default:
		return "unknown"
	}
}

// ChangedMsg is delivered on the update loop for each watched event.
// Sub identifies the subscription it came from; controllers ignore
// messages that are not from their own subscription.
type ChangedMsg struct {
	Sub  *playback.Subscription
	Kind EventKind
}

// PlaybackErrorMsg carries a service error event to the update loop.
type PlaybackErrorMsg struct {
	Sub   *playback.Subscription
	Event playback.ErrorEvent
}
