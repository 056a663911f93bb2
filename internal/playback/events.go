package playback

import "github.com/llehouerou/wavelist/internal/playlist"

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when the current item changes.
//
// Emitted by PlayItems, Next, Previous, Stop and automatic advance when a
// track finishes. Current is the zero Item (and Index -1) when playback
// ends without a next item.
type TrackChange struct {
	Previous      playlist.Item
	Current       playlist.Item
	PreviousIndex int
	Index         int
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation string // e.g., "play", "seek"
	Path      string // item source if applicable
	Err       error
}
