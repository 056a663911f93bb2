// Package playback provides the player facade: queue-aware playback
// control with typed event subscriptions.
package playback

import (
	"time"

	"github.com/llehouerou/wavelist/internal/playlist"
)

// Notifier hands out event subscriptions.
type Notifier interface {
	// Subscribe registers a new observer for every event kind.
	Subscribe() *Subscription
	// Unsubscribe removes every registration of sub. Once it returns, no
	// further event is delivered to sub. Safe to call more than once.
	Unsubscribe(sub *Subscription)
}

// Service defines the playback service contract.
type Service interface {
	Notifier

	// Playback control
	PlayItems(items []playlist.Item, start playlist.Item) error
	Toggle() error
	Stop() error
	Next() error
	Previous() error
	Seek(delta time.Duration) error

	// State queries
	State() State
	IsPlaying() bool
	CurrentItem() (playlist.Item, bool)
	CurrentIndex() int
	Items() []playlist.Item
	Position() time.Duration
	Duration() time.Duration

	// Lifecycle
	Close() error
}
