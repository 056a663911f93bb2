package playlistview

import (
	"time"

	"github.com/llehouerou/wavelist/internal/playback"
	"github.com/llehouerou/wavelist/internal/playlist"
)

// PlayCounter reports listening history for a media source.
type PlayCounter interface {
	PlayStats(source string) (count int, last time.Time)
}

// Row binds one playlist item to the shared playback service. It holds no
// copy of player state: every query reads the service.
type Row struct {
	Index int
	Item  playlist.Item

	player playback.Service
	plays  PlayCounter
}

// IsCurrent reports whether the row's item is the player's current item.
func (r Row) IsCurrent() bool {
	if r.player == nil {
		return false
	}
	cur, ok := r.player.CurrentItem()
	return ok && cur.Equal(r.Item)
}

// State returns the playback state of the row: the player state when the
// row is current, StateStopped otherwise.
func (r Row) State() playback.State {
	if !r.IsCurrent() {
		return playback.StateStopped
	}
	return r.player.State()
}

// PlayStats returns how often and when the item was last played.
// Without history both values are zero.
func (r Row) PlayStats() (count int, last time.Time) {
	if r.plays == nil {
		return 0, time.Time{}
	}
	return r.plays.PlayStats(r.Item.Source())
}
