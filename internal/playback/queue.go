package playback

import (
	"github.com/samber/lo"

	"github.com/llehouerou/wavelist/internal/playlist"
)

// queue is the ordered list of items being played and the current position.
type queue struct {
	items        []playlist.Item
	currentIndex int // -1 if nothing is current
}

func newQueue() *queue {
	return &queue{currentIndex: -1}
}

// current returns the current item and true, or the zero Item and false.
func (q *queue) current() (playlist.Item, bool) {
	if q.currentIndex < 0 || q.currentIndex >= len(q.items) {
		return playlist.Item{}, false
	}
	return q.items[q.currentIndex], true
}

// replace copies items into the queue and moves to start.
// Returns false, leaving the queue untouched, when start is not in items.
func (q *queue) replace(items []playlist.Item, start playlist.Item) bool {
	_, idx, ok := lo.FindIndexOf(items, start.Equal)
	if !ok {
		return false
	}
	q.items = append(q.items[:0:0], items...)
	q.currentIndex = idx
	return true
}

func (q *queue) hasNext() bool {
	return q.currentIndex >= 0 && q.currentIndex < len(q.items)-1
}

func (q *queue) hasPrevious() bool {
	return q.currentIndex > 0
}

func (q *queue) next() bool {
	if !q.hasNext() {
		return false
	}
	q.currentIndex++
	return true
}

func (q *queue) previous() bool {
	if !q.hasPrevious() {
		return false
	}
	q.currentIndex--
	return true
}

// reset clears the position but keeps the items.
func (q *queue) reset() {
	q.currentIndex = -1
}

func (q *queue) snapshot() []playlist.Item {
	return append([]playlist.Item(nil), q.items...)
}
