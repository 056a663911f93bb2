package playlistview

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPlayer is returned by New without a playback service.
	ErrNoPlayer = errors.New("playlistview: no playback service")
	// ErrNoSurface is returned by New without a presentation surface.
	ErrNoSurface = errors.New("playlistview: no surface")
)

// RowIndexError is the panic value of SelectRow for an index outside
// [0, RowCount()).
type RowIndexError struct {
	Index int
	Count int
}

func (e *RowIndexError) Error() string {
	return fmt.Sprintf("playlistview: row index %d out of range [0,%d)", e.Index, e.Count)
}
