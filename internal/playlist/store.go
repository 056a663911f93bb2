package playlist

import (
	"fmt"
	"slices"

	"github.com/llehouerou/wavelist/internal/tags"
)

// TagReader reads tags from a resolved media locator.
type TagReader func(source string) (*tags.Tag, error)

type loadOptions struct {
	readTags TagReader
}

// Option configures Load.
type Option func(*loadOptions)

// WithTagFallback fills empty track, artist and album fields from the
// media file's tags.
func WithTagFallback(read TagReader) Option {
	return func(o *loadOptions) {
		o.readTags = read
	}
}

// Store is the ordered playlist. It never changes after Load.
type Store struct {
	items []Item
}

// Load resolves every manifest entry and builds the store.
// Any unresolved resource aborts the load with a *MissingResourceError.
func Load(m Manifest, r Resolver, opts ...Option) (*Store, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	if len(m.Tracks) == 0 {
		return nil, ErrEmpty
	}

	items := make([]Item, 0, len(m.Tracks))
	for i, e := range m.Tracks {
		source, err := r.Resolve(e.Resource, e.Ext)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i+1, err)
		}
		if o.readTags != nil {
			e = fillFromTags(e, source, o.readTags)
		}
		items = append(items, NewItem(source, e.Track, e.Album, e.Artist, e.Artwork))
	}

	return &Store{items: slices.Clip(items)}, nil
}

func fillFromTags(e Entry, source string, read TagReader) Entry {
	if e.Track != "" && e.Artist != "" && e.Album != "" {
		return e
	}
	t, err := read(source)
	if err != nil || t == nil {
		if e.Track == "" {
			e.Track = e.Resource
		}
		return e
	}
	if e.Track == "" {
		e.Track = t.Title
	}
	if e.Artist == "" {
		e.Artist = t.Artist
	}
	if e.Album == "" {
		e.Album = t.Album
	}
	return e
}

// Items returns a copy of the playlist in playback order.
func (s *Store) Items() []Item {
	return slices.Clone(s.items)
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// At returns the item at index i. It panics if i is out of range.
func (s *Store) At(i int) Item {
	return s.items[i]
}
