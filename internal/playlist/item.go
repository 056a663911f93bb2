// Package playlist holds the fixed, ordered playlist shown by the app.
package playlist

// Item describes one playable track and its display metadata.
// Items are immutable; two items refer to the same track when their
// sources match.
type Item struct {
	source  string
	track   string
	album   string
	artist  string
	artwork string
}

// NewItem creates an item. source is the media locator (a file path).
func NewItem(source, track, album, artist, artwork string) Item {
	return Item{
		source:  source,
		track:   track,
		album:   album,
		artist:  artist,
		artwork: artwork,
	}
}

// Source returns the media locator.
func (i Item) Source() string { return i.source }

// Track returns the track name.
func (i Item) Track() string { return i.track }

// Album returns the album name.
func (i Item) Album() string { return i.album }

// Artist returns the artist name.
func (i Item) Artist() string { return i.artist }

// Artwork returns the artwork identifier.
func (i Item) Artwork() string { return i.artwork }

// Equal reports whether both items refer to the same media source.
func (i Item) Equal(o Item) bool { return i.source == o.source }

// IsZero reports whether the item is the zero value.
func (i Item) IsZero() bool { return i.source == "" }

// Subtitle returns "Artist - Album", omitting missing parts.
func (i Item) Subtitle() string {
	switch {
	case i.artist != "" && i.album != "":
		return i.artist + " - " + i.album
	case i.artist != "":
		return i.artist
	default:
		return i.album
	}
}
