// Package tags reads display metadata from music files.
package tags

import (
	"path/filepath"
	"strings"
)

// File extensions with tag support.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtWAV  = ".wav"
)

// Tag holds the subset of metadata a playlist row needs.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	TrackNumber int
	Year        int
}

// IsMusicFile reports whether path has an extension the player can decode.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtWAV:
		return true
	}
	return false
}
