package tags

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
)

// ErrNoTags is returned when a file carries no readable metadata.
var ErrNoTags = errors.New("no tags found")

// Read reads tag metadata from a music file.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadFrom(f, path)
}

// ReadFrom reads tag metadata from r. The path is only used for the
// extension-based fallback and for Tag.Path.
func ReadFrom(r io.ReadSeeker, path string) (*Tag, error) {
	m, err := tag.ReadFrom(r)
	if err != nil {
		if strings.EqualFold(filepath.Ext(path), ExtMP3) {
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			if _, serr := r.Seek(0, io.SeekStart); serr != nil {
				return nil, serr
			}
			return readMP3WithID3v2(r, path)
		}
		return nil, err
	}

	albumArtist := m.AlbumArtist()
	if albumArtist == "" {
		albumArtist = m.Artist()
	}
	track, _ := m.Track()

	t := &Tag{
		Path:        path,
		Title:       strings.TrimSpace(m.Title()),
		Artist:      strings.TrimSpace(m.Artist()),
		AlbumArtist: strings.TrimSpace(albumArtist),
		Album:       strings.TrimSpace(m.Album()),
		TrackNumber: track,
		Year:        m.Year(),
	}
	if t.Title == "" && t.Artist == "" && t.Album == "" {
		return nil, ErrNoTags
	}
	return t, nil
}

func readMP3WithID3v2(r io.Reader, path string) (*Tag, error) {
	id3tag, err := id3v2.ParseReader(r, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	if !id3tag.HasFrames() {
		return nil, ErrNoTags
	}

	t := &Tag{
		Path:   path,
		Title:  strings.TrimSpace(id3tag.Title()),
		Artist: strings.TrimSpace(id3tag.Artist()),
		Album:  strings.TrimSpace(id3tag.Album()),
	}
	t.AlbumArtist = getID3TextFrame(id3tag, "TPE2")
	if t.AlbumArtist == "" {
		t.AlbumArtist = t.Artist
	}
	if n, err := strconv.Atoi(strings.SplitN(getID3TextFrame(id3tag, "TRCK"), "/", 2)[0]); err == nil {
		t.TrackNumber = n
	}
	if y := id3tag.Year(); len(y) >= 4 {
		if n, err := strconv.Atoi(y[:4]); err == nil {
			t.Year = n
		}
	}
	return t, nil
}

func getID3TextFrame(t *id3v2.Tag, id string) string {
	if f, ok := t.GetLastFrame(id).(id3v2.TextFrame); ok {
		return strings.TrimSpace(f.Text)
	}
	return ""
}
