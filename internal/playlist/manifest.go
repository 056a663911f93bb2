package playlist

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed manifest.toml
var defaultManifest string

// DefaultExt is used for entries that do not name an extension.
const DefaultExt = "mp3"

// Entry is one [[track]] table of a manifest.
type Entry struct {
	Resource string `toml:"resource"`
	Ext      string `toml:"ext"`
	Track    string `toml:"track"`
	Album    string `toml:"album"`
	Artist   string `toml:"artist"`
	Artwork  string `toml:"artwork"`
}

// Manifest lists the tracks of the playlist in playback order.
type Manifest struct {
	Tracks []Entry `toml:"track"`
}

// ParseManifest decodes a TOML manifest. Unknown keys are rejected.
func ParseManifest(data string) (Manifest, error) {
	m, err := decodeManifest(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}

// ReadManifest decodes the TOML manifest at path like ParseManifest.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest %s: %w", path, err)
	}
	m, err := decodeManifest(string(data))
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return m, nil
}

func decodeManifest(data string) (Manifest, error) {
	var m Manifest
	md, err := toml.Decode(data, &m)
	if err != nil {
		return Manifest{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Manifest{}, fmt.Errorf("unknown keys %v", undecoded)
	}
	m.normalize()
	return m, nil
}

// DefaultManifest returns the manifest bundled with the binary.
func DefaultManifest() Manifest {
	m, err := ParseManifest(defaultManifest)
	if err != nil {
		// The embedded file is part of the build.
		panic(err)
	}
	return m
}

func (m *Manifest) normalize() {
	for i := range m.Tracks {
		e := &m.Tracks[i]
		e.Resource = strings.TrimSpace(e.Resource)
		e.Ext = strings.TrimPrefix(strings.TrimSpace(e.Ext), ".")
		if e.Ext == "" {
			e.Ext = DefaultExt
		}
	}
}
