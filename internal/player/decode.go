package player

import (
	"io"
	"os"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
)

func isSupported(ext string) bool {
	return ext == extMP3 || ext == extFLAC || ext == extWAV
}

func decode(f *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext {
	case extMP3:
		return decodeGoMP3(f)
	case extFLAC:
		// Some taggers prepend ID3v2 to FLAC files
		if err := skipID3v2(f); err != nil {
			return nil, beep.Format{}, err
		}
		return flac.Decode(f)
	default:
		return wav.Decode(f)
	}
}

// skipID3v2 positions r after an ID3v2 tag, or at the start if there is none.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && n == 0 && err != io.EOF {
		return err
	}
	if n < len(header) || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Size is a syncsafe integer in bytes 6-9 (7 bits per byte)
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
