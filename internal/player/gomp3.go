package player

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// mp3Stream adapts llehouerou/go-mp3 to beep.StreamSeekCloser.
type mp3Stream struct {
	decoder *mp3.Decoder
	closer  io.Closer
	err     error
	buf     []byte
}

// decodeGoMP3 decodes an MP3 stream. go-mp3 always outputs 16-bit stereo.
func decodeGoMP3(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	decoder, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if decoder.SampleRate() == 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(decoder.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp3Stream{decoder: decoder, closer: rc, buf: make([]byte, 8192)}, format, nil
}

func (s *mp3Stream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}

	need := len(samples) * 4
	if len(s.buf) < need {
		s.buf = make([]byte, need)
	}

	read, err := io.ReadFull(s.decoder, s.buf[:need])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = err
		return 0, false
	}

	n = read / 4
	if n == 0 {
		return 0, false
	}
	for i := range n {
		off := i * 4
		left := int16(binary.LittleEndian.Uint16(s.buf[off:]))    //nolint:gosec // audio samples
		right := int16(binary.LittleEndian.Uint16(s.buf[off+2:])) //nolint:gosec // audio samples
		samples[i][0] = float64(left) / 32768.0
		samples[i][1] = float64(right) / 32768.0
	}
	return n, true
}

func (s *mp3Stream) Err() error { return s.err }

func (s *mp3Stream) Len() int {
	return int(max(s.decoder.SampleCount(), 0))
}

func (s *mp3Stream) Position() int {
	return int(s.decoder.SamplePosition())
}

func (s *mp3Stream) Seek(p int) error {
	p = min(max(p, 0), s.Len())
	if err := s.decoder.SeekToSample(int64(p)); err != nil {
		return err
	}
	s.err = nil
	return nil
}

func (s *mp3Stream) Close() error { return s.closer.Close() }
