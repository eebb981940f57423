// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audtools/audio"
)

// ErrNotMP3File is returned when no MPEG audio frame header can be parsed.
var ErrNotMP3File = errors.New("not an MP3 file")

// go-mp3 always renders 16-bit little-endian stereo.
const (
	channels       = 2
	bytesPerSample = 2
)

// frameReader is the part of gomp3.Decoder the source needs.
type frameReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        frameReader
	sampleRate int
	buf        []byte
	// pending holds a trailing odd byte from the previous Read.
	pending []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) BitDepth() int   { return 16 }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerSample }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	off := copy(s.buf, s.pending)
	s.pending = s.pending[:0]

	n, err := s.dec.Read(s.buf[off:])
	n += off

	samples := n / bytesPerSample
	if rest := n % bytesPerSample; rest != 0 {
		s.pending = append(s.pending, s.buf[n-rest:n]...)
	}

	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))
		dst[i] = float32(v) / 32768
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return samples, fmt.Errorf("decoding MP3 frame: %w", err)
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
