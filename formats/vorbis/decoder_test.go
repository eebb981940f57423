// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// fakeOgg mimics oggvorbis.Reader: Read fills whole frames and returns the
// number of values written.
type fakeOgg struct {
	rate     int
	channels int
	data     []float32
	maxRead  int
	err      error
}

func (f *fakeOgg) SampleRate() int { return f.rate }
func (f *fakeOgg) Channels() int   { return f.channels }

func (f *fakeOgg) Read(p []float32) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if len(f.data) == 0 {
		return 0, io.EOF
	}

	n := min(len(p), len(f.data))
	if f.maxRead > 0 {
		n = min(n, f.maxRead)
	}
	n -= n % f.channels
	copy(p, f.data[:n])
	f.data = f.data[n:]

	return n, nil
}

func newSource(f *fakeOgg) *source {
	return &source{dec: f, sampleRate: f.rate, channels: f.channels, bufSize: 1024 * f.channels}
}

func TestDecoder_RejectsNonVorbis(t *testing.T) {
	t.Parallel()

	inputs := map[string][]byte{
		"text":  []byte("This is not an Ogg stream"),
		"empty": {},
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(data)); !errors.Is(err, ErrNotVorbisFile) {
				t.Errorf("Decode() error = %v, want ErrNotVorbisFile", err)
			}
		})
	}
}

func TestSource_ReadSamples_CountsValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		maxRead  int
		dstSize  int
	}{
		{"mono", 1, 0, 16},
		{"stereo", 2, 0, 16},
		{"stereo short reads", 2, 4, 16},
		{"5.1 odd destination", 6, 0, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := make([]float32, 24*tt.channels)
			for i := range data {
				data[i] = float32(i) / float32(len(data))
			}

			s := newSource(&fakeOgg{rate: 48000, channels: tt.channels, data: append([]float32(nil), data...), maxRead: tt.maxRead})

			var got []float32
			dst := make([]float32, tt.dstSize)
			for range 1000 {
				n, err := s.ReadSamples(dst)
				if n%tt.channels != 0 {
					t.Fatalf("ReadSamples() returned %d values, not a whole frame count", n)
				}
				got = append(got, dst[:n]...)
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}

			if len(got) != len(data) {
				t.Fatalf("read %d values, want %d", len(got), len(data))
			}
			for i := range data {
				if got[i] != data[i] {
					t.Fatalf("value %d = %v, want %v", i, got[i], data[i])
				}
			}
		})
	}
}

func TestSource_ReadSamples_ShorterThanFrame(t *testing.T) {
	t.Parallel()

	s := newSource(&fakeOgg{rate: 44100, channels: 2, data: []float32{1, 2}})

	if n, err := s.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples() = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSource_ReadSamples_DecoderError(t *testing.T) {
	t.Parallel()

	s := newSource(&fakeOgg{rate: 44100, channels: 2, err: io.ErrUnexpectedEOF})

	if _, err := s.ReadSamples(make([]float32, 8)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want wrapped io.ErrUnexpectedEOF", err)
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	s := newSource(&fakeOgg{rate: 32000, channels: 2})

	if s.SampleRate() != 32000 || s.Channels() != 2 {
		t.Errorf("format = %d Hz x%d, want 32000 Hz x2", s.SampleRate(), s.Channels())
	}
	if s.BufSize() != 2048 {
		t.Errorf("BufSize() = %d, want 2048", s.BufSize())
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
