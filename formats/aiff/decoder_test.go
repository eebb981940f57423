// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audtools/audio"
)

// fakePCM mimics aiff.Decoder.PCMBuffer over a fixed slice.
type fakePCM struct {
	rate     int
	channels int
	samples  []int
	err      error
}

func (f *fakePCM) Format() *goaudio.Format {
	return &goaudio.Format{SampleRate: f.rate, NumChannels: f.channels}
}

func (f *fakePCM) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if len(f.samples) == 0 {
		return 0, io.EOF
	}

	n := copy(buf.Data, f.samples)
	f.samples = f.samples[n:]

	return n, nil
}

func TestDecoder_RejectsNonAIFF(t *testing.T) {
	t.Parallel()

	inputs := map[string][]byte{
		"text":  []byte("This is not AIFF data"),
		"empty": {},
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(data)); !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
			}
		})
	}
}

func TestSource_ReadSamples_Normalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth int
		in       []int
		want     []float32
	}{
		{8, []int{0, 64, -128}, []float32{0, 0.5, -1}},
		{16, []int{16384, -32768, 0}, []float32{0.5, -1, 0}},
		{24, []int{4194304, -8388608}, []float32{0.5, -1}},
		{32, []int{1073741824, -2147483648}, []float32{0.5, -1}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d-bit", tt.bitDepth), func(t *testing.T) {
			t.Parallel()

			s := &source{
				dec:        &fakePCM{rate: 8000, channels: 1, samples: tt.in},
				sampleRate: 8000,
				channels:   1,
				bitDepth:   tt.bitDepth,
			}

			dst := make([]float32, 16)
			n, err := s.ReadSamples(dst)
			if err != io.EOF {
				t.Errorf("ReadSamples() error = %v, want io.EOF on short read", err)
			}
			if n != len(tt.want) {
				t.Fatalf("ReadSamples() n = %d, want %d", n, len(tt.want))
			}
			for i := range tt.want {
				if dst[i] != tt.want[i] {
					t.Errorf("sample %d = %v, want %v", i, dst[i], tt.want[i])
				}
			}
		})
	}
}

func TestSource_ReadSamples_Streaming(t *testing.T) {
	t.Parallel()

	s := &source{
		dec:        &fakePCM{rate: 8000, channels: 2, samples: []int{1, 2, 3, 4, 5, 6}},
		sampleRate: 8000,
		channels:   2,
		bitDepth:   16,
	}

	dst := make([]float32, 4)
	if n, err := s.ReadSamples(dst); n != 4 || err != nil {
		t.Errorf("first read = (%d, %v), want (4, nil)", n, err)
	}
	if n, err := s.ReadSamples(dst); n != 2 || err != io.EOF {
		t.Errorf("second read = (%d, %v), want (2, EOF)", n, err)
	}
	if n, err := s.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("third read = (%d, %v), want (0, EOF)", n, err)
	}
	if n, err := s.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("empty read = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSource_ReadSamples_DecoderError(t *testing.T) {
	t.Parallel()

	s := &source{dec: &fakePCM{err: io.ErrUnexpectedEOF}, channels: 1, bitDepth: 16}

	if _, err := s.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want wrapped io.ErrUnexpectedEOF", err)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, bitDepth := range []int{16, 24} {
		samples := []float32{0, 0.5, -0.5, 0.25, -1, 0.75}
		path := filepath.Join(t.TempDir(), "tone.aiff")

		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := Encode(f, 22050, 2, bitDepth, samples); err != nil {
			t.Fatalf("Encode(%d-bit) error = %v", bitDepth, err)
		}
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}

		in, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}

		src, err := Decoder{}.Decode(in)
		if err != nil {
			in.Close()
			t.Fatalf("Decode(%d-bit) error = %v", bitDepth, err)
		}

		got, err := audio.ReadAll(src, 0)
		in.Close()
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}

		if src.SampleRate() != 22050 || src.Channels() != 2 || audio.BitDepthOf(src) != bitDepth {
			t.Errorf("format = %d Hz x%d %d-bit, want 22050 Hz x2 %d-bit",
				src.SampleRate(), src.Channels(), audio.BitDepthOf(src), bitDepth)
		}
		if len(got) != len(samples) {
			t.Fatalf("%d-bit: decoded %d samples, want %d", bitDepth, len(got), len(samples))
		}
		for i := range samples {
			if got[i] != samples[i] {
				t.Errorf("%d-bit sample %d = %v, want %v", bitDepth, i, got[i], samples[i])
			}
		}
	}
}

func TestEncode_Validation(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "bad.aiff"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := Encode(f, 8000, 2, 16, []float64{0, 0, 0}); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("Encode() error = %v, want ErrInvalidChannels", err)
	}
	if err := Encode(f, 8000, 1, 20, []float64{0}); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("Encode() error = %v, want ErrUnsupportedBitDepth", err)
	}
}
