// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/audtools/internal/audiotest"
)

type stallingSource struct {
	*audiotest.MockSource
}

func (stallingSource) ReadSamples([]float32) (int, error) { return 0, nil }

type failingSource struct {
	*audiotest.MockSource
}

var errBroken = errors.New("broken stream")

func (failingSource) ReadSamples([]float32) (int, error) { return 0, errBroken }

func TestReadAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		channels   int
		frames     int
		bufferSize int
	}{
		{"mono default buffer", 1, 10000, 0},
		{"stereo small buffer", 2, 333, 7},
		{"quad exact buffer", 4, 256, 1024},
		{"empty source", 1, 0, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewMockSource(8000, tt.channels, tt.frames, func(i, c int) float32 {
				return float32(i%100)/100 + float32(c)
			})

			got, err := ReadAll(src, tt.bufferSize)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}

			if len(got) != tt.frames*tt.channels {
				t.Fatalf("ReadAll() len = %d, want %d", len(got), tt.frames*tt.channels)
			}

			for i := 0; i < len(got); i += tt.channels {
				frame := i / tt.channels
				for c := range tt.channels {
					want := float32(frame%100)/100 + float32(c)
					if got[i+c] != want {
						t.Fatalf("sample[%d][%d] = %v, want %v", frame, c, got[i+c], want)
					}
				}
			}
		})
	}
}

func TestReadAll_NoProgress(t *testing.T) {
	t.Parallel()

	src := stallingSource{audiotest.NewSilentSource(8000, 1, 10)}

	if _, err := ReadAll(src, 16); !errors.Is(err, io.ErrNoProgress) {
		t.Errorf("ReadAll() error = %v, want io.ErrNoProgress", err)
	}
}

func TestReadAll_PropagatesError(t *testing.T) {
	t.Parallel()

	src := failingSource{audiotest.NewSilentSource(8000, 1, 10)}

	if _, err := ReadAll(src, 16); !errors.Is(err, errBroken) {
		t.Errorf("ReadAll() error = %v, want %v", err, errBroken)
	}
}
