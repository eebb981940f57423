// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"testing"

	"github.com/ik5/audtools/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "segment", KindSegment.String())
	assert.Equal(t, "samples", KindSamples.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestSegment_Slice(t *testing.T) {
	t.Parallel()

	seg := NewSegment([]float32{0, 1, 2, 3, 4, 5, 6, 7}, 1000, 2, 0)
	assert.Equal(t, 16, seg.BitDepth(), "zero bit depth defaults to 16")
	assert.Equal(t, 4, seg.Frames())

	tests := []struct {
		name       string
		start, end int
		want       []float32
	}{
		{"middle", 1, 3, []float32{2, 3, 4, 5}},
		{"clamped", -5, 100, []float32{0, 1, 2, 3, 4, 5, 6, 7}},
		{"inverted", 3, 1, []float32{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, seg.Slice(tt.start, tt.end).Samples())
		})
	}
}

func TestSamples_ZeroChannelsIsMono(t *testing.T) {
	t.Parallel()

	s := &Samples{Data: []float64{1, 2, 3}, Rate: 1000}
	assert.Equal(t, 3, s.Frames())
	assert.InDelta(t, 3, s.DurationMs(), 1e-9)
	assert.Equal(t, []float64{2, 3}, s.Slice(1, 10).Data)

	var h Handle = s
	assert.Equal(t, 1, h.NumChannels())
}

func TestHandle_ReportsChannels(t *testing.T) {
	t.Parallel()

	for _, h := range []Handle{
		NewSegment(make([]float32, 6), 8000, 2, 16),
		&Samples{Data: make([]float64, 6), Channels: 2, Rate: 8000},
	} {
		assert.Equal(t, 2, h.NumChannels(), h.Kind().String())
		assert.Equal(t, 3, h.Frames(), h.Kind().String())
	}
}

func TestHandleSource(t *testing.T) {
	t.Parallel()

	s := &Samples{Data: []float64{0.5, -0.5, 0.25, -0.25}, Channels: 2, Rate: 8000}
	src := s.Source()

	assert.Equal(t, 2, src.Channels())
	assert.Equal(t, 8000, src.SampleRate())
	assert.Equal(t, 16, audio.BitDepthOf(src))

	got, err := audio.ReadAll(src, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, -0.5, 0.25, -0.25}, got)
	assert.NoError(t, src.Close())
}

func TestDurationMs_ZeroRate(t *testing.T) {
	t.Parallel()

	assert.Zero(t, (&Samples{Data: []float64{1}}).DurationMs())
}
