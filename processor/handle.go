// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"io"
	"math"

	"github.com/ik5/audtools/audio"
)

// Kind names the representation behind a Handle.
type Kind int

const (
	KindSegment Kind = iota + 1
	KindSamples
)

func (k Kind) String() string {
	switch k {
	case KindSegment:
		return "segment"
	case KindSamples:
		return "samples"
	default:
		return "unknown"
	}
}

// Handle is loaded audio. The only implementations are *Segment, produced by
// the codec provider, and *Samples, produced by the raw provider.
type Handle interface {
	Kind() Kind
	SampleRate() int
	NumChannels() int
	Frames() int
	DurationMs() float64

	isHandle()
}

var (
	_ Handle = (*Segment)(nil)
	_ Handle = (*Samples)(nil)
)

// msToFrame converts a millisecond offset to a frame index, clamped to
// [0, frames].
func msToFrame(ms, rate, frames int) int {
	// Clamp before converting: huge offsets overflow int.
	f := math.Round(float64(ms) / 1000 * float64(rate))
	switch {
	case f >= float64(frames):
		return frames
	case f <= 0 || math.IsNaN(f):
		return 0
	default:
		return int(f)
	}
}

// frameRange resolves a trim window. A nil end means the whole buffer.
func frameRange(startMs int, endMs *int, rate, frames int) (lo, hi int) {
	lo = msToFrame(startMs, rate, frames)
	hi = frames
	if endMs != nil {
		hi = msToFrame(*endMs, rate, frames)
	}
	if lo >= hi {
		return 0, 0
	}
	return lo, hi
}

func durationMs(frames, rate int) float64 {
	if rate <= 0 {
		return 0
	}
	return float64(frames) / float64(rate) * 1000
}

// Segment is decoded container audio: interleaved float32 samples in
// [-1, 1] together with the bit depth of the source, which the encoder
// keeps on export.
type Segment struct {
	samples  []float32
	rate     int
	channels int
	bitDepth int
}

// NewSegment wraps samples without copying. A bitDepth of 0 means 16.
func NewSegment(samples []float32, rate, channels, bitDepth int) *Segment {
	if bitDepth <= 0 {
		bitDepth = 16
	}
	return &Segment{samples: samples, rate: rate, channels: max(channels, 1), bitDepth: bitDepth}
}

func (*Segment) isHandle()             {}
func (*Segment) Kind() Kind            { return KindSegment }
func (s *Segment) SampleRate() int     { return s.rate }
func (s *Segment) Channels() int       { return s.channels }
func (s *Segment) NumChannels() int    { return s.channels }
func (s *Segment) BitDepth() int       { return s.bitDepth }
func (s *Segment) Frames() int         { return len(s.samples) / s.channels }
func (s *Segment) DurationMs() float64 { return durationMs(s.Frames(), s.rate) }

// Samples returns the interleaved samples. The slice is shared; callers
// must not modify it.
func (s *Segment) Samples() []float32 { return s.samples }

// Slice returns a copy of the audio between two millisecond offsets.
// Offsets are clamped to the segment and an inverted window is empty.
func (s *Segment) Slice(startMs, endMs int) *Segment {
	lo, hi := frameRange(startMs, &endMs, s.rate, s.Frames())
	return s.frames(lo, hi)
}

func (s *Segment) frames(lo, hi int) *Segment {
	out := make([]float32, (hi-lo)*s.channels)
	copy(out, s.samples[lo*s.channels:hi*s.channels])
	return &Segment{samples: out, rate: s.rate, channels: s.channels, bitDepth: s.bitDepth}
}

// Repeat returns the segment played n times back to back.
func (s *Segment) Repeat(n int) *Segment {
	out := make([]float32, 0, len(s.samples)*max(n, 0))
	for range n {
		out = append(out, s.samples...)
	}
	return &Segment{samples: out, rate: s.rate, channels: s.channels, bitDepth: s.bitDepth}
}

// Source streams the segment through the audio pipeline.
func (s *Segment) Source() audio.Source {
	return &memSource{data: s.samples, rate: s.rate, channels: s.channels, bitDepth: s.bitDepth}
}

// Samples is a raw sample buffer: interleaved float64 values in [-1, 1].
type Samples struct {
	Data     []float64
	Channels int
	Rate     int
}

func (*Samples) isHandle()             {}
func (*Samples) Kind() Kind            { return KindSamples }
func (s *Samples) SampleRate() int     { return s.Rate }
func (s *Samples) DurationMs() float64 { return durationMs(s.Frames(), s.Rate) }

// NumChannels reports the channel count, treating zero as mono.
func (s *Samples) NumChannels() int { return max(s.Channels, 1) }

func (s *Samples) Frames() int { return len(s.Data) / s.NumChannels() }

// Slice returns a copy of frames [lo, hi), clamped to the buffer.
func (s *Samples) Slice(lo, hi int) *Samples {
	frames := s.Frames()
	lo = min(max(lo, 0), frames)
	hi = min(max(hi, 0), frames)
	if lo >= hi {
		lo, hi = 0, 0
	}

	ch := s.NumChannels()
	out := make([]float64, (hi-lo)*ch)
	copy(out, s.Data[lo*ch:hi*ch])

	return &Samples{Data: out, Channels: ch, Rate: s.Rate}
}

// Repeat returns the buffer played n times back to back.
func (s *Samples) Repeat(n int) *Samples {
	out := make([]float64, 0, len(s.Data)*max(n, 0))
	for range n {
		out = append(out, s.Data...)
	}
	return &Samples{Data: out, Channels: s.NumChannels(), Rate: s.Rate}
}

// Source streams the buffer through the audio pipeline as float32.
func (s *Samples) Source() audio.Source {
	data := make([]float32, len(s.Data))
	for i, v := range s.Data {
		data[i] = float32(v)
	}
	return &memSource{data: data, rate: s.Rate, channels: s.NumChannels()}
}

// memSource is an audio.Source over an in-memory buffer.
type memSource struct {
	data     []float32
	pos      int
	rate     int
	channels int
	bitDepth int
}

func (m *memSource) SampleRate() int { return m.rate }
func (m *memSource) Channels() int   { return m.channels }
func (m *memSource) BufSize() int    { return 4096 }
func (m *memSource) Close() error    { return nil }

func (m *memSource) BitDepth() int {
	if m.bitDepth == 0 {
		return 16
	}
	return m.bitDepth
}

func (m *memSource) ReadSamples(dst []float32) (int, error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n := copy(dst, m.data[m.pos:])
	m.pos += n
	return n, nil
}
