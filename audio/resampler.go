// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audtools/utils"
)

// Resampler streams from src to a target sample rate using Catmull-Rom
// interpolation over a four frame window. Channel count is preserved and a
// one-pole low-pass runs ahead of the interpolator when downsampling.
type Resampler struct {
	src      Source
	dstRate  float64
	ratio    float64 // source frames per output frame
	channels int

	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float32
	hasFrame [4]bool
	primed   bool

	// fractional position between frames[1] and frames[2]
	pos float64

	srcBuf []float32
	eof    bool
	seeded bool

	useFilter   bool
	filterAlpha float32
	filterState []float32
}

// NewResampler wraps src so it reads at dstRate. dstRate must be positive.
func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     float64(dstRate),
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, channels),
		useFilter:   ratio > 1.0,
		filterAlpha: 0.5,
		filterState: make([]float32, channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

// BitDepth forwards the bit depth of the wrapped source.
func (r *Resampler) BitDepth() int { return BitDepthOf(r.src) }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// readFrame reads one frame into dst and reports whether one was available.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.srcBuf)
	got := n > 0
	if got {
		copy(dst, r.srcBuf[:n])
		if r.useFilter {
			// Seed the filter with the first frame to avoid a warm-up transient.
			if !r.seeded {
				copy(r.filterState, dst)
				r.seeded = true
			}
			for c := range r.channels {
				dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
				r.filterState[c] = dst[c]
			}
		}
	}

	if err == io.EOF {
		r.eof = true
		return got, nil
	}
	if err != nil {
		return got, fmt.Errorf("reading source frame: %w", err)
	}

	return got, nil
}

// prime places the first source frame at t0 and duplicates it into t-1.
func (r *Resampler) prime() error {
	r.primed = true

	got, err := r.readFrame(r.frames[1])
	if err != nil {
		return err
	}
	if !got {
		return io.EOF
	}
	copy(r.frames[0], r.frames[1])
	r.hasFrame[0], r.hasFrame[1] = true, true

	for i := 2; i < len(r.frames); i++ {
		if r.hasFrame[i], err = r.readFrame(r.frames[i]); err != nil {
			return err
		}
	}

	return nil
}

// shift advances the window by one source frame. It returns io.EOF once t0
// would move past the last frame.
func (r *Resampler) shift() error {
	if !r.hasFrame[2] {
		return io.EOF
	}

	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.hasFrame[0], r.hasFrame[1], r.hasFrame[2] = r.hasFrame[1], r.hasFrame[2], r.hasFrame[3]

	got, err := r.readFrame(r.frames[3])
	if err != nil {
		return err
	}
	r.hasFrame[3] = got && r.hasFrame[2]

	return nil
}

// ReadSamples produces dst samples at the target rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
			r.pos -= 1.0
		}

		alpha := float32(r.pos)
		for c := range r.channels {
			y1 := r.frames[1][c]
			y2 := y1
			if r.hasFrame[2] {
				y2 = r.frames[2][c]
			}
			y3 := y2
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}
			dst[written*r.channels+c] = utils.CubicInterpolate(r.frames[0][c], y1, y2, y3, alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
