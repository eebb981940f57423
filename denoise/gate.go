// SPDX-License-Identifier: EPL-2.0

package denoise

import (
	"math"
	"math/bits"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultStrength is gentle enough to leave speech intact.
	DefaultStrength = 0.15

	DefaultFrameSize = 1024
	DefaultHop       = 256

	// DefaultThreshold is how many standard deviations above the mean
	// noise level a bin must be to count as signal.
	DefaultThreshold = 1.5

	// eps keeps log10 finite on silent bins.
	eps = 1e-10
)

// Gate is a stationary spectral noise gate. The zero value is not usable;
// build one with New.
type Gate struct {
	frameSize int
	hop       int
	threshold float64
}

// Option configures a Gate.
type Option func(*Gate)

// WithFrameSize sets the STFT frame length and hop, in samples.
func WithFrameSize(frameSize, hop int) Option {
	return func(g *Gate) {
		g.frameSize = frameSize
		g.hop = hop
	}
}

// WithThreshold sets the per-bin threshold in noise standard deviations.
func WithThreshold(nStd float64) Option {
	return func(g *Gate) { g.threshold = nStd }
}

func New(opts ...Option) (*Gate, error) {
	g := &Gate{
		frameSize: DefaultFrameSize,
		hop:       DefaultHop,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.frameSize < 4 || bits.OnesCount(uint(g.frameSize)) != 1 ||
		g.hop < 1 || g.frameSize%g.hop != 0 || g.hop > g.frameSize/2 {
		return nil, ErrInvalidFrameSize
	}

	return g, nil
}

// Reduce attenuates every time-frequency bin of signal that stays under the
// noise profile's threshold. strength is the fraction removed from those
// bins: 0 returns the input, 1 silences them. signal and noise are mono
// samples at the same rate; the result has the length of signal.
func Reduce(signal, noise []float64, strength float64) ([]float64, error) {
	g, err := New()
	if err != nil {
		return nil, err
	}
	return g.Reduce(signal, noise, strength)
}

// ValidateStrength reports ErrInvalidStrength unless strength is in [0, 1].
func ValidateStrength(strength float64) error {
	if math.IsNaN(strength) || strength < 0 || strength > 1 {
		return ErrInvalidStrength
	}
	return nil
}

func (g *Gate) Reduce(signal, noise []float64, strength float64) ([]float64, error) {
	switch {
	case len(signal) == 0:
		return nil, ErrEmptySignal
	case len(noise) == 0:
		return nil, ErrEmptyNoiseProfile
	}
	if err := ValidateStrength(strength); err != nil {
		return nil, err
	}

	n := g.frameSize
	fft := fourier.NewFFT(n)
	win := hann(n)
	thresh := g.noiseThreshold(fft, win, noise)

	// Pad a full frame on both sides so every input sample is covered by
	// frameSize/hop windows.
	frames := (len(signal)+n+g.hop-1)/g.hop + 1
	total := (frames-1)*g.hop + n

	padded := make([]float64, total)
	copy(padded[n:], signal)

	out := make([]float64, total)
	norm := make([]float64, total)

	bins := n/2 + 1
	frame := make([]float64, n)
	coeffs := make([]complex128, bins)
	keep := make([]float64, bins)

	for f := range frames {
		start := f * g.hop

		for i := range n {
			frame[i] = padded[start+i] * win[i]
		}
		coeffs = fft.Coefficients(coeffs, frame)

		for k, c := range coeffs {
			keep[k] = 0
			if decibels(c) > thresh[k] {
				keep[k] = 1
			}
		}

		for k := range coeffs {
			// Dilate the signal mask by one bin to keep window leakage.
			m := keep[k]
			if k > 0 {
				m = max(m, keep[k-1])
			}
			if k < bins-1 {
				m = max(m, keep[k+1])
			}
			coeffs[k] *= complex(1-strength*(1-m), 0)
		}

		frame = fft.Sequence(frame, coeffs)

		for i := range n {
			out[start+i] += frame[i] / float64(n) * win[i]
			norm[start+i] += win[i] * win[i]
		}
	}

	result := make([]float64, len(signal))
	for i := range result {
		if w := norm[n+i]; w > eps {
			result[i] = out[n+i] / w
		}
	}

	return result, nil
}

// noiseThreshold returns mean + threshold*std of the noise spectrum in dB,
// per bin.
func (g *Gate) noiseThreshold(fft *fourier.FFT, win, noise []float64) []float64 {
	n := g.frameSize
	if len(noise) < n {
		noise = append(append(make([]float64, 0, n), noise...), make([]float64, n-len(noise))...)
	}

	bins := n/2 + 1
	frames := (len(noise)-n)/g.hop + 1

	db := make([][]float64, bins)
	for k := range db {
		db[k] = make([]float64, frames)
	}

	frame := make([]float64, n)
	coeffs := make([]complex128, bins)

	for f := range frames {
		start := f * g.hop
		for i := range n {
			frame[i] = noise[start+i] * win[i]
		}
		coeffs = fft.Coefficients(coeffs, frame)
		for k, c := range coeffs {
			db[k][f] = decibels(c)
		}
	}

	thresh := make([]float64, bins)
	for k, v := range db {
		mean, std := stat.MeanStdDev(v, nil)
		if math.IsNaN(std) || math.IsInf(std, 0) {
			std = 0
		}
		thresh[k] = mean + g.threshold*std
	}

	return thresh
}

func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return window.Hann(w)
}

func decibels(c complex128) float64 {
	return 20 * math.Log10(math.Hypot(real(c), imag(c))+eps)
}
