// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ik5/audtools/audio"
	"go.uber.org/zap"
)

// Backend names the provider Load decodes with.
type Backend int

const (
	BackendNone Backend = iota
	BackendCodec
	BackendRaw
)

func (b Backend) String() string {
	switch b {
	case BackendCodec:
		return "codec"
	case BackendRaw:
		return "raw"
	default:
		return "none"
	}
}

// Processor loads, trims and exports audio through whichever providers were
// available when it was built. It holds no mutable state and is safe for
// concurrent use.
type Processor struct {
	codec Codec
	raw   RawIO
	log   *zap.Logger
}

// New opens both providers once. A provider that fails to open is
// recorded as absent; New itself never fails.
func New(opts ...Option) *Processor {
	o := &options{
		log:       zap.NewNop(),
		openCodec: defaultCodec,
		openRaw:   defaultRaw,
	}
	for _, opt := range opts {
		opt(o)
	}

	p := &Processor{log: o.log}

	if c, err := o.openCodec(o); err != nil {
		o.log.Debug("codec provider unavailable", zap.Error(err))
	} else {
		p.codec = c
	}

	if r, err := o.openRaw(o); err != nil {
		o.log.Debug("raw provider unavailable", zap.Error(err))
	} else {
		p.raw = r
	}

	p.log.Debug("audio processor ready", zap.Stringer("backend", p.Backend()))

	return p
}

// Backend reports the provider Load will use.
func (p *Processor) Backend() Backend {
	switch {
	case p.codec != nil:
		return BackendCodec
	case p.raw != nil:
		return BackendRaw
	default:
		return BackendNone
	}
}

// Load decodes path with the codec provider when present, else the raw one.
func (p *Processor) Load(path string) (Handle, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	switch {
	case p.codec != nil:
		seg, err := p.codec.Decode(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		p.log.Debug("loaded segment",
			zap.String("path", path),
			zap.Int("rate", seg.SampleRate()),
			zap.Int("channels", seg.Channels()),
			zap.Float64("duration_ms", seg.DurationMs()),
		)
		return seg, nil

	case p.raw != nil:
		s, err := p.raw.Read(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		p.log.Debug("loaded samples",
			zap.String("path", path),
			zap.Int("rate", s.Rate),
			zap.Int("frames", s.Frames()),
		)
		return s, nil

	default:
		return nil, ErrBackendUnavailable
	}
}

// Trim returns the part of h between startMs and endMs as a new handle of
// the same kind. A nil endMs means the end of the audio. Offsets map to
// frames by rounding, are clamped to the audio and an empty window yields
// empty audio. h is never modified.
func (p *Processor) Trim(h Handle, startMs int, endMs *int) (Handle, error) {
	switch v := h.(type) {
	case *Segment:
		if v == nil {
			return nil, ErrUnsupportedType
		}
		lo, hi := frameRange(startMs, endMs, v.rate, v.Frames())
		return v.frames(lo, hi), nil

	case *Samples:
		if v == nil {
			return nil, ErrUnsupportedType
		}
		lo, hi := frameRange(startMs, endMs, v.Rate, v.Frames())
		return v.Slice(lo, hi), nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, h)
	}
}

// Export writes h to outPath, creating missing parent directories, and
// returns outPath. An empty format is inferred from the extension. Existing
// files are overwritten.
func (p *Processor) Export(h Handle, outPath, format string) (string, error) {
	var write func() error

	switch v := h.(type) {
	case *Segment:
		if v == nil {
			return "", ErrUnsupportedType
		}
		if p.codec == nil {
			return "", ErrBackendUnavailable
		}
		write = func() error { return p.codec.Encode(v, outPath, format) }

	case *Samples:
		if v == nil {
			return "", ErrUnsupportedType
		}
		if p.raw == nil {
			return "", ErrBackendUnavailable
		}
		target := format
		if target == "" {
			target = audio.FormatOf(outPath)
		}
		write = func() error { return p.raw.Write(v, outPath, target) }

	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedType, h)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	if err := write(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	p.log.Debug("exported audio",
		zap.String("path", outPath),
		zap.Stringer("kind", h.Kind()),
		zap.Float64("duration_ms", h.DurationMs()),
	)

	return outPath, nil
}

// CanEncode reports whether Export can write audio from Load in format.
func (p *Processor) CanEncode(format string) bool {
	switch p.Backend() {
	case BackendCodec:
		return p.codec.CanEncode(format)
	case BackendRaw:
		return isPCMFormat(format)
	default:
		return false
	}
}

// Resample converts h to rate with the cubic resampler, keeping its kind.
func (p *Processor) Resample(h Handle, rate int) (Handle, error) {
	if rate <= 0 {
		return nil, ErrInvalidRate
	}

	src, err := sourceOf(h)
	if err != nil {
		return nil, err
	}

	data, err := audio.ReadAll(audio.NewResampler(src, rate), 0)
	if err != nil {
		return nil, fmt.Errorf("resampling to %d Hz: %w", rate, err)
	}

	if seg, ok := h.(*Segment); ok {
		return NewSegment(data, rate, seg.channels, seg.bitDepth), nil
	}

	return &Samples{Data: widen(data), Channels: h.NumChannels(), Rate: rate}, nil
}

// Repeat returns h played n times back to back.
func (p *Processor) Repeat(h Handle, n int) (Handle, error) {
	if n < 1 {
		return nil, ErrInvalidRepeat
	}

	switch v := h.(type) {
	case *Segment:
		if v != nil {
			return v.Repeat(n), nil
		}
	case *Samples:
		if v != nil {
			return v.Repeat(n), nil
		}
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, h)
}

// Mono mixes h down to a single channel.
func (p *Processor) Mono(h Handle) (*Samples, error) {
	src, err := sourceOf(h)
	if err != nil {
		return nil, err
	}

	data, err := audio.ReadAll(audio.NewMonoMixer(src), 0)
	if err != nil {
		return nil, fmt.Errorf("mixing to mono: %w", err)
	}

	return &Samples{Data: widen(data), Channels: 1, Rate: h.SampleRate()}, nil
}

// Like wraps s in the same kind as h, so it exports through the same
// provider. A segment keeps the bit depth of h.
func (p *Processor) Like(h Handle, s *Samples) Handle {
	seg, ok := h.(*Segment)
	if !ok || seg == nil {
		return s
	}

	data := make([]float32, len(s.Data))
	for i, v := range s.Data {
		data[i] = float32(v)
	}

	return NewSegment(data, s.Rate, s.NumChannels(), seg.bitDepth)
}

func sourceOf(h Handle) (audio.Source, error) {
	switch v := h.(type) {
	case *Segment:
		if v != nil {
			return v.Source(), nil
		}
	case *Samples:
		if v != nil {
			return v.Source(), nil
		}
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, h)
}

func widen(data []float32) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	return out
}
