// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"errors"

	"go.uber.org/zap"
)

var errDisabled = errors.New("disabled")

type options struct {
	log        *zap.Logger
	openCodec  func(*options) (Codec, error)
	openRaw    func(*options) (RawIO, error)
	ffmpegPath string
	noFFmpeg   bool
}

// Option configures a Processor.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithCodec replaces the codec provider. nil disables it.
func WithCodec(c Codec) Option {
	return func(o *options) {
		o.openCodec = func(*options) (Codec, error) {
			if c == nil {
				return nil, errDisabled
			}
			return c, nil
		}
	}
}

// WithRawIO replaces the raw provider. nil disables it.
func WithRawIO(r RawIO) Option {
	return func(o *options) {
		o.openRaw = func(*options) (RawIO, error) {
			if r == nil {
				return nil, errDisabled
			}
			return r, nil
		}
	}
}

// WithFFmpegPath points the default codec at a specific ffmpeg binary
// instead of searching PATH.
func WithFFmpegPath(path string) Option {
	return func(o *options) { o.ffmpegPath = path }
}

// WithoutFFmpeg keeps the default codec to its built-in decoders and the
// WAV and AIFF encoders.
func WithoutFFmpeg() Option {
	return func(o *options) { o.noFFmpeg = true }
}

func defaultCodec(o *options) (Codec, error) {
	opts := []CodecOption{withCodecLogger(o.log)}

	if !o.noFFmpeg {
		bin, err := lookupFFmpeg(o.ffmpegPath)
		if err != nil {
			o.log.Debug("ffmpeg not available, lossy formats disabled", zap.Error(err))
		} else {
			opts = append(opts, WithFFmpegBinary(bin))
		}
	}

	return NewFileCodec(opts...), nil
}

func defaultRaw(*options) (RawIO, error) {
	return NewFileRawIO(), nil
}
