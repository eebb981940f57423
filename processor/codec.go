// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/audtools/audio"
	"github.com/ik5/audtools/formats/aiff"
	"github.com/ik5/audtools/formats/mp3"
	"github.com/ik5/audtools/formats/vorbis"
	"github.com/ik5/audtools/formats/wav"
	"github.com/ik5/audtools/utils"
	"go.uber.org/zap"
)

// Codec decodes container formats into segments and encodes them back.
type Codec interface {
	Decode(path string) (*Segment, error)
	// Encode writes seg to path. An empty format is taken from the
	// extension of path.
	Encode(seg *Segment, path, format string) error
	// CanEncode reports whether Encode can produce format at all.
	CanEncode(format string) bool
}

// DefaultRegistry returns a registry with every built-in decoder.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	return r
}

// FileCodec decodes with the built-in decoders and hands anything else to
// ffmpeg, when one was found.
type FileCodec struct {
	registry *audio.Registry
	ffmpeg   string
	log      *zap.Logger
}

// CodecOption configures a FileCodec.
type CodecOption func(*FileCodec)

// WithRegistry replaces the built-in decoder registry.
func WithRegistry(r *audio.Registry) CodecOption {
	return func(c *FileCodec) { c.registry = r }
}

// WithFFmpegBinary sets a resolved ffmpeg path. An empty path disables the
// ffmpeg fallback.
func WithFFmpegBinary(path string) CodecOption {
	return func(c *FileCodec) { c.ffmpeg = path }
}

func withCodecLogger(l *zap.Logger) CodecOption {
	return func(c *FileCodec) { c.log = l }
}

// NewFileCodec builds a codec over DefaultRegistry with no ffmpeg fallback
// unless WithFFmpegBinary is given.
func NewFileCodec(opts ...CodecOption) *FileCodec {
	c := &FileCodec{
		registry: DefaultRegistry(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FFmpeg returns the ffmpeg binary in use, or "".
func (c *FileCodec) FFmpeg() string { return c.ffmpeg }

func (c *FileCodec) Decode(path string) (*Segment, error) {
	format := audio.FormatOf(path)

	dec, ok := c.registry.Get(format)
	if !ok {
		if c.ffmpeg == "" {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
		}
		return c.decodeFFmpeg(path)
	}

	seg, err := decodeFile(dec, path)
	if err == nil {
		return seg, nil
	}
	if c.ffmpeg == "" {
		return nil, err
	}

	c.log.Debug("built-in decoder failed, retrying with ffmpeg",
		zap.String("path", path),
		zap.String("format", format),
		zap.Error(err),
	)

	return c.decodeFFmpeg(path)
}

func decodeFile(dec audio.Decoder, path string) (*Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return decodeSegment(dec, f)
}

func decodeSegment(dec audio.Decoder, r io.Reader) (*Segment, error) {
	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	defer src.Close()

	data, err := audio.ReadAll(src, 0)
	if err != nil {
		return nil, err
	}

	return NewSegment(data, src.SampleRate(), src.Channels(), audio.BitDepthOf(src)), nil
}

func (c *FileCodec) decodeFFmpeg(path string) (*Segment, error) {
	out, err := runFFmpeg(c.ffmpeg, nil, decodeArgs(path)...)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return decodeSegment(wav.Decoder{}, bytes.NewReader(patchStreamedWAV(out)))
}

func (c *FileCodec) Encode(seg *Segment, path, format string) error {
	if seg == nil {
		return ErrUnsupportedType
	}

	target := format
	if target == "" {
		target = audio.FormatOf(path)
	}

	switch target {
	case "wav", "wave":
		return writeFile(path, func(f *os.File) error {
			return wav.Encode(f, seg.rate, seg.channels, encodeDepth(seg.bitDepth), seg.samples)
		})
	case "aif", "aiff":
		return writeFile(path, func(f *os.File) error {
			return aiff.Encode(f, seg.rate, seg.channels, encodeDepth(seg.bitDepth), seg.samples)
		})
	}

	if c.ffmpeg == "" {
		return fmt.Errorf("%w: %q (ffmpeg not found)", ErrEncoderUnavailable, target)
	}

	pcm := make([]int16, len(seg.samples))
	for i, s := range seg.samples {
		pcm[i] = int16(utils.FloatToInt(float64(s), 16))
	}

	var in bytes.Buffer
	if err := wav.WriteWAV16(&in, seg.rate, seg.channels, pcm); err != nil {
		return err
	}

	c.log.Debug("encoding with ffmpeg",
		zap.String("path", path),
		zap.String("format", target),
	)

	if _, err := runFFmpeg(c.ffmpeg, in.Bytes(), encodeArgs(path, format)...); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	return nil
}

func (c *FileCodec) CanEncode(format string) bool {
	if format == "" {
		return false
	}
	return isPCMFormat(format) || c.ffmpeg != ""
}

// encodeDepth maps a source bit depth to one the PCM encoders accept.
func encodeDepth(bitDepth int) int {
	switch bitDepth {
	case 24, 32:
		return bitDepth
	default:
		return 16
	}
}

// writeFile creates path, runs write on it and reports the first error of
// the write or the close.
func writeFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	return write(f)
}
