// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"fmt"
	"os"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/audtools/audio"
	"github.com/ik5/audtools/formats/aiff"
	"github.com/ik5/audtools/formats/wav"
	"github.com/ik5/audtools/utils"
)

// RawIO reads and writes uncompressed files as plain sample buffers.
type RawIO interface {
	Read(path string) (*Samples, error)
	Write(s *Samples, path, format string) error
}

// FileRawIO handles WAV and AIFF and always writes 16-bit PCM.
type FileRawIO struct{}

func NewFileRawIO() FileRawIO { return FileRawIO{} }

// isPCMFormat reports whether format is one FileRawIO can write.
func isPCMFormat(format string) bool {
	switch format {
	case "wav", "wave", "aif", "aiff":
		return true
	default:
		return false
	}
}

func (FileRawIO) Read(path string) (*Samples, error) {
	switch format := audio.FormatOf(path); format {
	case "wav", "wave":
		return readWAV(path)
	case "aif", "aiff":
		return readAIFF(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func readWAV(path string) (*Samples, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	dec := gowav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s: %w", path, wav.ErrNotWavFile)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%s: %w", path, wav.ErrUnsupportedBitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	data := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		data[i] = utils.IntToFloat(v, bitDepth)
	}

	return &Samples{
		Data:     data,
		Channels: buf.Format.NumChannels,
		Rate:     buf.Format.SampleRate,
	}, nil
}

func readAIFF(path string) (*Samples, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	src, err := aiff.Decoder{}.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	data, err := audio.ReadAll(src, 0)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}

	return &Samples{Data: out, Channels: src.Channels(), Rate: src.SampleRate()}, nil
}

func (FileRawIO) Write(s *Samples, path, format string) error {
	if s == nil {
		return ErrUnsupportedType
	}

	switch format {
	case "wav", "wave":
		return writeFile(path, func(f *os.File) error {
			return wav.Encode(f, s.Rate, s.NumChannels(), 16, s.Data)
		})
	case "aif", "aiff":
		return writeFile(path, func(f *os.File) error {
			return aiff.Encode(f, s.Rate, s.NumChannels(), 16, s.Data)
		})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
