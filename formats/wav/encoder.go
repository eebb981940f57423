// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/audtools/utils"
)

// Encode writes interleaved float samples in [-1, 1] as integer PCM at
// bitDepth (16, 24 or 32). The header sizes are patched on close, so w
// must be seekable.
func Encode[T float32 | float64](w io.WriteSeeker, sampleRate, channels, bitDepth int, samples []T) error {
	if channels < 1 || len(samples)%channels != 0 {
		return ErrInvalidChannels
	}
	switch bitDepth {
	case 16, 24, 32:
	default:
		return ErrUnsupportedBitDepth
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = utils.FloatToInt(float64(s), bitDepth)
	}

	enc := gowav.NewEncoder(w, sampleRate, bitDepth, channels, formatPCM)

	buf := &goaudio.IntBuffer{
		Data: data,
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("encoding WAV: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing WAV: %w", err)
	}

	return nil
}
