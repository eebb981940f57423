// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

const (
	defaultReadSize = 4096
	maxEmptyReads   = 8
)

// ReadAll drains src and returns every interleaved sample it produced.
// The source is not closed.
//
// bufferSize is rounded down to a multiple of the channel count; values
// smaller than one frame fall back to src.BufSize() or 4096.
func ReadAll(src Source, bufferSize int) ([]float32, error) {
	channels := max(src.Channels(), 1)

	if bufferSize < channels {
		bufferSize = src.BufSize()
	}
	if bufferSize < channels {
		bufferSize = defaultReadSize
	}
	bufferSize -= bufferSize % channels
	if bufferSize == 0 {
		bufferSize = channels
	}

	var out []float32
	buf := make([]float32, bufferSize)
	empty := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
		if n > 0 {
			empty = 0
			continue
		}
		// A source that keeps returning neither data nor EOF would spin forever.
		empty++
		if empty >= maxEmptyReads {
			return out, fmt.Errorf("reading samples: %w", io.ErrNoProgress)
		}
	}

	return out, nil
}
