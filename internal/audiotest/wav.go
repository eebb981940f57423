// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// WAVBytes builds a canonical 44-byte-header PCM 16-bit WAV file.
func WAVBytes(sampleRate, channels int, samples []int16) []byte {
	buf := new(bytes.Buffer)

	blockAlign := uint16(channels * 2)
	dataSize := uint32(len(samples) * 2)

	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate)*uint32(blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, blockAlign)
	_ = binary.Write(buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, dataSize)
	_ = binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

// SineInt16 renders frames of an amp-scaled sine, copied to every channel.
func SineInt16(sampleRate, channels, frames int, frequency, amp float64) []int16 {
	out := make([]int16, frames*channels)
	for i := range frames {
		v := int16(math.Round(Sine(i, sampleRate, frequency, amp) * 32767))
		for c := range channels {
			out[i*channels+c] = v
		}
	}
	return out
}

// WriteWAV writes samples as a 16-bit WAV into dir and returns its path.
func WriteWAV(tb testing.TB, dir, name string, sampleRate, channels int, samples []int16) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, WAVBytes(sampleRate, channels, samples), 0o600); err != nil {
		tb.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}

// WriteBeep writes the canonical test fixture: 500 ms of a 440 Hz tone at
// half amplitude, 44.1 kHz mono.
func WriteBeep(tb testing.TB, dir string) string {
	tb.Helper()

	const rate = 44100
	return WriteWAV(tb, dir, "beep.wav", rate, 1, SineInt16(rate, 1, rate/2, 440, 0.5))
}
