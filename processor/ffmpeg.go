// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os/exec"
	"strings"
)

// muxers maps file extensions to ffmpeg output format names where the two
// differ.
var muxers = map[string]string{
	"oga":  "ogg",
	"m4a":  "ipod",
	"aac":  "adts",
	"wma":  "asf",
	"aif":  "aiff",
	"wave": "wav",
}

func muxerFor(format string) string {
	if m, ok := muxers[format]; ok {
		return m
	}
	return format
}

// lookupFFmpeg resolves the ffmpeg binary. An empty path searches PATH.
func lookupFFmpeg(path string) (string, error) {
	if path == "" {
		path = "ffmpeg"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", fmt.Errorf("locating ffmpeg: %w", err)
	}
	return resolved, nil
}

// runFFmpeg runs ffmpeg with stdin and returns stdout. stderr is folded into
// the error on failure.
func runFFmpeg(bin string, stdin []byte, args ...string) ([]byte, error) {
	base := []string{"-hide_banner", "-loglevel", "error"}
	if stdin == nil {
		base = append(base, "-nostdin")
	}

	cmd := exec.Command(bin, append(base, args...)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("ffmpeg: %w", err)
		}
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, msg)
	}

	return stdout.Bytes(), nil
}

// decodeArgs converts any input ffmpeg understands to 16-bit WAV on stdout.
func decodeArgs(path string) []string {
	return []string{"-i", path, "-vn", "-f", "wav", "-acodec", "pcm_s16le", "pipe:1"}
}

// encodeArgs reads a WAV from stdin and writes outPath. format, when set,
// picks the muxer; otherwise ffmpeg infers it from the extension.
func encodeArgs(outPath, format string) []string {
	args := []string{"-y", "-f", "wav", "-i", "pipe:0", "-vn"}
	if format != "" {
		args = append(args, "-f", muxerFor(format))
	}
	return append(args, outPath)
}

// patchStreamedWAV fixes the RIFF and data chunk sizes of a WAV that was
// written to a pipe, where ffmpeg cannot seek back to fill them in.
func patchStreamedWAV(b []byte) []byte {
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return b
	}

	binary.LittleEndian.PutUint32(b[4:8], uint32(len(b)-8))

	for off := 12; off+8 <= len(b); {
		id := string(b[off : off+4])
		size := int(binary.LittleEndian.Uint32(b[off+4 : off+8]))

		if id == "data" {
			binary.LittleEndian.PutUint32(b[off+4:off+8], uint32(len(b)-off-8))
			break
		}

		off += 8 + size + size%2
	}

	return b
}
