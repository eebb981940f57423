// SPDX-License-Identifier: EPL-2.0

// Package aiff reads and writes AIFF files with github.com/go-audio/aiff.
//
// Decoder accepts 8, 16, 24 and 32-bit PCM and streams it as float32 in
// [-1, 1]. Encode writes 16, 24 or 32-bit PCM to a seekable writer.
//
//	f, _ := os.Create("tone.aiff")
//	defer f.Close()
//	err := aiff.Encode(f, 44100, 1, 16, samples)
package aiff
