// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
//
// Samples arrive as interleaved float32 in [-1, 1] at the stream's native
// rate and channel count. Vorbis is lossy and has no bit depth; consumers
// that need one (encoders) should assume 16.
package vorbis
