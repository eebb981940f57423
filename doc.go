// SPDX-License-Identifier: EPL-2.0

// Package audtools is a small toolbox for audio files: cutting clips,
// cleaning up background noise, repeating content and generating test
// tones.
//
// The work is split across subpackages:
//
//   - processor: load, trim and export audio through whichever backend is
//     available. The codec backend decodes WAV, MP3, Ogg Vorbis and AIFF
//     natively and everything else through ffmpeg; the raw backend reads
//     and writes uncompressed WAV and AIFF as plain sample buffers.
//   - denoise: stationary spectral noise gating.
//   - audio: the streaming Source pipeline (resampling, mono mixing).
//   - formats/...: per-format decoders and encoders.
//
// The audtools command in cmd/audtools exposes all of it on the command
// line. For the common case of cutting one file, TrimFile is enough:
//
//	end := 9000
//	out, err := audtools.TrimFile("talk.wav", "clip.wav", 1500, &end)
package audtools
