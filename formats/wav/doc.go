// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes integer PCM WAV files.
//
// Decoding is built on github.com/go-audio/wav. The decoder accepts 16, 24
// and 32-bit PCM (plain or WAVE_FORMAT_EXTENSIBLE), skips chunks it does not
// know about and streams the data chunk as float32 samples in [-1, 1]:
//
//	f, _ := os.Open("voice.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// There are two writers. Encode goes through the go-audio encoder and keeps
// the caller's bit depth, but it needs an io.WriteSeeker because the RIFF
// sizes are patched on close. WriteWAV16 computes the header up front and
// works on any io.Writer, which makes it the choice for pipes and stdin of
// external encoders:
//
//	err := wav.WriteWAV16(stdin, 44100, 2, interleaved)
//
// Errors are sentinel values (ErrNotWavFile, ErrOnlyPCMSupported,
// ErrUnsupportedBitDepth, ErrUnsupportedWavLayout, ErrInvalidChannels) and
// may be wrapped, so compare them with errors.Is.
package wav
