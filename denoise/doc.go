// SPDX-License-Identifier: EPL-2.0

// Package denoise removes stationary background noise by spectral gating.
//
// A clip that holds only noise (room tone, hiss, hum) is analysed first: its
// short-time spectrum gives a per-frequency threshold. Each frame of the
// signal is then compared against that threshold and the bins that do not
// rise above it are attenuated. The FFT, window and statistics come from
// gonum.
//
//	clean, err := denoise.Reduce(voice, voice[:rate], denoise.DefaultStrength)
package denoise
