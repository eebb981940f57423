// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 renders every file as 16-bit stereo, so the returned source always
// reports two channels; mono files come out with the channel duplicated.
// Mix down with audio.NewMonoMixer when a single channel is needed.
package mp3
