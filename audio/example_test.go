// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/audtools/audio"
	"github.com/ik5/audtools/internal/audiotest"
)

// Example_processingChain resamples a stereo tone and folds it to mono.
func Example_processingChain() {
	source := audiotest.NewSineSource(16000, 2, 16000, 440.0) // 1 second stereo

	mono := audio.NewMonoMixer(audio.NewResampler(source, 16000))

	samples, err := audio.ReadAll(mono, 4096)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("Sample rate: %d Hz\n", mono.SampleRate())
	fmt.Printf("Channels: %d\n", mono.Channels())
	fmt.Printf("Samples: %d\n", len(samples))
	// Output:
	// Sample rate: 16000 Hz
	// Channels: 1
	// Samples: 16000
}

// Example_registry picks a decoder from a file name.
func Example_registry() {
	registry := audio.NewRegistry()
	registry.Register("wav", nil)
	registry.Register("ogg", nil)

	_, ok := registry.Lookup("take-1.WAV")
	fmt.Println("wav:", ok)

	_, ok = registry.Lookup("take-1.flac")
	fmt.Println("flac:", ok)
	fmt.Println(registry.Formats())
	// Output:
	// wav: true
	// flac: false
	// [ogg wav]
}
