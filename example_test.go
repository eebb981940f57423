// SPDX-License-Identifier: EPL-2.0

package audtools_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/audtools"
	"github.com/ik5/audtools/formats/wav"
	"github.com/ik5/audtools/processor"
)

func ExampleTrimFile() {
	dir, err := os.MkdirTemp("", "audtools-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	// One second of silence at 8 kHz.
	in := filepath.Join(dir, "silence.wav")
	f, err := os.Create(in)
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := wav.WriteWAV16(f, 8000, 1, make([]int16, 8000)); err != nil {
		fmt.Println(err)
		return
	}
	f.Close()

	end := 250
	out, err := audtools.TrimFile(in, filepath.Join(dir, "clip.wav"), 0, &end, processor.WithoutFFmpeg())
	if err != nil {
		fmt.Println(err)
		return
	}

	clip, err := processor.New(processor.WithoutFFmpeg()).Load(out)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%s: %.0f ms at %d Hz\n", filepath.Base(out), clip.DurationMs(), clip.SampleRate())
	// Output:
	// clip.wav: 250 ms at 8000 Hz
}
