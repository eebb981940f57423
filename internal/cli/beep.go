// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/ik5/audtools/formats/wav"
	"github.com/ik5/audtools/utils"
	"github.com/spf13/cobra"
)

var errInvalidBeep = errors.New("duration, frequency and rate must be positive and amplitude within 0..1")

func (a *app) beepCmd() *cobra.Command {
	var (
		output   string
		duration time.Duration
		freq     float64
		rate     int
		amp      float64
	)

	cmd := &cobra.Command{
		Use:   "beep",
		Short: "Write a sine tone as a 16-bit mono WAV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if duration <= 0 || freq <= 0 || rate <= 0 || amp < 0 || amp > 1 {
				return errInvalidBeep
			}

			samples := beep(duration, freq, rate, amp)

			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}

			if err := wav.WriteWAV16(f, rate, 1, samples); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", output, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Generated %s\n", output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "beep.wav", "Output WAV file")
	flags.DurationVar(&duration, "duration", 500*time.Millisecond, "Tone length")
	flags.Float64Var(&freq, "freq", 440, "Tone frequency in Hz")
	flags.IntVar(&rate, "rate", 44100, "Sample rate in Hz")
	flags.Float64Var(&amp, "amp", 0.5, "Amplitude from 0 to 1")

	return cmd
}

func beep(duration time.Duration, freq float64, rate int, amp float64) []int16 {
	n := int(float64(rate) * duration.Seconds())
	out := make([]int16, n)
	for i := range out {
		t := float64(i) / float64(rate)
		out[i] = utils.Float32ToInt16(float32(amp * math.Sin(2*math.Pi*freq*t)))
	}
	return out
}
