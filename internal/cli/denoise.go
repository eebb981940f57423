// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ik5/audtools/denoise"
	"github.com/ik5/audtools/formats/wav"
	"github.com/ik5/audtools/processor"
	"github.com/ik5/audtools/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// previewPosition is where a preview starts when --preview-start is unset,
// as a fraction of the file.
const previewPosition = 0.4

type denoiseOptions struct {
	noiseStartMs    int
	noiseDurationMs int
	strength        float64
	output          string

	preview           bool
	previewStartMs    int
	previewStartSet   bool
	previewDurationMs int
	previewHold       time.Duration
}

func (a *app) denoiseCmd() *cobra.Command {
	var (
		o    denoiseOptions
		hold string
	)

	cmd := &cobra.Command{
		Use:   "denoise INPUT",
		Short: "Reduce stationary background noise",
		Long: `Remove background noise from an audio file.

Point --noise-start and --noise-duration at a stretch that holds only
background noise (no speech or music); it becomes the noise profile. The
result is mono.

Use --preview to try settings on a short excerpt first. The preview is
written to a temporary WAV file that is deleted after --preview-hold.`,
		Example: `  audtools denoise input.mp3 --preview
  audtools denoise input.mp3 --preview --preview-start 10000 -r 0.2
  audtools denoise input.mp3 -s 0 -d 2000 -r 0.2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			d := a.cfg.Denoise

			if !flags.Changed("noise-start") {
				o.noiseStartMs = d.NoiseStartMs
			}
			if !flags.Changed("noise-duration") {
				o.noiseDurationMs = d.NoiseDurationMs
			}
			if !flags.Changed("strength") {
				o.strength = d.Strength
			}
			if !flags.Changed("preview-duration") {
				o.previewDurationMs = d.PreviewDurationMs
			}
			o.previewStartSet = flags.Changed("preview-start")

			if flags.Changed("preview-hold") {
				h, err := time.ParseDuration(hold)
				if err != nil {
					return fmt.Errorf("--preview-hold: %w", err)
				}
				o.previewHold = h
			} else {
				h, err := a.cfg.PreviewHold()
				if err != nil {
					return err
				}
				o.previewHold = h
			}

			return a.runDenoise(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], o)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&o.noiseStartMs, "noise-start", "s", 0, "Start of the noise-only clip in milliseconds")
	flags.IntVarP(&o.noiseDurationMs, "noise-duration", "d", 1000, "Length of the noise-only clip in milliseconds")
	flags.Float64VarP(&o.strength, "strength", "r", denoise.DefaultStrength, "Reduction strength from 0 to 1")
	flags.StringVarP(&o.output, "output", "o", "", "Output file (default: <input>_clean.<ext>)")
	flags.BoolVar(&o.preview, "preview", false, "Process a short excerpt into a temporary file instead")
	flags.IntVar(&o.previewStartMs, "preview-start", 0, "Preview start in milliseconds (default: 40% into the file)")
	flags.IntVar(&o.previewDurationMs, "preview-duration", 5000, "Preview length in milliseconds")
	flags.StringVar(&hold, "preview-hold", "30s", "How long to keep the preview file before deleting it")

	return cmd
}

func (a *app) runDenoise(ctx context.Context, stdout, stderr io.Writer, input string, o denoiseOptions) error {
	if err := denoise.ValidateStrength(o.strength); err != nil {
		return fmt.Errorf("--strength %g: %w", o.strength, err)
	}

	output := o.output
	if output == "" {
		output = withSuffix(input, "_clean")
	}
	if !o.preview {
		if err := a.checkEncoder(output); err != nil {
			return err
		}
	}

	fmt.Fprintln(stdout, "Loading audio file...")

	h, err := a.proc.Load(input)
	if err != nil {
		return err
	}

	mono, err := a.proc.Mono(h)
	if err != nil {
		return err
	}

	noiseEnd := o.noiseStartMs + o.noiseDurationMs
	noise, err := a.proc.Trim(mono, o.noiseStartMs, &noiseEnd)
	if err != nil {
		return err
	}
	profile := noise.(*processor.Samples).Data
	if len(profile) == 0 {
		return fmt.Errorf("noise clip %d-%d ms of %.0f ms: %w",
			o.noiseStartMs, noiseEnd, mono.DurationMs(), denoise.ErrEmptyNoiseProfile)
	}

	if o.preview {
		return a.previewDenoise(ctx, stdout, mono, profile, o)
	}

	fmt.Fprintln(stdout, "Applying noise reduction...")

	reduced, err := denoise.Reduce(mono.Data, profile, o.strength)
	if isInputError(err) {
		return fmt.Errorf("noise reduction: %w", err)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error during noise reduction: %v\n", err)
		fmt.Fprintln(stdout, "Trying fallback method...")

		a.log.Warn("noise reduction failed, retrying at half strength",
			zap.Float64("strength", o.strength),
			zap.Error(err),
		)

		if reduced, err = denoise.Reduce(mono.Data, profile, o.strength*0.5); err != nil {
			return fmt.Errorf("noise reduction: %w", err)
		}
	}

	fmt.Fprintln(stdout, "Saving cleaned audio...")

	clean := &processor.Samples{Data: reduced, Channels: 1, Rate: mono.Rate}
	out, err := a.proc.Export(a.proc.Like(h, clean), output, "")
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Created noise-reduced file: %s\n", out)
	return nil
}

func (a *app) previewDenoise(ctx context.Context, stdout io.Writer, mono *processor.Samples, profile []float64, o denoiseOptions) error {
	start := o.previewStartMs
	if !o.previewStartSet {
		start = int(mono.DurationMs() * previewPosition)
	}
	end := start + o.previewDurationMs

	fmt.Fprintf(stdout, "Creating preview at %.1fs...\n", float64(start)/1000)

	excerpt, err := a.proc.Trim(mono, start, &end)
	if err != nil {
		return err
	}

	reduced, err := denoise.Reduce(excerpt.(*processor.Samples).Data, profile, o.strength)
	if err != nil {
		return fmt.Errorf("noise reduction: %w", err)
	}

	pcm := make([]int16, len(reduced))
	for i, s := range reduced {
		pcm[i] = utils.Float32ToInt16(float32(s))
	}

	path, err := writePreview("", func(w io.Writer) error {
		return wav.WriteWAV16(w, mono.Rate, 1, pcm)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\nCreated preview file: %s\n", path)
	fmt.Fprintf(stdout, "\nPreview cleanup will happen in %s...\n", o.previewHold)

	select {
	case <-ctx.Done():
	case <-time.After(o.previewHold):
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		a.log.Warn("could not remove preview file", zap.String("path", path), zap.Error(err))
		return nil
	}

	fmt.Fprintln(stdout, "Preview file cleaned up")
	return nil
}

// isInputError reports errors a retry with other settings cannot fix.
func isInputError(err error) bool {
	return errors.Is(err, denoise.ErrEmptySignal) ||
		errors.Is(err, denoise.ErrEmptyNoiseProfile) ||
		errors.Is(err, denoise.ErrInvalidStrength)
}

// writePreview creates a temporary WAV file in dir (the system temp
// directory when empty) and fills it with write. The file is removed when
// write or the close fails.
func writePreview(dir string, write func(io.Writer) error) (path string, err error) {
	f, err := os.CreateTemp(dir, "audtools-preview-*.wav")
	if err != nil {
		return "", fmt.Errorf("creating preview file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing preview file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(f.Name())
			path = ""
		}
	}()

	if err := write(f); err != nil {
		return "", fmt.Errorf("writing preview file: %w", err)
	}

	return f.Name(), nil
}
