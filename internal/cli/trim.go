// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) trimCmd() *cobra.Command {
	var (
		startMs int
		endMs   int
		output  string
		format  string
		rate    int
	)

	cmd := &cobra.Command{
		Use:   "trim INPUT",
		Short: "Cut an audio file between two offsets",
		Long: `Cut INPUT between --start-ms and --end-ms and write the result.

Without --end-ms the cut runs to the end of the file. Offsets past the end
are clamped, and an end before the start produces an empty file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.proc.Load(args[0])
			if err != nil {
				return err
			}

			var end *int
			if cmd.Flags().Changed("end-ms") {
				end = &endMs
			}

			trimmed, err := a.proc.Trim(h, startMs, end)
			if err != nil {
				return err
			}

			if rate > 0 && rate != trimmed.SampleRate() {
				if trimmed, err = a.proc.Resample(trimmed, rate); err != nil {
					return err
				}
			}

			out, err := a.proc.Export(trimmed, output, format)
			if err != nil {
				return err
			}

			a.log.Info("trimmed",
				zap.String("input", args[0]),
				zap.String("output", out),
				zap.Float64("duration_ms", trimmed.DurationMs()),
			)

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&startMs, "start-ms", 0, "Start offset in milliseconds")
	flags.IntVar(&endMs, "end-ms", 0, "End offset in milliseconds (default: end of file)")
	flags.StringVarP(&output, "output", "o", "out.wav", "Output file")
	flags.StringVar(&format, "format", "", "Output format (default: from the output extension)")
	flags.IntVar(&rate, "rate", 0, "Resample the result to this rate in Hz")

	return cmd
}
