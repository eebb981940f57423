// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) duplicateCmd() *cobra.Command {
	var times int

	cmd := &cobra.Command{
		Use:   "duplicate INPUT",
		Short: "Repeat the content of an audio file N times",
		Long: `Repeat INPUT back to back --times times and save it next to the input
with a _N suffix: jingle.mp3 repeated 10 times becomes jingle_10.mp3.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("times") {
				times = a.cfg.Duplicate.Times
			}

			input := args[0]
			output := withSuffix(input, "_"+strconv.Itoa(times))

			if err := a.checkEncoder(output); err != nil {
				return err
			}

			h, err := a.proc.Load(input)
			if err != nil {
				return err
			}

			repeated, err := a.proc.Repeat(h, times)
			if err != nil {
				return err
			}

			out, err := a.proc.Export(repeated, output, "")
			if err != nil {
				return err
			}

			a.log.Info("duplicated",
				zap.String("input", input),
				zap.Int("times", times),
				zap.Float64("duration_ms", repeated.DurationMs()),
			)

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&times, "times", "n", 100, "Number of times to repeat the content")

	return cmd
}
