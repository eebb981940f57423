// SPDX-License-Identifier: EPL-2.0

// Package cli wires the audtools commands together.
package cli

import (
	"fmt"

	"github.com/ik5/audtools/internal/config"
	"github.com/ik5/audtools/internal/logger"
	"github.com/ik5/audtools/processor"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what the subcommands share. It is filled in by setup, which
// runs before any subcommand.
type app struct {
	configPath string
	logLevel   string
	logFile    string

	cfg  *config.Config
	log  *zap.Logger
	proc *processor.Processor
}

// NewRootCmd builds the audtools command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "audtools",
		Short: "Small utilities for audio files",
		Long: `audtools - trim, clean up, duplicate and generate audio files.

WAV and AIFF are handled natively; MP3 and Ogg Vorbis are decoded natively.
Any other format, and every lossy output format, needs ffmpeg on PATH.

Examples:
  audtools trim talk.wav --start-ms 1500 --end-ms 9000 -o clip.wav
  audtools denoise interview.mp3 -s 0 -d 2000 -r 0.2
  audtools duplicate jingle.wav -n 10
  audtools beep -o fixtures/beep.wav`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.log.Sync() },
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (default from config: warn)")
	flags.StringVar(&a.logFile, "log-file", "", "Also write JSON logs to this file, rotated by size")

	root.AddCommand(
		a.trimCmd(),
		a.denoiseCmd(),
		a.duplicateCmd(),
		a.beepCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFile != "" {
		cfg.Logging.File = a.logFile
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		JSON:       cfg.Logging.JSON,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}

	a.cfg = cfg
	a.log = log.Named(cmd.Name())
	a.proc = processor.New(processorOptions(cfg, a.log)...)

	return nil
}

func processorOptions(cfg *config.Config, log *zap.Logger) []processor.Option {
	opts := []processor.Option{processor.WithLogger(log)}

	if !cfg.Backends.Codec {
		opts = append(opts, processor.WithCodec(nil))
	}
	if !cfg.Backends.Raw {
		opts = append(opts, processor.WithRawIO(nil))
	}

	switch {
	case cfg.FFmpeg.Disabled:
		opts = append(opts, processor.WithoutFFmpeg())
	case cfg.FFmpeg.Path != "":
		opts = append(opts, processor.WithFFmpegPath(cfg.FFmpeg.Path))
	}

	return opts
}
