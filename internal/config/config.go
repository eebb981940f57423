// SPDX-License-Identifier: EPL-2.0

// Package config loads the optional YAML settings file of the audtools CLI.
// Command-line flags override whatever is set here.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Backends  BackendsConfig  `yaml:"backends"`
	FFmpeg    FFmpegConfig    `yaml:"ffmpeg"`
	Logging   LoggingConfig   `yaml:"logging"`
	Denoise   DenoiseConfig   `yaml:"denoise"`
	Duplicate DuplicateConfig `yaml:"duplicate"`
}

// BackendsConfig switches the two audio providers on or off.
type BackendsConfig struct {
	Codec bool `yaml:"codec"`
	Raw   bool `yaml:"raw"`
}

type FFmpegConfig struct {
	// Path to the ffmpeg binary. Empty searches PATH.
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	JSON       bool   `yaml:"json"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type DenoiseConfig struct {
	NoiseStartMs      int     `yaml:"noise_start_ms"`
	NoiseDurationMs   int     `yaml:"noise_duration_ms"`
	Strength          float64 `yaml:"strength"`
	PreviewDurationMs int     `yaml:"preview_duration_ms"`
	PreviewHold       string  `yaml:"preview_hold"`
}

type DuplicateConfig struct {
	Times int `yaml:"times"`
}

var (
	ErrNoBackend        = errors.New("at least one backend must be enabled")
	ErrInvalidLogLevel  = errors.New("log level must be debug, info, warn or error")
	ErrInvalidNoiseClip = errors.New("noise clip must start at or after 0 and last at least 1 ms")
	ErrInvalidStrength  = errors.New("denoise strength must be between 0 and 1")
	ErrInvalidPreview   = errors.New("preview duration must be positive")
	ErrInvalidTimes     = errors.New("duplicate times must be at least 1")
	ErrInvalidHold      = errors.New("preview hold must be a duration such as 30s")
)

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Backends: BackendsConfig{Codec: true, Raw: true},
		Logging: LoggingConfig{
			Level:      "warn",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Denoise: DenoiseConfig{
			NoiseStartMs:      0,
			NoiseDurationMs:   1000,
			Strength:          0.15,
			PreviewDurationMs: 5000,
			PreviewHold:       "30s",
		},
		Duplicate: DuplicateConfig{Times: 100},
	}
}

// Load reads path over Default and validates the result. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if !c.Backends.Codec && !c.Backends.Raw {
		errs = append(errs, ErrNoBackend)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level))
	}

	d := c.Denoise
	if d.NoiseStartMs < 0 || d.NoiseDurationMs < 1 {
		errs = append(errs, ErrInvalidNoiseClip)
	}
	if d.Strength < 0 || d.Strength > 1 {
		errs = append(errs, ErrInvalidStrength)
	}
	if d.PreviewDurationMs < 1 {
		errs = append(errs, ErrInvalidPreview)
	}
	if _, err := c.PreviewHold(); err != nil {
		errs = append(errs, err)
	}

	if c.Duplicate.Times < 1 {
		errs = append(errs, ErrInvalidTimes)
	}

	return errors.Join(errs...)
}
