// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "audtools.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())

	hold, err := cfg.PreviewHold()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, hold)
	assert.InDelta(t, 0.15, cfg.Denoise.Strength, 0)
	assert.Equal(t, 100, cfg.Duplicate.Times)
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesOnlyWhatIsSet(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
backends:
  codec: false
  raw: true
ffmpeg:
  path: /opt/ffmpeg/bin/ffmpeg
logging:
  level: debug
  file: /tmp/audtools.log
denoise:
  strength: 0.4
  preview_hold: 2s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Backends.Codec)
	assert.True(t, cfg.Backends.Raw)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpeg.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Logging.MaxSizeMB, "untouched default")
	assert.InDelta(t, 0.4, cfg.Denoise.Strength, 0)
	assert.Equal(t, 1000, cfg.Denoise.NoiseDurationMs, "untouched default")

	hold, err := cfg.PreviewHold()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, hold)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want error
	}{
		{"no backend", "backends: {codec: false, raw: false}", ErrNoBackend},
		{"bad level", "logging: {level: chatty}", ErrInvalidLogLevel},
		{"bad strength", "denoise: {strength: 2}", ErrInvalidStrength},
		{"bad noise clip", "denoise: {noise_duration_ms: 0}", ErrInvalidNoiseClip},
		{"bad preview", "denoise: {preview_duration_ms: -1}", ErrInvalidPreview},
		{"bad hold", "denoise: {preview_hold: soon}", ErrInvalidHold},
		{"bad times", "duplicate: {times: 0}", ErrInvalidTimes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_Unreadable(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "backends: [not, a, map]"))
	assert.ErrorContains(t, err, "parse yaml")
}
