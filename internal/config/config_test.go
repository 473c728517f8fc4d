package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mouse-replay.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "esc", cfg.Recording.CancelKey)
	assert.Equal(t, 1.0, cfg.Replay.Speed)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[recording]
cancel_key = "f12"
output_dir = "/tmp/recs"

[replay]
speed = 2.5
delay_seconds = 1
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "f12", cfg.Recording.CancelKey)
	assert.Equal(t, "/tmp/recs", cfg.Recording.OutputDir)
	assert.Equal(t, 2.5, cfg.Replay.Speed)
	assert.Equal(t, 1.0, cfg.Replay.DelaySeconds)
}

func TestLoadPartialFileKeepsOtherDefaults(t *testing.T) {
	path := writeConfig(t, `
[replay]
speed = 0.5
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Replay.Speed)
	assert.Equal(t, "esc", cfg.Recording.CancelKey)
	assert.Equal(t, "recordings", cfg.Recording.OutputDir)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero speed", "[replay]\nspeed = 0.0\n"},
		{"negative speed", "[replay]\nspeed = -2.0\n"},
		{"negative delay", "[replay]\ndelay_seconds = -1.0\n"},
		{"empty cancel key", "[recording]\ncancel_key = \"\"\n"},
		{"empty output dir", "[recording]\noutput_dir = \"\"\n"},
		{"not toml", "recording = = broken"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
