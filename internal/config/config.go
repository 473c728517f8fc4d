// Package config handles configuration loading and validation. Settings
// live in a TOML file; a missing file falls back to defaults so the tool
// works out of the box.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// RecordingConfig controls the capture side.
type RecordingConfig struct {
	// CancelKey is the gohook key name whose release stops a capture
	// session.
	CancelKey string `toml:"cancel_key"`
	// OutputDir is where recordings land when no explicit output path
	// is given.
	OutputDir string `toml:"output_dir"`
}

// ReplayConfig carries the playback defaults used when the operator
// does not pass flags.
type ReplayConfig struct {
	Speed        float64 `toml:"speed"`
	DelaySeconds float64 `toml:"delay_seconds"`
}

// Config is the full tool configuration.
type Config struct {
	Recording RecordingConfig `toml:"recording"`
	Replay    ReplayConfig    `toml:"replay"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Recording: RecordingConfig{
			CancelKey: "esc",
			OutputDir: "recordings",
		},
		Replay: ReplayConfig{
			Speed:        1.0,
			DelaySeconds: 3,
		},
	}
}

// Load reads and validates the TOML file at path. A missing file is not
// an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Recording.CancelKey == "" {
		return errors.New("recording.cancel_key must not be empty")
	}
	if c.Recording.OutputDir == "" {
		return errors.New("recording.output_dir must not be empty")
	}
	if c.Replay.Speed <= 0 {
		return fmt.Errorf("replay.speed must be positive, got %g", c.Replay.Speed)
	}
	if c.Replay.DelaySeconds < 0 {
		return fmt.Errorf("replay.delay_seconds must not be negative, got %g", c.Replay.DelaySeconds)
	}
	return nil
}
