package config

import (
	"errors"
	"fmt"
	"os"
)

// VoiceConfig holds the sound player settings.
type VoiceConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Theme   string  `mapstructure:"theme"`  // directory under <plugin_root>/themes
	Volume  float64 `mapstructure:"volume"` // 0.0 - 1.0
}

// DefaultVoice returns a VoiceConfig with sensible default values.
func DefaultVoice() VoiceConfig {
	return VoiceConfig{
		Enabled: true,
		Theme:   "default",
		Volume:  0.8,
	}
}

// LoadVoice reads the sound player settings from path. A missing file yields
// the defaults. Volume is clamped to [0, 1] and an empty theme falls back to
// the default theme.
func LoadVoice(path string) (VoiceConfig, error) {
	d := DefaultVoice()

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return d, nil
		}
		return d, fmt.Errorf("checking config file: %w", err)
	}

	v := newViper(path)
	v.SetDefault("enabled", d.Enabled)
	v.SetDefault("theme", d.Theme)
	v.SetDefault("volume", d.Volume)

	var cfg VoiceConfig
	if err := readInto(v, &cfg); err != nil {
		return d, err
	}

	if cfg.Theme == "" {
		cfg.Theme = d.Theme
	}
	cfg.Volume = clampVolume(cfg.Volume)
	return cfg, nil
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// DefaultVoiceTemplate returns the sound player settings file with comments.
func DefaultVoiceTemplate() string {
	return `# rt-voice configuration

# Play sounds for hook events
enabled = true

# Sound theme: a folder under <plugin_root>/themes
# Run 'rt voice themes' to see what is installed.
theme = "default"

# Playback volume from 0.0 to 1.0
volume = 0.8
`
}
