// Package config provides configuration types, defaults and loaders for rt.
//
// Both subsystems read a TOML settings file from the project's .claude
// directory. Values missing from the file fall back to the defaults declared
// here; unknown keys are ignored.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/zjrosen/rtkit/internal/log"
)

// ErrNotConfigured is returned when a required settings file does not exist.
var ErrNotConfigured = errors.New("config not found")

// newViper returns a viper instance reading path as TOML.
func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	return v
}

// readInto reads the settings file behind v and decodes it into dst.
func readInto(v *viper.Viper, dst any) error {
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", v.ConfigFileUsed(), err)
	}
	if err := v.Unmarshal(dst); err != nil {
		return fmt.Errorf("decoding config %s: %w", v.ConfigFileUsed(), err)
	}
	return nil
}

// LoadDotEnv loads KEY=value pairs from path into the process environment.
// A missing file is not an error. Variables already set are left alone.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	log.Debug(log.CatConfig, "Loaded .env file", "path", path)
	return nil
}

// WriteDefaultConfig writes template to configPath, creating the parent
// directory if it doesn't exist.
func WriteDefaultConfig(configPath, template string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(template), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// joinErrors renders aggregated validation errors on a single line.
func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
