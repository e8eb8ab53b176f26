package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"

	"github.com/zjrosen/rtkit/internal/log"
)

// GammaEnvPrefix prefixes environment variables that override settings,
// e.g. RT_GAMMA_API_KEY.
const GammaEnvPrefix = "RT_GAMMA"

// GammaConfig holds the presentation generator settings.
type GammaConfig struct {
	APIKey       string `mapstructure:"api_key"`
	Theme        string `mapstructure:"theme"`    // Gamma theme id, empty for the workspace default
	Template     string `mapstructure:"template"` // Gamma template id; switches to template generation
	TextMode     string `mapstructure:"text_mode"`
	ImageSource  string `mapstructure:"image_source"`
	CardSplit    string `mapstructure:"card_split"`
	BatchPattern string `mapstructure:"batch_pattern"`
	NumCards     int    `mapstructure:"num_cards"`
	Format       string `mapstructure:"format"`
	BaseURL      string `mapstructure:"base_url"` // empty uses the client's default API root

	// Path is the file the config was loaded from.
	Path string `mapstructure:"-"`
}

// TextModes lists the accepted text_mode values.
var TextModes = []string{"generate", "condense", "preserve"}

// CardSplits lists the accepted card_split values.
var CardSplits = []string{"auto", "inputTextBreaks"}

// imageSources maps image_source settings to Gamma API values.
var imageSources = map[string]string{
	"ai":           "aiGenerated",
	"unsplash":     "unsplash",
	"giphy":        "giphy",
	"pexels":       "webFreeToUse",
	"pictographic": "pictographic",
	"none":         "noImages",
}

// ImageSources returns the accepted image_source values, sorted.
func ImageSources() []string {
	keys := lo.Keys(imageSources)
	sort.Strings(keys)
	return keys
}

// DefaultGamma returns a GammaConfig with default values and no credential.
func DefaultGamma() GammaConfig {
	return GammaConfig{
		TextMode:     "preserve",
		ImageSource:  "ai",
		CardSplit:    "inputTextBreaks",
		BatchPattern: "*_presentation.md",
		NumCards:     10,
		Format:       "presentation",
	}
}

// LoadGamma reads the generator settings from path, merging defaults under
// the file's values and RT_GAMMA_* environment variables over them.
// Returns an error wrapping ErrNotConfigured when the file is missing.
// The result is not validated; call Validate before using it.
func LoadGamma(path string) (GammaConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return GammaConfig{}, fmt.Errorf("%w: %s", ErrNotConfigured, path)
		}
		return GammaConfig{}, fmt.Errorf("checking config file: %w", err)
	}

	v := newViper(path)
	d := DefaultGamma()
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("theme", d.Theme)
	v.SetDefault("template", d.Template)
	v.SetDefault("text_mode", d.TextMode)
	v.SetDefault("image_source", d.ImageSource)
	v.SetDefault("card_split", d.CardSplit)
	v.SetDefault("batch_pattern", d.BatchPattern)
	v.SetDefault("num_cards", d.NumCards)
	v.SetDefault("format", d.Format)
	v.SetDefault("base_url", d.BaseURL)
	v.SetEnvPrefix(GammaEnvPrefix)
	v.AutomaticEnv()

	var cfg GammaConfig
	if err := readInto(v, &cfg); err != nil {
		return GammaConfig{}, err
	}
	cfg.Path = path

	log.Debug(log.CatConfig, "Loaded gamma config",
		"path", path,
		"template", cfg.Template != "",
		"theme", cfg.Theme,
		"textMode", cfg.TextMode,
	)
	return cfg, nil
}

// Validate checks the configuration for errors. A missing credential is
// always reported first; invalid enumerated values are reported alongside.
func (c GammaConfig) Validate() error {
	var result *multierror.Error

	if strings.TrimSpace(c.APIKey) == "" {
		result = multierror.Append(result, fmt.Errorf(
			"API key not found in config. Please set 'api_key' in %s", c.Path))
	}
	if !lo.Contains(TextModes, c.TextMode) {
		result = multierror.Append(result, fmt.Errorf(
			"invalid text_mode %q (expected one of %s)", c.TextMode, strings.Join(TextModes, ", ")))
	}
	if _, ok := imageSources[c.ImageSource]; !ok {
		result = multierror.Append(result, fmt.Errorf(
			"invalid image_source %q (expected one of %s)", c.ImageSource, strings.Join(ImageSources(), ", ")))
	}
	if !lo.Contains(CardSplits, c.CardSplit) {
		result = multierror.Append(result, fmt.Errorf(
			"invalid card_split %q (expected one of %s)", c.CardSplit, strings.Join(CardSplits, ", ")))
	}
	if c.NumCards < 1 {
		result = multierror.Append(result, fmt.Errorf("num_cards must be at least 1, got %d", c.NumCards))
	}

	if result == nil {
		return nil
	}
	result.ErrorFormat = joinErrors
	return result
}

// ImageSourceAPI returns the Gamma API value for the configured image source.
// Unknown values map to AI generated images.
func (c GammaConfig) ImageSourceAPI() string {
	if v, ok := imageSources[c.ImageSource]; ok {
		return v
	}
	return "aiGenerated"
}

// TemplateID returns the configured template id with surrounding space removed.
func (c GammaConfig) TemplateID() string {
	return strings.TrimSpace(c.Template)
}

// ThemeID returns the configured theme id with surrounding space removed.
func (c GammaConfig) ThemeID() string {
	return strings.TrimSpace(c.Theme)
}

// DefaultGammaTemplate returns the generator settings file with comments.
func DefaultGammaTemplate() string {
	return `# rt-gamma configuration
# Get your API key from: https://gamma.app/settings/api

# Required: Your Gamma API key (or set RT_GAMMA_API_KEY)
api_key = ""

# Optional: Default Gamma theme ID (leave empty for Gamma default)
# Run 'rt gamma themes' to list the themes in your workspace.
theme = ""

# Optional: Default Gamma template ID for template-based generation
template = ""

# Text processing mode: generate | condense | preserve
text_mode = "preserve"

# Image source: ai | unsplash | giphy | pexels | pictographic | none
image_source = "ai"

# Card/slide splitting: auto | inputTextBreaks (respects --- markers)
card_split = "inputTextBreaks"

# Number of cards requested for freeform generation
num_cards = 10

# Batch mode: file pattern to match
batch_pattern = "*_presentation.md"
`
}
