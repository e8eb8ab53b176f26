package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGamma_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".claude", "rt-gamma.toml")

	_, err := LoadGamma(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotConfigured))
	require.Contains(t, err.Error(), path)
}

func TestLoadGamma_DefaultsMergedUnderUserValues(t *testing.T) {
	path := writeConfig(t, "rt-gamma.toml", `
api_key = "sk-test"
text_mode = "condense"
`)

	cfg, err := LoadGamma(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "condense", cfg.TextMode)
	assert.Equal(t, "ai", cfg.ImageSource)
	assert.Equal(t, "inputTextBreaks", cfg.CardSplit)
	assert.Equal(t, "*_presentation.md", cfg.BatchPattern)
	assert.Equal(t, 10, cfg.NumCards)
	assert.Equal(t, "presentation", cfg.Format)
	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, path, cfg.Path)
	require.NoError(t, cfg.Validate())
}

func TestLoadGamma_UnknownKeysIgnored(t *testing.T) {
	path := writeConfig(t, "rt-gamma.toml", `
api_key = "sk-test"
favourite_colour = "teal"

[extra]
nested = true
`)

	cfg, err := LoadGamma(path)
	require.NoError(t, err)
	require.Equal(t, "sk-test", cfg.APIKey)
}

func TestLoadGamma_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "rt-gamma.toml", `api_key = "from-file"`)
	t.Setenv("RT_GAMMA_API_KEY", "from-env")
	t.Setenv("RT_GAMMA_THEME", "chisel")

	cfg, err := LoadGamma(path)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.APIKey)
	require.Equal(t, "chisel", cfg.Theme)
}

func TestLoadGamma_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "rt-gamma.toml", `api_key = "unterminated`)

	_, err := LoadGamma(path)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNotConfigured))
}

func TestLoadGamma_DefaultTemplateLoads(t *testing.T) {
	path := writeConfig(t, "rt-gamma.toml", DefaultGammaTemplate())

	cfg, err := LoadGamma(path)
	require.NoError(t, err)
	require.Equal(t, DefaultGamma().TextMode, cfg.TextMode)

	// Template ships without a credential.
	err = cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "API key not found in config")
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := DefaultGamma()
	cfg.Path = "/p/.claude/rt-gamma.toml"
	cfg.APIKey = "   "

	err := cfg.Validate()
	require.EqualError(t, err, "API key not found in config. Please set 'api_key' in /p/.claude/rt-gamma.toml")
}

func TestValidate_AggregatesProblems(t *testing.T) {
	cfg := DefaultGamma()
	cfg.APIKey = "sk"
	cfg.TextMode = "shout"
	cfg.ImageSource = "crayons"
	cfg.CardSplit = "never"
	cfg.NumCards = 0

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `invalid text_mode "shout"`)
	assert.Contains(t, msg, `invalid image_source "crayons"`)
	assert.Contains(t, msg, `invalid card_split "never"`)
	assert.Contains(t, msg, "num_cards must be at least 1")
	assert.NotContains(t, msg, "API key")
}

func TestImageSourceAPI(t *testing.T) {
	tests := []struct {
		setting string
		want    string
	}{
		{"ai", "aiGenerated"},
		{"unsplash", "unsplash"},
		{"giphy", "giphy"},
		{"pexels", "webFreeToUse"},
		{"pictographic", "pictographic"},
		{"none", "noImages"},
		{"unknown", "aiGenerated"},
		{"", "aiGenerated"},
	}

	for _, tt := range tests {
		t.Run(tt.setting, func(t *testing.T) {
			cfg := GammaConfig{ImageSource: tt.setting}
			require.Equal(t, tt.want, cfg.ImageSourceAPI())
		})
	}
}

func TestImageSources_Sorted(t *testing.T) {
	require.Equal(t, []string{"ai", "giphy", "none", "pexels", "pictographic", "unsplash"}, ImageSources())
}

func TestTemplateAndThemeIDs_Trimmed(t *testing.T) {
	cfg := GammaConfig{Template: "  g_abc  ", Theme: "\tchisel\n"}
	require.Equal(t, "g_abc", cfg.TemplateID())
	require.Equal(t, "chisel", cfg.ThemeID())
}
