package generation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rtkit/internal/config"
	"github.com/zjrosen/rtkit/internal/gamma"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRun_CompletedWritesRedirect(t *testing.T) {
	src := writeSource(t, t.TempDir(), "launch_presentation.md", "# Launch\n\nWe ship.\n")
	api := &fakeAPI{
		createID: "gen_1",
		statuses: []gamma.Generation{
			{Status: gamma.StatusPending},
			{Status: gamma.StatusCompleted, GammaURL: "https://gamma.app/docs/launch"},
		},
	}

	res := newTestGenerator(api, testConfig()).Run(context.Background(), src)

	require.True(t, res.Success, res.Error)
	assert.Equal(t, StatusCompleted, res.Status)
	assert.Equal(t, "https://gamma.app/docs/launch", res.URL)
	assert.Equal(t, "Launch", res.Title)
	assert.Equal(t, RedirectPath(src), res.HTMLPath)
	assert.Equal(t, 2, api.polls)

	data, err := os.ReadFile(res.HTMLPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `content="0;url=https://gamma.app/docs/launch"`)
}

func TestRun_FreeformRequestFromConfig(t *testing.T) {
	src := writeSource(t, t.TempDir(), "notes.md", "Body only paragraph that ends.\n")
	api := &fakeAPI{
		createID: "gen_1",
		statuses: []gamma.Generation{{Status: gamma.StatusCompleted, LegacyURL: "https://gamma.app/x"}},
	}
	cfg := testConfig()
	cfg.Theme = " chisel "
	cfg.ImageSource = "pexels"
	cfg.TextMode = "condense"

	res := newTestGenerator(api, cfg).Run(context.Background(), src)
	require.True(t, res.Success, res.Error)
	require.Equal(t, "https://gamma.app/x", res.URL)
	require.Equal(t, "Notes", res.Title)

	require.Len(t, api.generateReqs, 1)
	require.Empty(t, api.templateReqs)
	req := api.generateReqs[0]
	assert.Equal(t, "# Notes\n\nBody only paragraph that ends.\n", req.InputText)
	assert.Equal(t, "condense", req.TextMode)
	assert.Equal(t, "presentation", req.Format)
	assert.Equal(t, 10, req.NumCards)
	assert.Equal(t, "inputTextBreaks", req.CardSplit)
	assert.Equal(t, "webFreeToUse", req.ImageOptions.Source)
	assert.Equal(t, "chisel", req.ThemeID)
}

func TestRun_TemplateWhenConfigured(t *testing.T) {
	src := writeSource(t, t.TempDir(), "deck.md", "# Deck\n")
	api := &fakeAPI{
		createID: "gen_tpl",
		statuses: []gamma.Generation{{Status: gamma.StatusCompleted, GammaURL: "https://gamma.app/t"}},
	}
	cfg := testConfig()
	cfg.Template = "  g_template  "

	res := newTestGenerator(api, cfg).Run(context.Background(), src)
	require.True(t, res.Success, res.Error)

	require.Empty(t, api.generateReqs)
	require.Len(t, api.templateReqs, 1)
	assert.Equal(t, "g_template", api.templateReqs[0].GammaID)
	assert.Equal(t, "# Deck\n", api.templateReqs[0].Prompt)
	assert.Empty(t, api.templateReqs[0].ThemeID)
}

func TestRun_VendorFailure(t *testing.T) {
	tests := []struct {
		name string
		gen  gamma.Generation
		want string
	}{
		{"with message", gamma.Generation{Status: gamma.StatusFailed, Error: &gamma.ErrorDetail{Message: "content policy"}}, "content policy"},
		{"without message", gamma.Generation{Status: gamma.StatusFailed}, "Generation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := writeSource(t, t.TempDir(), "deck.md", "# Deck\n")
			api := &fakeAPI{createID: "gen", statuses: []gamma.Generation{tt.gen}}

			res := newTestGenerator(api, testConfig()).Run(context.Background(), src)
			require.False(t, res.Success)
			require.Equal(t, StatusFailed, res.Status)
			require.Equal(t, tt.want, res.Error)
			require.NoFileExists(t, RedirectPath(src))
		})
	}
}

func TestRun_TimeoutIsAResult(t *testing.T) {
	src := writeSource(t, t.TempDir(), "deck.md", "# Deck\n")
	api := &fakeAPI{createID: "gen"} // always pending

	var res Result
	require.NotPanics(t, func() {
		res = newTestGenerator(api, testConfig()).Run(context.Background(), src)
	})

	require.False(t, res.Success)
	require.Equal(t, StatusTimedOut, res.Status)
	require.Equal(t, DefaultMaxAttempts, api.polls)
	require.Contains(t, res.Error, "Timeout: Generation took longer than")
	require.NoFileExists(t, RedirectPath(src))
}

func TestRun_DefaultBudgetMessage(t *testing.T) {
	src := writeSource(t, t.TempDir(), "deck.md", "# Deck\n")
	api := &fakeAPI{createID: "gen"}
	var slept []time.Duration

	g := New(api, testConfig())
	g.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	res := g.Run(context.Background(), src)
	require.Equal(t, "Timeout: Generation took longer than 2 minutes", res.Error)
	require.Len(t, slept, DefaultMaxAttempts)
	require.Equal(t, DefaultPollInterval, slept[0])
}

func TestRun_MissingGenerationID(t *testing.T) {
	src := writeSource(t, t.TempDir(), "deck.md", "# Deck\n")
	api := &fakeAPI{}

	res := newTestGenerator(api, testConfig()).Run(context.Background(), src)
	require.Equal(t, StatusError, res.Status)
	require.Equal(t, "No generation ID returned from API", res.Error)
	require.Zero(t, api.polls)
}

func TestRun_SubmitError(t *testing.T) {
	src := writeSource(t, t.TempDir(), "deck.md", "# Deck\n")
	api := &fakeAPI{createErr: &gamma.APIError{StatusCode: 401, Message: "Invalid API key"}}

	res := newTestGenerator(api, testConfig()).Run(context.Background(), src)
	require.Equal(t, StatusError, res.Status)
	require.Contains(t, res.Error, "Invalid API key")
}

func TestRun_StatusError(t *testing.T) {
	src := writeSource(t, t.TempDir(), "deck.md", "# Deck\n")
	api := &fakeAPI{createID: "gen", statusErr: errors.New("connection reset")}

	res := newTestGenerator(api, testConfig()).Run(context.Background(), src)
	require.Equal(t, StatusError, res.Status)
	require.Equal(t, "connection reset", res.Error)
	require.Equal(t, 1, api.polls)
}

func TestRun_CompletedWithoutURL(t *testing.T) {
	src := writeSource(t, t.TempDir(), "deck.md", "# Deck\n")
	api := &fakeAPI{createID: "gen", statuses: []gamma.Generation{{Status: gamma.StatusCompleted}}}

	res := newTestGenerator(api, testConfig()).Run(context.Background(), src)
	require.Equal(t, StatusError, res.Status)
	require.NoFileExists(t, RedirectPath(src))
}

func TestRun_InputErrors(t *testing.T) {
	dir := t.TempDir()
	pdf := writeSource(t, dir, "deck.pdf", "%PDF")
	api := &fakeAPI{createID: "gen"}
	g := newTestGenerator(api, testConfig())

	res := g.Run(context.Background(), filepath.Join(dir, "missing.md"))
	require.Equal(t, StatusError, res.Status)
	require.Contains(t, res.Error, "markdown file not found")

	res = g.Run(context.Background(), pdf)
	require.Equal(t, StatusError, res.Status)
	require.Contains(t, res.Error, "expected markdown file")

	require.Empty(t, api.generateReqs)
}

func TestRun_CancelledContext(t *testing.T) {
	src := writeSource(t, t.TempDir(), "deck.md", "# Deck\n")
	api := &fakeAPI{createID: "gen"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newTestGenerator(api, testConfig()).Run(ctx, src)
	require.Equal(t, StatusError, res.Status)
	require.Contains(t, res.Error, "interrupted")
	require.Zero(t, api.polls)
}

func TestWithMaxAttempts(t *testing.T) {
	src := writeSource(t, t.TempDir(), "deck.md", "# Deck\n")
	api := &fakeAPI{createID: "gen"}

	res := newTestGenerator(api, testConfig(), WithMaxAttempts(3)).Run(context.Background(), src)
	require.Equal(t, StatusTimedOut, res.Status)
	require.Equal(t, 3, api.polls)
}

func TestBudgetString(t *testing.T) {
	require.Equal(t, "2 minutes", budgetString(2*time.Minute))
	require.Equal(t, "1 minute", budgetString(time.Minute))
	require.Equal(t, "1m30s", budgetString(90*time.Second))
	require.Equal(t, "0s", budgetString(0))
}

// writeGammaConfig writes a settings file and returns its path.
func writeGammaConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".claude", "rt-gamma.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestGenerateFile_MissingCredentialNeverCallsAPI(t *testing.T) {
	cfgPath := writeGammaConfig(t, `theme = "chisel"`)
	src := writeSource(t, t.TempDir(), "deck.md", "# Deck\n")

	factoryCalls := 0
	factory := func(config.GammaConfig) (API, error) {
		factoryCalls++
		return &fakeAPI{}, nil
	}

	res := GenerateFile(context.Background(), cfgPath, src, factory)
	require.False(t, res.Success)
	require.Equal(t, StatusError, res.Status)
	require.Contains(t, res.Error, "API key not found in config")
	require.Zero(t, factoryCalls)
}

func TestGenerateFile_NotConfigured(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), ".claude", "rt-gamma.toml")
	src := writeSource(t, t.TempDir(), "deck.md", "# Deck\n")

	res := GenerateFile(context.Background(), cfgPath, src, func(config.GammaConfig) (API, error) {
		t.Fatal("factory must not be called")
		return nil, nil
	})
	require.Equal(t, "Config not found. Create "+cfgPath, res.Error)
}

func TestGenerateFile_EndToEnd(t *testing.T) {
	cfgPath := writeGammaConfig(t, `api_key = "sk-test"`)
	src := writeSource(t, t.TempDir(), "deck.md", "---\ntitle: Front Title\n---\nBody\n")
	api := &fakeAPI{createID: "gen", statuses: []gamma.Generation{{Status: gamma.StatusCompleted, GammaURL: "https://g/x"}}}

	var gotKey string
	res := GenerateFile(context.Background(), cfgPath, src, func(cfg config.GammaConfig) (API, error) {
		gotKey = cfg.APIKey
		return api, nil
	}, WithPollInterval(0))

	require.True(t, res.Success, res.Error)
	require.Equal(t, "sk-test", gotKey)
	require.Equal(t, "Front Title", res.Title)
	require.Equal(t, "# Front Title\n\nBody\n", api.generateReqs[0].InputText)
}

func TestGenerateFile_FactoryError(t *testing.T) {
	cfgPath := writeGammaConfig(t, `api_key = "sk-test"`)
	src := writeSource(t, t.TempDir(), "deck.md", "# Deck\n")

	res := GenerateFile(context.Background(), cfgPath, src, func(config.GammaConfig) (API, error) {
		return nil, errors.New("no network")
	})
	require.Contains(t, res.Error, "creating gamma client: no network")
}

func TestNewGammaAPI(t *testing.T) {
	cfg := testConfig()
	cfg.BaseURL = "http://localhost:1"
	api, err := NewGammaAPI(cfg)
	require.NoError(t, err)
	require.NotNil(t, api)

	cfg.APIKey = ""
	_, err = NewGammaAPI(cfg)
	require.Error(t, err)
}
