// Package generation turns markdown files into hosted Gamma presentations.
//
// Each file moves through submitted → polling → one of completed, failed,
// timed_out or error. Polling uses a fixed interval and attempt budget with no
// backoff. Every failure is reported as a Result, never as a panic.
package generation

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/zjrosen/rtkit/internal/config"
	"github.com/zjrosen/rtkit/internal/gamma"
	"github.com/zjrosen/rtkit/internal/log"
	"github.com/zjrosen/rtkit/internal/markdown"
)

const (
	// DefaultPollInterval is the wait before each status check.
	DefaultPollInterval = 2 * time.Second
	// DefaultMaxAttempts bounds status checks; with the default interval the
	// budget is two minutes.
	DefaultMaxAttempts = 60
)

// API is the subset of the Gamma client the workflow uses.
type API interface {
	Generate(ctx context.Context, req gamma.GenerateRequest) (gamma.CreateResponse, error)
	GenerateFromTemplate(ctx context.Context, req gamma.TemplateRequest) (gamma.CreateResponse, error)
	GetGeneration(ctx context.Context, id string) (gamma.Generation, error)
}

// Generator runs the generation workflow for source files.
type Generator struct {
	api         API
	cfg         config.GammaConfig
	interval    time.Duration
	maxAttempts int
	sleep       func(ctx context.Context, d time.Duration) error
}

// Option configures a Generator.
type Option func(*Generator)

// WithPollInterval overrides the wait between status checks.
func WithPollInterval(d time.Duration) Option {
	return func(g *Generator) { g.interval = d }
}

// WithMaxAttempts overrides the number of status checks before timing out.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// New creates a Generator using api and the validated cfg.
func New(api API, cfg config.GammaConfig, opts ...Option) *Generator {
	g := &Generator{
		api:         api,
		cfg:         cfg,
		interval:    DefaultPollInterval,
		maxAttempts: DefaultMaxAttempts,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run generates a presentation for the markdown file at path and writes its
// redirect stub on success.
func (g *Generator) Run(ctx context.Context, path string) Result {
	content, err := markdown.ReadFile(path)
	if err != nil {
		return errorResult(path, err.Error())
	}

	title, ok := markdown.ExtractTitle(content)
	if !ok {
		title = markdown.FallbackTitle(path)
	}

	res := g.generate(ctx, path, markdown.PrepareContent(content, title))
	res.Title = title
	return res
}

func (g *Generator) generate(ctx context.Context, path, input string) Result {
	id, err := g.submit(ctx, input)
	if err != nil {
		log.ErrorErr(log.CatGamma, "Submit failed", err, "path", path)
		return errorResult(path, err.Error())
	}
	if id == "" {
		return errorResult(path, "No generation ID returned from API")
	}
	log.Info(log.CatGamma, "Generation submitted", "path", path, "generationId", id)

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := g.sleep(ctx, g.interval); err != nil {
			return errorResult(path, fmt.Sprintf("interrupted while waiting for generation: %v", err))
		}

		gen, err := g.api.GetGeneration(ctx, id)
		if err != nil {
			log.ErrorErr(log.CatGamma, "Status check failed", err, "generationId", id, "attempt", attempt)
			return errorResult(path, err.Error())
		}
		log.Debug(log.CatGamma, "Polled generation", "generationId", id, "attempt", attempt, "status", gen.Status)

		switch gen.Status {
		case gamma.StatusCompleted:
			return g.complete(path, gen)
		case gamma.StatusFailed:
			msg := gen.ErrorMessage()
			if msg == "" {
				msg = "Generation failed"
			}
			return Result{Path: path, Status: StatusFailed, Error: msg}
		}
	}

	log.Warn(log.CatGamma, "Generation timed out", "generationId", id, "attempts", g.maxAttempts)
	return Result{
		Path:   path,
		Status: StatusTimedOut,
		Error:  "Timeout: Generation took longer than " + budgetString(g.interval*time.Duration(g.maxAttempts)),
	}
}

// submit starts a template generation when a template is configured and a
// freeform generation otherwise.
func (g *Generator) submit(ctx context.Context, input string) (string, error) {
	if tpl := g.cfg.TemplateID(); tpl != "" {
		resp, err := g.api.GenerateFromTemplate(ctx, gamma.TemplateRequest{
			GammaID: tpl,
			Prompt:  input,
			ThemeID: g.cfg.ThemeID(),
		})
		return resp.GenerationID, err
	}

	resp, err := g.api.Generate(ctx, gamma.GenerateRequest{
		InputText:    input,
		TextMode:     g.cfg.TextMode,
		Format:       g.cfg.Format,
		NumCards:     g.cfg.NumCards,
		CardSplit:    g.cfg.CardSplit,
		ImageOptions: gamma.ImageOptions{Source: g.cfg.ImageSourceAPI()},
		ThemeID:      g.cfg.ThemeID(),
	})
	return resp.GenerationID, err
}

func (g *Generator) complete(path string, gen gamma.Generation) Result {
	url := gen.URL()
	if url == "" {
		return errorResult(path, "Generation completed without a URL")
	}

	htmlPath, err := WriteRedirect(path, url)
	if err != nil {
		return errorResult(path, err.Error())
	}

	log.Info(log.CatGamma, "Generation completed", "path", path, "url", url, "html", htmlPath)
	return Result{
		Path:     path,
		Success:  true,
		Status:   StatusCompleted,
		URL:      url,
		HTMLPath: htmlPath,
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// budgetString renders a poll budget the way users read it: "2 minutes".
func budgetString(d time.Duration) string {
	switch {
	case d == time.Minute:
		return "1 minute"
	case d > 0 && d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	default:
		return d.String()
	}
}

// APIFactory builds the API client from validated settings.
type APIFactory func(cfg config.GammaConfig) (API, error)

// NewGammaAPI is the production APIFactory.
func NewGammaAPI(cfg config.GammaConfig) (API, error) {
	c, err := gamma.NewClient(cfg.APIKey, gamma.WithBaseURL(cfg.BaseURL))
	if err != nil {
		return nil, err
	}
	return c, nil
}

// LoadConfig reads and validates the settings at configPath, phrasing a
// missing file the way users are told to fix it.
func LoadConfig(configPath string) (config.GammaConfig, error) {
	cfg, err := config.LoadGamma(configPath)
	if err != nil {
		if errors.Is(err, config.ErrNotConfigured) {
			return config.GammaConfig{}, fmt.Errorf("Config not found. Create %s", configPath) //nolint:staticcheck // user-facing message
		}
		return config.GammaConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.GammaConfig{}, err
	}
	return cfg, nil
}

// Load reads and validates the settings at configPath and builds a Generator.
// The factory is only called once the settings are valid, so a missing
// credential never reaches the network.
func Load(configPath string, factory APIFactory, opts ...Option) (*Generator, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	api, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating gamma client: %w", err)
	}
	return New(api, cfg, opts...), nil
}

// Config returns the settings the generator runs with.
func (g *Generator) Config() config.GammaConfig {
	return g.cfg
}

// GenerateFile loads settings and runs the workflow for one file.
func GenerateFile(ctx context.Context, configPath, file string, factory APIFactory, opts ...Option) Result {
	path, err := filepath.Abs(file)
	if err != nil {
		return errorResult(file, err.Error())
	}

	g, err := Load(configPath, factory, opts...)
	if err != nil {
		return errorResult(path, err.Error())
	}
	return g.Run(ctx, path)
}
