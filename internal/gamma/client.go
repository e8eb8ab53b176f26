// Package gamma is a client for the Gamma public API: theme listing,
// generation (freeform and from a template) and generation status.
package gamma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zjrosen/rtkit/internal/log"
)

// DefaultBaseURL is the base URL for the Gamma public API.
const DefaultBaseURL = "https://public-api.gamma.app/v1.0"

// defaultTimeout bounds a single HTTP round trip, not a whole generation.
const defaultTimeout = 60 * time.Second

// maxThemePages stops runaway pagination.
const maxThemePages = 100

// Client talks to the Gamma public API.
type Client struct {
	apiKey  string
	baseURL string
	hc      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root (no trailing slash required).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// NewClient creates a Client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("api key cannot be empty")
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		hc:      &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListThemes returns every theme in the workspace, following pagination.
func (c *Client) ListThemes(ctx context.Context) ([]Theme, error) {
	var themes []Theme
	cursor := ""

	for page := 0; page < maxThemePages; page++ {
		query := url.Values{}
		if cursor != "" {
			query.Set("after", cursor)
		}

		var raw json.RawMessage
		if err := c.getJSON(ctx, "/themes", query, &raw); err != nil {
			return nil, fmt.Errorf("listing themes: %w", err)
		}

		// The endpoint has answered both with a bare array and with a page object.
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var list []Theme
			if err := json.Unmarshal(trimmed, &list); err != nil {
				return nil, fmt.Errorf("decoding themes: %w", err)
			}
			return append(themes, list...), nil
		}

		var p themePage
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, fmt.Errorf("decoding themes: %w", err)
		}
		themes = append(themes, p.Data...)

		if !p.HasMore || p.NextCursor == "" || p.NextCursor == cursor {
			return themes, nil
		}
		cursor = p.NextCursor
	}

	log.Warn(log.CatGamma, "Theme pagination limit reached", "pages", maxThemePages)
	return themes, nil
}

// Generate starts a freeform generation from input text.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (CreateResponse, error) {
	var resp CreateResponse
	if err := c.postJSON(ctx, "/generations", req, &resp); err != nil {
		return CreateResponse{}, fmt.Errorf("creating generation: %w", err)
	}
	log.Debug(log.CatGamma, "Generation created", "generationId", resp.GenerationID, "format", req.Format)
	return resp, nil
}

// GenerateFromTemplate starts a generation that fills an existing template.
func (c *Client) GenerateFromTemplate(ctx context.Context, req TemplateRequest) (CreateResponse, error) {
	if req.ImageOptions == (ImageOptions{}) {
		req.ImageOptions = DefaultTemplateImageOptions
	}

	var resp CreateResponse
	if err := c.postJSON(ctx, "/generations/from-template", req, &resp); err != nil {
		return CreateResponse{}, fmt.Errorf("creating generation from template: %w", err)
	}
	log.Debug(log.CatGamma, "Template generation created", "generationId", resp.GenerationID, "template", req.GammaID)
	return resp, nil
}

// GetGeneration fetches the current status of a generation.
func (c *Client) GetGeneration(ctx context.Context, id string) (Generation, error) {
	if id == "" {
		return Generation{}, errors.New("generation id cannot be empty")
	}

	var gen Generation
	if err := c.getJSON(ctx, "/generations/"+url.PathEscape(id), nil, &gen); err != nil {
		return Generation{}, fmt.Errorf("fetching generation %s: %w", id, err)
	}
	return gen, nil
}

// newRequest builds a request with the base URL and auth headers applied.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return c.do(req, dest)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, bytes.NewReader(body))
	if err != nil {
		return err
	}
	return c.do(req, dest)
}

// do sends req, checks for a 2xx status and decodes the body into dest.
func (c *Client) do(req *http.Request, dest any) error {
	resp, err := c.hc.Do(req) //nolint:gosec // URL is built from the configured base URL
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, body)
		log.Debug(log.CatGamma, "API error", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
