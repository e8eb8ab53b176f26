package gamma

import (
	"encoding/json"
	"fmt"
)

// Generation statuses reported by GET /generations/{id}.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Theme is a visual style available in the workspace.
type Theme struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type,omitempty"` // "standard" or "custom"
	ColorKeywords []string `json:"colorKeywords,omitempty"`
	ToneKeywords  []string `json:"toneKeywords,omitempty"`
}

// ImageOptions controls image selection for generated cards.
type ImageOptions struct {
	Source string `json:"source,omitempty"`
	Model  string `json:"model,omitempty"`
	Style  string `json:"style,omitempty"`
}

// DefaultTemplateImageOptions is sent with template generations that do not
// specify image options.
var DefaultTemplateImageOptions = ImageOptions{
	Model: "flux-1-quick",
	Style: "match my theme",
}

// GenerateRequest is the body of POST /generations.
type GenerateRequest struct {
	InputText    string       `json:"inputText"`
	TextMode     string       `json:"textMode"`
	Format       string       `json:"format"`
	NumCards     int          `json:"numCards"`
	CardSplit    string       `json:"cardSplit"`
	ImageOptions ImageOptions `json:"imageOptions"`
	ThemeID      string       `json:"themeId,omitempty"`
}

// TemplateRequest is the body of POST /generations/from-template.
type TemplateRequest struct {
	GammaID      string       `json:"gammaId"`
	Prompt       string       `json:"prompt"`
	ImageOptions ImageOptions `json:"imageOptions"`
	ThemeID      string       `json:"themeId,omitempty"`
}

// CreateResponse is returned by both generation endpoints.
type CreateResponse struct {
	GenerationID string `json:"generationId"`
}

// Credits reports credit usage for a finished generation.
type Credits struct {
	Deducted  int `json:"deducted"`
	Remaining int `json:"remaining"`
}

// Generation is the polled status of a generation.
type Generation struct {
	GenerationID string       `json:"generationId"`
	Status       string       `json:"status"`
	GammaURL     string       `json:"gammaUrl,omitempty"`
	LegacyURL    string       `json:"url,omitempty"`
	Error        *ErrorDetail `json:"error,omitempty"`
	Credits      *Credits     `json:"credits,omitempty"`
}

// URL returns the hosted artifact URL, preferring gammaUrl.
func (g Generation) URL() string {
	if g.GammaURL != "" {
		return g.GammaURL
	}
	return g.LegacyURL
}

// ErrorMessage returns the vendor failure text, or "" when none was sent.
func (g Generation) ErrorMessage() string {
	if g.Error == nil {
		return ""
	}
	return g.Error.Message
}

// ErrorDetail is a vendor error that arrives either as a plain string or as
// an object with a message field.
type ErrorDetail struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// UnmarshalJSON accepts "text" as well as {"message": "text"}.
func (e *ErrorDetail) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Message = s
		return nil
	}

	type plain ErrorDetail
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decoding error detail: %w", err)
	}
	*e = ErrorDetail(p)
	return nil
}

// themePage is one page of GET /themes in its object form.
type themePage struct {
	Data       []Theme `json:"data"`
	HasMore    bool    `json:"hasMore"`
	NextCursor string  `json:"nextCursor"`
}
