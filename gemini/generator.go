// Package gemini implements repurpose.Generator using Google Gemini.
package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/repurpose"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultTimeout bounds a single generation call.
const DefaultTimeout = 60 * time.Second

// Ensure Generator implements repurpose.Generator at compile time.
var _ repurpose.Generator = (*Generator)(nil)

// Generator implements repurpose.Generator using the Gemini API.
type Generator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		g.timeout = d
	}
}

// NewGenerator creates a Generator. A nil client makes every call fail with
// EUNAUTHORIZED, which is how a missing API key surfaces.
func NewGenerator(client *genai.Client, opts ...Option) *Generator {
	g := &Generator{
		client:  client,
		model:   DefaultModel,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Model returns the model name requests are sent to.
func (g *Generator) Model() string {
	return g.model
}

// Generate sends prompt as a single user turn and returns the response text.
func (g *Generator) Generate(ctx context.Context, prompt string, params repurpose.GenerateParams) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", repurpose.Errorf(repurpose.EINVALID, "prompt required")
	}
	if g.client == nil {
		return "", repurpose.Errorf(repurpose.EUNAUTHORIZED, "Gemini API key not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		BuildConfig(params),
	)
	if err != nil {
		return "", classify(err)
	}
	if result == nil {
		return "", repurpose.Errorf(repurpose.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for params.
func BuildConfig(params repurpose.GenerateParams) *genai.GenerateContentConfig {
	temp := float32(params.Temperature)
	return &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(params.MaxOutputTokens),
	}
}

// classify maps Gemini API failures onto application error codes.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return repurpose.Errorf(repurpose.ETIMEOUT, "gemini request timed out")
	}

	code, msg, ok := apiError(err)
	if !ok {
		return repurpose.Errorf(repurpose.EUNAVAILABLE, "gemini: %v", err)
	}

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return repurpose.Errorf(repurpose.EUNAUTHORIZED, "gemini: %s", msg)
	case code == http.StatusBadRequest:
		return repurpose.Errorf(repurpose.EINVALID, "gemini: %s", msg)
	case code == http.StatusTooManyRequests || code >= 500:
		return repurpose.Errorf(repurpose.EUNAVAILABLE, "gemini: %s", msg)
	default:
		return repurpose.Errorf(repurpose.EINTERNAL, "gemini: %s", msg)
	}
}

// apiError extracts the HTTP status and message from a genai.APIError,
// which the SDK returns by value or by pointer depending on the call path.
func apiError(err error) (int, string, bool) {
	var v genai.APIError
	if errors.As(err, &v) {
		return v.Code, v.Message, true
	}
	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return p.Code, p.Message, true
	}
	return 0, "", false
}
