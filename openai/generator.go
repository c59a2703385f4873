// Package openai implements repurpose.Generator against any OpenAI-compatible
// chat completions endpoint. The default target is a local Ollama server.
package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/repurpose"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Defaults for a local Ollama server.
const (
	DefaultBaseURL = "http://localhost:11434/v1"
	DefaultModel   = "llama3.2"
	DefaultTimeout = 120 * time.Second
)

// placeholderAPIKey is sent when none is configured. Ollama ignores the
// header but the client insists on one.
const placeholderAPIKey = "ollama"

// Ensure Generator implements repurpose.Generator at compile time.
var _ repurpose.Generator = (*Generator)(nil)

// Generator implements repurpose.Generator with chat completions.
type Generator struct {
	client  openai.Client
	baseURL string
	model   string
	timeout time.Duration
}

// Option configures a Generator.
type Option func(*config)

type config struct {
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	httpClient *http.Client
}

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *config) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithAPIKey sets the bearer token for hosted endpoints.
func WithAPIKey(key string) Option {
	return func(c *config) {
		c.apiKey = key
	}
}

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(c *config) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.httpClient = hc
	}
}

// NewGenerator creates a Generator. Requests are never retried.
func NewGenerator(opts ...Option) *Generator {
	c := config{
		baseURL: DefaultBaseURL,
		apiKey:  placeholderAPIKey,
		model:   DefaultModel,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.apiKey == "" {
		c.apiKey = placeholderAPIKey
	}

	reqOpts := []option.RequestOption{
		option.WithBaseURL(c.baseURL),
		option.WithAPIKey(c.apiKey),
		option.WithMaxRetries(0),
	}
	if c.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(c.httpClient))
	}

	return &Generator{
		client:  openai.NewClient(reqOpts...),
		baseURL: c.baseURL,
		model:   c.model,
		timeout: c.timeout,
	}
}

// Model returns the model name requests are sent to.
func (g *Generator) Model() string {
	return g.model
}

// BaseURL returns the endpoint requests are sent to.
func (g *Generator) BaseURL() string {
	return g.baseURL
}

// Generate sends prompt as a single user message and returns the first
// choice's content.
func (g *Generator) Generate(ctx context.Context, prompt string, params repurpose.GenerateParams) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", repurpose.Errorf(repurpose.EINVALID, "prompt required")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(int64(params.MaxOutputTokens)),
		Temperature: openai.Float(params.Temperature),
	})
	if err != nil {
		return "", g.classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", repurpose.Errorf(repurpose.EINTERNAL, "%s returned no choices", g.model)
	}

	return resp.Choices[0].Message.Content, nil
}

// Models lists the model IDs the endpoint serves.
func (g *Generator) Models(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	page, err := g.client.Models.List(ctx)
	if err != nil {
		return nil, g.classify(err)
	}

	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// Ping reports whether the endpoint is reachable.
func (g *Generator) Ping(ctx context.Context) error {
	_, err := g.Models(ctx)
	return err
}

// classify maps client failures onto application error codes.
func (g *Generator) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return repurpose.Errorf(repurpose.ETIMEOUT, "%s timed out", g.baseURL)
	}

	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return repurpose.Errorf(repurpose.EUNAVAILABLE, "cannot reach %s: %v", g.baseURL, err)
	}

	msg := apiErr.Message
	if msg == "" {
		msg = http.StatusText(apiErr.StatusCode)
	}

	switch code := apiErr.StatusCode; {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return repurpose.Errorf(repurpose.EUNAUTHORIZED, "%s: %s", g.baseURL, msg)
	case code == http.StatusNotFound:
		return repurpose.Errorf(repurpose.ENOTFOUND, "model %s: %s", g.model, msg)
	case code == http.StatusBadRequest:
		return repurpose.Errorf(repurpose.EINVALID, "%s: %s", g.baseURL, msg)
	case code == http.StatusTooManyRequests || code >= 500:
		return repurpose.Errorf(repurpose.EUNAVAILABLE, "%s: %s", g.baseURL, msg)
	default:
		return repurpose.Errorf(repurpose.EINTERNAL, "%s: %s", g.baseURL, msg)
	}
}
