// Package config loads repurpose settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/repurpose"
	"github.com/fwojciec/repurpose/gemini"
	"github.com/fwojciec/repurpose/goquery"
	repurposehttp "github.com/fwojciec/repurpose/http"
	"github.com/fwojciec/repurpose/openai"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Generation backends.
const (
	BackendGemini = "gemini"
	BackendOllama = "ollama"
)

// Config holds all settings. Build it with Default, then Load and ApplyEnv.
type Config struct {
	Backend    string                `yaml:"backend" validate:"oneof=gemini ollama"`
	Addr       string                `yaml:"addr" validate:"required"`
	Gemini     GeminiConfig          `yaml:"gemini"`
	Ollama     OllamaConfig          `yaml:"ollama"`
	Scrape     ScrapeConfig          `yaml:"scrape"`
	Generation GenerationConfig      `yaml:"generation"`
	Prompt     repurpose.PromptRules `yaml:"prompt"`
}

// GeminiConfig configures the cloud backend. An empty APIKey is allowed
// here; generation then fails with EUNAUTHORIZED.
type GeminiConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model" validate:"required"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// OllamaConfig configures the local backend, reached through its
// OpenAI-compatible API.
type OllamaConfig struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model" validate:"required"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// ScrapeConfig configures fetching.
type ScrapeConfig struct {
	Timeout       time.Duration `yaml:"timeout" validate:"gt=0"`
	UserAgent     string        `yaml:"user_agent" validate:"required"`
	TwitterMirror string        `yaml:"twitter_mirror" validate:"required,url"`

	// RequestsPerSecond paces requests per host. Zero disables pacing.
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`

	// Browser renders Twitter and LinkedIn pages in headless Chrome.
	Browser bool `yaml:"browser"`
}

// GenerationConfig holds sampling parameters.
type GenerationConfig struct {
	MaxOutputTokens int     `yaml:"max_output_tokens" validate:"gt=0"`
	Temperature     float64 `yaml:"temperature" validate:"gte=0,lte=2"`
}

// Params returns the generation parameters.
func (c GenerationConfig) Params() repurpose.GenerateParams {
	return repurpose.GenerateParams{
		MaxOutputTokens: c.MaxOutputTokens,
		Temperature:     c.Temperature,
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	params := repurpose.DefaultGenerateParams()
	return &Config{
		Backend: BackendGemini,
		Addr:    repurposehttp.DefaultAddr,
		Gemini: GeminiConfig{
			Model:   gemini.DefaultModel,
			Timeout: gemini.DefaultTimeout,
		},
		Ollama: OllamaConfig{
			BaseURL: openai.DefaultBaseURL,
			Model:   openai.DefaultModel,
			Timeout: openai.DefaultTimeout,
		},
		Scrape: ScrapeConfig{
			Timeout:       repurposehttp.DefaultFetchTimeout,
			UserAgent:     repurposehttp.DefaultUserAgent,
			TwitterMirror: goquery.DefaultTwitterMirror,
		},
		Generation: GenerationConfig{
			MaxOutputTokens: params.MaxOutputTokens,
			Temperature:     params.Temperature,
		},
		Prompt: repurpose.DefaultPromptRules(),
	}
}

// Load merges the YAML file at path over c. A missing file is not an error
// when optional is true.
func (c *Config) Load(path string, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return repurpose.Errorf(repurpose.EINVALID, "parse config %s: %v", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables read with getenv.
// Empty variables are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Backend, "REPURPOSE_BACKEND")
	set(&c.Addr, "REPURPOSE_ADDR")
	set(&c.Gemini.APIKey, "GEMINI_API_KEY")
	set(&c.Gemini.Model, "GEMINI_MODEL")
	set(&c.Ollama.BaseURL, "OLLAMA_BASE_URL")
	set(&c.Ollama.Model, "OLLAMA_MODEL")
	set(&c.Scrape.TwitterMirror, "REPURPOSE_TWITTER_MIRROR")
}

// Validate reports every invalid field as a single EINVALID error.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return repurpose.Errorf(repurpose.EINVALID, "config: %v", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return repurpose.Errorf(repurpose.EINVALID, "config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", field, fe.Value())
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param())
	}
}
