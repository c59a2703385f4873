package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/repurpose"
)

// Ensure LoggingGenerator implements repurpose.Generator.
var _ repurpose.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with timing and size logging.
// Prompts and responses are never logged.
type LoggingGenerator struct {
	next    repurpose.Generator
	logger  *slog.Logger
	backend string
}

// NewLoggingGenerator creates a new LoggingGenerator. backend names the
// wrapped implementation in log lines.
func NewLoggingGenerator(next repurpose.Generator, backend string, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, backend: backend, logger: logger}
}

// Generate delegates to the wrapped generator.
func (g *LoggingGenerator) Generate(ctx context.Context, prompt string, params repurpose.GenerateParams) (raw string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			g.logger.ErrorContext(ctx, "generate",
				"backend", g.backend,
				"prompt_chars", len(prompt),
				"duration", time.Since(begin),
				"code", repurpose.ErrorCode(err),
				"err", err,
			)
			return
		}
		g.logger.InfoContext(ctx, "generate",
			"backend", g.backend,
			"prompt_chars", len(prompt),
			"response_chars", len(raw),
			"max_tokens", params.MaxOutputTokens,
			"temperature", params.Temperature,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return g.next.Generate(ctx, prompt, params)
}
