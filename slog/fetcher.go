// Package slog provides log/slog decorators for repurpose services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/repurpose"
)

// Ensure LoggingFetcher implements repurpose.Fetcher.
var _ repurpose.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   repurpose.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next repurpose.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, fr *repurpose.FetchRequest) (resp *repurpose.FetchResponse, err error) {
	var url string
	if fr != nil {
		url = fr.URL
	}
	defer func(begin time.Time) {
		var n int
		var status int
		if resp != nil {
			n = len(resp.Body)
			status = resp.StatusCode
		}
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		f.logger.Log(ctx, level, "fetch",
			"url", url,
			"status", status,
			"bytes", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, fr)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
