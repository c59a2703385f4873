package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/repurpose"
)

// Ensure LoggingExtractor implements repurpose.Extractor.
var _ repurpose.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs each scrape with its outcome.
// Failed scrapes are logged at Warn with the failure reason.
type LoggingExtractor struct {
	next   repurpose.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next repurpose.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(ctx context.Context, url string) (result *repurpose.ScrapeResult) {
	defer func(begin time.Time) {
		if result == nil {
			return
		}
		if result.Failed {
			e.logger.WarnContext(ctx, "scrape failed",
				"url", url,
				"platform", result.Platform,
				"reason", result.Reason,
				"diagnostic", result.Content,
				"duration", time.Since(begin),
			)
			return
		}
		e.logger.InfoContext(ctx, "scrape",
			"url", url,
			"platform", result.Platform,
			"author", result.Author,
			"chars", len(result.Content),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(ctx, url)
}

// Ensure LoggingScraper implements repurpose.Scraper.
var _ repurpose.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper and logs URLs it cannot route.
type LoggingScraper struct {
	next   repurpose.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next repurpose.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper.
func (s *LoggingScraper) Scrape(ctx context.Context, url string) (*repurpose.ScrapeResult, error) {
	result, err := s.next.Scrape(ctx, url)
	if err != nil {
		s.logger.WarnContext(ctx, "scrape rejected",
			"url", url,
			"code", repurpose.ErrorCode(err),
			"err", repurpose.ErrorMessage(err),
		)
	}
	return result, err
}
