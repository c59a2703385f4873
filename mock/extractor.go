package mock

import (
	"context"

	"github.com/fwojciec/repurpose"
)

var _ repurpose.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of repurpose.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, url string) *repurpose.ScrapeResult
}

func (e *Extractor) Extract(ctx context.Context, url string) *repurpose.ScrapeResult {
	return e.ExtractFn(ctx, url)
}

var _ repurpose.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of repurpose.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, url string) (*repurpose.ScrapeResult, error)
}

func (s *Scraper) Scrape(ctx context.Context, url string) (*repurpose.ScrapeResult, error) {
	return s.ScrapeFn(ctx, url)
}
