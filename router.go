package repurpose

import "context"

// Ensure Router implements Scraper at compile time.
var _ Scraper = (*Router)(nil)

// Router dispatches post URLs to platform-specific extractors.
type Router struct {
	extractors map[Platform]Extractor
}

// NewRouter creates a Router with one extractor per platform.
func NewRouter(twitter, linkedin, reddit Extractor) *Router {
	return &Router{
		extractors: map[Platform]Extractor{
			PlatformTwitter:  twitter,
			PlatformLinkedIn: linkedin,
			PlatformReddit:   reddit,
		},
	}
}

// Route returns the extractor and platform for url.
func (r *Router) Route(url string) (Extractor, Platform, error) {
	platform, err := DetectPlatform(url)
	if err != nil {
		return nil, "", err
	}
	ext := r.extractors[platform]
	if ext == nil {
		return nil, "", Errorf(EINTERNAL, "no extractor registered for %s", platform)
	}
	return ext, platform, nil
}

// Scrape extracts the post at url using the extractor for its platform.
func (r *Router) Scrape(ctx context.Context, url string) (*ScrapeResult, error) {
	ext, _, err := r.Route(url)
	if err != nil {
		return nil, err
	}
	return ext.Extract(ctx, url), nil
}
