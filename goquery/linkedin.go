package goquery

import (
	"context"
	"fmt"

	"github.com/fwojciec/repurpose"
)

const (
	linkedinUnavailable = "Unable to scrape LinkedIn content due to authentication requirements. Please provide the post text manually."
	linkedinErrorFormat = "Error scraping LinkedIn: %s. Please provide the post text manually."
)

// Ensure LinkedInExtractor implements repurpose.Extractor at compile time.
var _ repurpose.Extractor = (*LinkedInExtractor)(nil)

// LinkedInExtractor reads a post's Open Graph metadata. Public post pages
// expose the body as og:description and the author as og:title; everything
// else sits behind a login wall. Attribute values are used as decoded by
// the HTML parser; literal angle brackets in a post are post text.
type LinkedInExtractor struct {
	fetcher repurpose.Fetcher
}

// NewLinkedInExtractor creates a LinkedInExtractor backed by fetcher.
func NewLinkedInExtractor(fetcher repurpose.Fetcher) *LinkedInExtractor {
	return &LinkedInExtractor{fetcher: fetcher}
}

// Extract fetches the post page and reads its Open Graph tags.
func (e *LinkedInExtractor) Extract(ctx context.Context, url string) *repurpose.ScrapeResult {
	resp, err := e.fetcher.Fetch(ctx, &repurpose.FetchRequest{URL: url})
	if err != nil {
		return e.failure(err)
	}

	doc, err := parseDocument(resp.Body)
	if err != nil {
		return e.failure(err)
	}

	content := metaContent(doc, "og:description")
	if content == "" {
		return repurpose.ScrapeFailure(repurpose.PlatformLinkedIn, repurpose.FailureMissing, linkedinUnavailable)
	}

	author := metaContent(doc, "og:title")
	if author == "" {
		author = repurpose.UnknownAuthor
	}

	return &repurpose.ScrapeResult{
		Platform: repurpose.PlatformLinkedIn,
		Content:  content,
		Author:   author,
	}
}

func (e *LinkedInExtractor) failure(err error) *repurpose.ScrapeResult {
	return repurpose.ScrapeFailure(
		repurpose.PlatformLinkedIn,
		repurpose.FailureReasonOf(err),
		fmt.Sprintf(linkedinErrorFormat, repurpose.ErrorMessage(err)),
	)
}
