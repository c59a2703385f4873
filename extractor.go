package repurpose

import "context"

// FailureReason classifies why a scrape failed.
type FailureReason string

// FailureReason values. FailureNone marks a successful scrape.
const (
	FailureNone      FailureReason = ""
	FailureNetwork   FailureReason = "network"
	FailureTimeout   FailureReason = "timeout"
	FailureMalformed FailureReason = "malformed"
	FailureMissing   FailureReason = "missing"
)

// FailureReasonOf maps a fetch or parse error to a FailureReason.
func FailureReasonOf(err error) FailureReason {
	switch ErrorCode(err) {
	case "":
		return FailureNone
	case ETIMEOUT:
		return FailureTimeout
	case EMALFORMED:
		return FailureMalformed
	default:
		return FailureNetwork
	}
}

// ScrapeResult holds the text and author extracted from a post.
//
// Content is never empty: when extraction fails it holds a human-readable
// diagnostic telling the user to paste the post manually, and Failed is set.
type ScrapeResult struct {
	Platform Platform      `json:"platform"`
	Content  string        `json:"content"`
	Author   string        `json:"author"`
	Failed   bool          `json:"error"`
	Reason   FailureReason `json:"reason,omitempty"`
}

// Text returns the renderable text of the result: the post body on success,
// the diagnostic on failure.
func (r *ScrapeResult) Text() string {
	return r.Content
}

// UnknownAuthor is used when a post's author cannot be determined.
const UnknownAuthor = "Unknown"

// ScrapeFailure builds a failed ScrapeResult carrying a diagnostic.
func ScrapeFailure(platform Platform, reason FailureReason, diagnostic string) *ScrapeResult {
	return &ScrapeResult{
		Platform: platform,
		Content:  diagnostic,
		Author:   UnknownAuthor,
		Failed:   true,
		Reason:   reason,
	}
}

// Extractor pulls the body text and author out of a post on one platform.
type Extractor interface {
	// Extract fetches the post at url. It never returns an error: every
	// failure is reported as a ScrapeResult with Failed set.
	Extract(ctx context.Context, url string) *ScrapeResult
}

// Scraper scrapes a post from any supported platform.
type Scraper interface {
	// Scrape routes the URL to the matching extractor.
	// Returns EUNSUPPORTED if the URL belongs to no supported platform.
	Scrape(ctx context.Context, url string) (*ScrapeResult, error)
}
