package goquery

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/repurpose"
)

// DefaultTwitterMirror is the nitter instance tweets are read from.
const DefaultTwitterMirror = "https://nitter.net"

const (
	twitterUnavailable = "Unable to scrape Twitter content. Please provide the tweet text manually."
	twitterErrorFormat = "Error scraping Twitter: %s. Please provide the tweet text manually."
)

// CSS selectors on the mirror's tweet page.
const (
	tweetContentSelector = "div.tweet-content"
	tweetAuthorSelector  = "a.fullname"
)

// Ensure TwitterExtractor implements repurpose.Extractor at compile time.
var _ repurpose.Extractor = (*TwitterExtractor)(nil)

// TwitterExtractor reads tweets through a nitter mirror, which serves plain
// HTML where twitter.com and x.com require JavaScript.
type TwitterExtractor struct {
	fetcher repurpose.Fetcher
	mirror  string
}

// TwitterOption configures a TwitterExtractor.
type TwitterOption func(*TwitterExtractor)

// WithMirror sets the mirror base URL. Defaults to DefaultTwitterMirror.
func WithMirror(base string) TwitterOption {
	return func(e *TwitterExtractor) {
		e.mirror = strings.TrimRight(base, "/")
	}
}

// NewTwitterExtractor creates a TwitterExtractor backed by fetcher.
func NewTwitterExtractor(fetcher repurpose.Fetcher, opts ...TwitterOption) *TwitterExtractor {
	e := &TwitterExtractor{
		fetcher: fetcher,
		mirror:  DefaultTwitterMirror,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract fetches the tweet from the mirror and reads its body and author.
func (e *TwitterExtractor) Extract(ctx context.Context, rawURL string) *repurpose.ScrapeResult {
	mirrorURL, err := MirrorURL(rawURL, e.mirror)
	if err != nil {
		return e.failure(err)
	}

	resp, err := e.fetcher.Fetch(ctx, &repurpose.FetchRequest{URL: mirrorURL})
	if err != nil {
		return e.failure(err)
	}

	doc, err := parseDocument(resp.Body)
	if err != nil {
		return e.failure(err)
	}

	content := firstText(doc, tweetContentSelector)
	author := firstText(doc, tweetAuthorSelector)
	if content == "" || author == "" {
		return repurpose.ScrapeFailure(repurpose.PlatformTwitter, repurpose.FailureMissing, twitterUnavailable)
	}

	return &repurpose.ScrapeResult{
		Platform: repurpose.PlatformTwitter,
		Content:  content,
		Author:   author,
	}
}

func (e *TwitterExtractor) failure(err error) *repurpose.ScrapeResult {
	return repurpose.ScrapeFailure(
		repurpose.PlatformTwitter,
		repurpose.FailureReasonOf(err),
		fmt.Sprintf(twitterErrorFormat, repurpose.ErrorMessage(err)),
	)
}

// MirrorURL swaps the scheme and host of a tweet URL for those of mirror,
// keeping path and query.
func MirrorURL(rawURL, mirror string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", repurpose.Errorf(repurpose.EINVALID, "invalid tweet URL %q", rawURL)
	}
	m, err := url.Parse(mirror)
	if err != nil || m.Host == "" {
		return "", repurpose.Errorf(repurpose.EINVALID, "invalid mirror URL %q", mirror)
	}
	u.Scheme = m.Scheme
	u.Host = m.Host
	u.Fragment = ""
	return u.String(), nil
}
