// Package gjson implements the Reddit extractor on top of Reddit's public
// JSON listing API, read with gjson.
package gjson

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/fwojciec/repurpose"
	"github.com/tidwall/gjson"
)

const redditErrorFormat = "Error scraping Reddit: %s. Please provide the post text manually."

// postPath addresses the submission in a thread listing: the first listing
// holds the post, the second the comments.
const postPath = "0.data.children.0.data"

// Ensure RedditExtractor implements repurpose.Extractor at compile time.
var _ repurpose.Extractor = (*RedditExtractor)(nil)

// RedditExtractor reads a post through its ".json" endpoint.
type RedditExtractor struct {
	fetcher repurpose.Fetcher
}

// NewRedditExtractor creates a RedditExtractor backed by fetcher.
func NewRedditExtractor(fetcher repurpose.Fetcher) *RedditExtractor {
	return &RedditExtractor{fetcher: fetcher}
}

// Extract fetches the thread listing and reads the submission's title,
// self text and author.
func (e *RedditExtractor) Extract(ctx context.Context, url string) *repurpose.ScrapeResult {
	resp, err := e.fetcher.Fetch(ctx, &repurpose.FetchRequest{
		URL: JSONURL(url),
		Header: map[string]string{
			"Accept":          "application/json, text/html",
			"Accept-Language": "en-US,en;q=0.9",
		},
		ExpectContentType: "json",
	})
	if err != nil {
		return failure(err)
	}

	// Fetchers that do not enforce ExpectContentType still hand back the
	// header; a login or block page must not reach the JSON parser.
	if !strings.Contains(strings.ToLower(resp.ContentType), "json") {
		return failure(repurpose.Errorf(repurpose.EMALFORMED, "unexpected content type %q, want json", resp.ContentType))
	}

	result, err := ParsePost(resp.Body)
	if err != nil {
		return failure(err)
	}
	return result
}

// ParsePost reads the submission out of a thread listing body.
func ParsePost(body []byte) (*repurpose.ScrapeResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, repurpose.Errorf(repurpose.EMALFORMED, "invalid JSON response")
	}

	post := gjson.GetBytes(body, postPath)
	if !post.IsObject() {
		return nil, repurpose.Errorf(repurpose.EMALFORMED, "no post in response")
	}

	title := post.Get("title")
	if !title.Exists() {
		return nil, repurpose.Errorf(repurpose.EMALFORMED, "post has no title")
	}

	content := html.UnescapeString(title.String())
	if selftext := html.UnescapeString(post.Get("selftext").String()); selftext != "" {
		content += "\n\n" + selftext
	}
	if strings.TrimSpace(content) == "" {
		return nil, repurpose.Errorf(repurpose.EMALFORMED, "post has no text")
	}

	author := post.Get("author").String()
	if author == "" {
		author = repurpose.UnknownAuthor
	}

	return &repurpose.ScrapeResult{
		Platform: repurpose.PlatformReddit,
		Content:  content,
		Author:   "u/" + author,
	}, nil
}

// JSONURL returns the JSON listing URL for a Reddit post URL. The suffix
// goes on the path so share links keep their query; the fragment is dropped.
func JSONURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return strings.TrimRight(rawURL, "/") + ".json"
	}
	u.Path = strings.TrimRight(u.Path, "/") + ".json"
	u.RawPath = ""
	u.Fragment = ""
	return u.String()
}

func failure(err error) *repurpose.ScrapeResult {
	return repurpose.ScrapeFailure(
		repurpose.PlatformReddit,
		repurpose.FailureReasonOf(err),
		fmt.Sprintf(redditErrorFormat, repurpose.ErrorMessage(err)),
	)
}
