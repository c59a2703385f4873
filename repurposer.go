package repurpose

import (
	"context"
	"strings"
)

// ManualAuthor is attributed to pasted text when no author is given.
const ManualAuthor = "Manual Input"

// Source is the input to a repurposing run: either a post URL to scrape or
// pasted text with its platform.
type Source struct {
	URL      string   `json:"url,omitempty"`
	Text     string   `json:"text,omitempty"`
	Platform Platform `json:"platform,omitempty"`
	Author   string   `json:"author,omitempty"`
}

// Validate returns an error if the source is not usable.
func (s *Source) Validate() error {
	hasURL := strings.TrimSpace(s.URL) != ""
	hasText := strings.TrimSpace(s.Text) != ""
	switch {
	case hasURL && hasText:
		return Errorf(EINVALID, "provide either a URL or text, not both")
	case !hasURL && !hasText:
		return Errorf(EINVALID, "URL or text required")
	case hasText:
		if _, err := ParsePlatform(string(s.Platform)); err != nil {
			return err
		}
	}
	return nil
}

// Result is the outcome of a repurposing run.
type Result struct {
	Platform   Platform     `json:"platform"`
	Author     string       `json:"author"`
	Content    string       `json:"content"`
	Variations VariationSet `json:"posts"`
}

// Repurposer runs the full pipeline: scrape (or take pasted text), build the
// prompt, generate, and parse three variations.
type Repurposer interface {
	// Repurpose returns EUNPROCESSABLE with the scrape diagnostic when the
	// post could not be extracted; the returned Result then holds only the
	// source fields. Generation errors are returned unchanged.
	Repurpose(ctx context.Context, src Source) (*Result, error)

	// Generate skips scraping and rewrites already-extracted content.
	Generate(ctx context.Context, req GenerationRequest) (VariationSet, error)
}
