package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/repurpose"
	main "github.com/fwojciec/repurpose/cmd/repurpose"
	"github.com/fwojciec/repurpose/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints platform, author and content", func(t *testing.T) {
		t.Parallel()

		scraper := &mock.Scraper{
			ScrapeFn: func(_ context.Context, url string) (*repurpose.ScrapeResult, error) {
				assert.Equal(t, "https://www.reddit.com/r/golang/comments/abc/title", url)
				return &repurpose.ScrapeResult{
					Platform: repurpose.PlatformReddit,
					Content:  "Generics in practice\n\nSome thoughts.",
					Author:   "u/gopher",
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr, Scraper: scraper}

		cmd := &main.ScrapeCmd{URL: "  https://www.reddit.com/r/golang/comments/abc/title "}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Platform: Reddit")
		assert.Contains(t, stdout.String(), "Author:   u/gopher")
		assert.Contains(t, stdout.String(), "Generics in practice\n\nSome thoughts.")
		assert.Empty(t, stderr.String())
	})

	t.Run("prints JSON with the error flag", func(t *testing.T) {
		t.Parallel()

		scraper := &mock.Scraper{
			ScrapeFn: func(_ context.Context, _ string) (*repurpose.ScrapeResult, error) {
				return &repurpose.ScrapeResult{Platform: repurpose.PlatformTwitter, Content: "hello", Author: "Gopher"}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Scraper: scraper}

		cmd := &main.ScrapeCmd{URL: "https://x.com/gopher/status/1", JSON: true}
		require.NoError(t, cmd.Run(deps))

		var got map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, "twitter", got["platform"])
		assert.Equal(t, "hello", got["content"])
		assert.Equal(t, "Gopher", got["author"])
		assert.Equal(t, false, got["error"])
	})

	t.Run("reports failed scrape with a manual input hint", func(t *testing.T) {
		t.Parallel()

		diagnostic := "Unable to scrape LinkedIn content due to authentication requirements. Please provide the post text manually."
		scraper := &mock.Scraper{
			ScrapeFn: func(_ context.Context, _ string) (*repurpose.ScrapeResult, error) {
				return repurpose.ScrapeFailure(repurpose.PlatformLinkedIn, repurpose.FailureMissing, diagnostic), nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr, Scraper: scraper}

		cmd := &main.ScrapeCmd{URL: "https://www.linkedin.com/posts/gopher-123"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, repurpose.EUNPROCESSABLE, repurpose.ErrorCode(err))
		assert.Contains(t, stderr.String(), diagnostic)
		assert.Contains(t, stderr.String(), "--platform linkedin")
		assert.Empty(t, stdout.String())
	})

	t.Run("lists supported sites for unsupported URLs", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Scraper: repurpose.NewRouter(nil, nil, nil),
		}

		cmd := &main.ScrapeCmd{URL: "https://example.com/post"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, repurpose.EUNSUPPORTED, repurpose.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
		assert.Contains(t, stderr.String(), "Supported sites")
	})
}
