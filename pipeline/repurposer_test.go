package pipeline_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/repurpose"
	"github.com/fwojciec/repurpose/mock"
	"github.com/fwojciec/repurpose/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeVariations = "VARIATION 1:\nAAA\nVARIATION 2:\nBBB\nVARIATION 3:\nCCC"

func staticGenerator(raw string, got *string) *mock.Generator {
	return &mock.Generator{
		GenerateFn: func(ctx context.Context, prompt string, params repurpose.GenerateParams) (string, error) {
			if got != nil {
				*got = prompt
			}
			return raw, nil
		},
	}
}

func TestRepurposer_Repurpose(t *testing.T) {
	t.Parallel()

	t.Run("scrapes, generates and parses", func(t *testing.T) {
		t.Parallel()

		var prompt string
		r := &pipeline.Repurposer{
			Scraper: &mock.Scraper{
				ScrapeFn: func(ctx context.Context, url string) (*repurpose.ScrapeResult, error) {
					return &repurpose.ScrapeResult{Platform: repurpose.PlatformReddit, Content: "Title\n\nBody", Author: "u/alice"}, nil
				},
			},
			Generator: staticGenerator(threeVariations, &prompt),
		}

		res, err := r.Repurpose(context.Background(), repurpose.Source{URL: "https://www.reddit.com/r/go/comments/1"})

		require.NoError(t, err)
		assert.Equal(t, repurpose.VariationSet{"AAA", "BBB", "CCC"}, res.Variations)
		assert.Equal(t, repurpose.PlatformReddit, res.Platform)
		assert.Equal(t, "u/alice", res.Author)
		assert.Contains(t, prompt, "I have a post from REDDIT by u/alice")
		assert.Contains(t, prompt, "---\nTitle\n\nBody\n---")
	})

	t.Run("stops with EUNPROCESSABLE when the scrape failed", func(t *testing.T) {
		t.Parallel()

		diagnostic := "Unable to scrape Twitter content. Please provide the tweet text manually."
		generated := false
		r := &pipeline.Repurposer{
			Scraper: &mock.Scraper{
				ScrapeFn: func(ctx context.Context, url string) (*repurpose.ScrapeResult, error) {
					return repurpose.ScrapeFailure(repurpose.PlatformTwitter, repurpose.FailureMissing, diagnostic), nil
				},
			},
			Generator: &mock.Generator{
				GenerateFn: func(ctx context.Context, prompt string, params repurpose.GenerateParams) (string, error) {
					generated = true
					return "", nil
				},
			},
		}

		res, err := r.Repurpose(context.Background(), repurpose.Source{URL: "https://x.com/a/status/1"})

		require.Error(t, err)
		assert.Equal(t, repurpose.EUNPROCESSABLE, repurpose.ErrorCode(err))
		assert.Equal(t, diagnostic, repurpose.ErrorMessage(err))
		require.NotNil(t, res)
		assert.Equal(t, diagnostic, res.Content)
		assert.Equal(t, repurpose.PlatformTwitter, res.Platform)
		assert.False(t, generated)
	})

	t.Run("returns routing errors unchanged", func(t *testing.T) {
		t.Parallel()

		r := &pipeline.Repurposer{
			Scraper: &mock.Scraper{
				ScrapeFn: func(ctx context.Context, url string) (*repurpose.ScrapeResult, error) {
					return nil, repurpose.Errorf(repurpose.EUNSUPPORTED, "unsupported platform: %s", url)
				},
			},
		}

		res, err := r.Repurpose(context.Background(), repurpose.Source{URL: "https://example.com/x"})

		require.Error(t, err)
		assert.Equal(t, repurpose.EUNSUPPORTED, repurpose.ErrorCode(err))
		assert.Nil(t, res)
	})

	t.Run("uses pasted text with manual author", func(t *testing.T) {
		t.Parallel()

		var prompt string
		r := &pipeline.Repurposer{
			Generator: staticGenerator(threeVariations, &prompt),
		}

		res, err := r.Repurpose(context.Background(), repurpose.Source{Text: "  pasted post  ", Platform: "x"})

		require.NoError(t, err)
		assert.Equal(t, repurpose.PlatformTwitter, res.Platform)
		assert.Equal(t, repurpose.ManualAuthor, res.Author)
		assert.Equal(t, "pasted post", res.Content)
		assert.Contains(t, prompt, "I have a post from TWITTER by Manual Input")
	})

	t.Run("explicit author overrides scraped author", func(t *testing.T) {
		t.Parallel()

		r := &pipeline.Repurposer{
			Scraper: &mock.Scraper{
				ScrapeFn: func(ctx context.Context, url string) (*repurpose.ScrapeResult, error) {
					return &repurpose.ScrapeResult{Platform: repurpose.PlatformLinkedIn, Content: "c", Author: "Unknown"}, nil
				},
			},
			Generator: staticGenerator(threeVariations, nil),
		}

		res, err := r.Repurpose(context.Background(), repurpose.Source{URL: "https://linkedin.com/posts/1", Author: "Jane"})

		require.NoError(t, err)
		assert.Equal(t, "Jane", res.Author)
	})

	t.Run("rejects invalid source", func(t *testing.T) {
		t.Parallel()

		r := &pipeline.Repurposer{}

		_, err := r.Repurpose(context.Background(), repurpose.Source{})

		require.Error(t, err)
		assert.Equal(t, repurpose.EINVALID, repurpose.ErrorCode(err))
	})

	t.Run("returns generator errors unchanged with partial result", func(t *testing.T) {
		t.Parallel()

		r := &pipeline.Repurposer{
			Generator: &mock.Generator{
				GenerateFn: func(ctx context.Context, prompt string, params repurpose.GenerateParams) (string, error) {
					return "", repurpose.Errorf(repurpose.ETIMEOUT, "backend timed out")
				},
			},
		}

		res, err := r.Repurpose(context.Background(), repurpose.Source{Text: "t", Platform: repurpose.PlatformReddit})

		require.Error(t, err)
		assert.Equal(t, repurpose.ETIMEOUT, repurpose.ErrorCode(err))
		require.NotNil(t, res)
		assert.Equal(t, "t", res.Content)
	})

	t.Run("reports stages in order", func(t *testing.T) {
		t.Parallel()

		var stages []pipeline.Stage
		r := &pipeline.Repurposer{
			Scraper: &mock.Scraper{
				ScrapeFn: func(ctx context.Context, url string) (*repurpose.ScrapeResult, error) {
					return &repurpose.ScrapeResult{Platform: repurpose.PlatformReddit, Content: "c", Author: "u/a"}, nil
				},
			},
			Generator: staticGenerator(threeVariations, nil),
			Progress:  func(s pipeline.Stage) { stages = append(stages, s) },
		}

		_, err := r.Repurpose(context.Background(), repurpose.Source{URL: "https://reddit.com/r/x"})

		require.NoError(t, err)
		assert.Equal(t, []pipeline.Stage{pipeline.StageScraping, pipeline.StageGenerating, pipeline.StageDone}, stages)
	})
}

func TestRepurposer_Generate(t *testing.T) {
	t.Parallel()

	t.Run("passes default params", func(t *testing.T) {
		t.Parallel()

		var got repurpose.GenerateParams
		r := &pipeline.Repurposer{
			Generator: &mock.Generator{
				GenerateFn: func(ctx context.Context, prompt string, params repurpose.GenerateParams) (string, error) {
					got = params
					return threeVariations, nil
				},
			},
		}

		_, err := r.Generate(context.Background(), repurpose.GenerationRequest{SourceContent: "c", SourcePlatform: repurpose.PlatformTwitter})

		require.NoError(t, err)
		assert.Equal(t, repurpose.DefaultGenerateParams(), got)
	})

	t.Run("writes configured rules into the prompt", func(t *testing.T) {
		t.Parallel()

		var prompt string
		r := &pipeline.Repurposer{
			Generator: staticGenerator(threeVariations, &prompt),
			Rules:     repurpose.PromptRules{MinWords: 80, MaxWords: 120, MinHashtags: 1, MaxHashtags: 3},
		}

		_, err := r.Generate(context.Background(), repurpose.GenerationRequest{SourceContent: "c", SourcePlatform: repurpose.PlatformTwitter})

		require.NoError(t, err)
		assert.Contains(t, prompt, "Be between 80-120 words")
		assert.Contains(t, prompt, "(1-3 hashtags)")
	})

	t.Run("pads and logs malformed output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := &pipeline.Repurposer{
			Generator: staticGenerator("just one post", nil),
			Logger:    slog.New(slog.NewTextHandler(&buf, nil)),
		}

		set, err := r.Generate(context.Background(), repurpose.GenerationRequest{SourceContent: "c", SourcePlatform: repurpose.PlatformReddit})

		require.NoError(t, err)
		assert.Equal(t, "just one post", set[0])
		assert.Equal(t, 2, set.Padded())
		assert.Contains(t, buf.String(), "padded=2")
	})

	tests := []struct {
		name string
		req  repurpose.GenerationRequest
	}{
		{"empty content", repurpose.GenerationRequest{SourceContent: " ", SourcePlatform: repurpose.PlatformReddit}},
		{"unknown platform", repurpose.GenerationRequest{SourceContent: "c", SourcePlatform: "myspace"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &pipeline.Repurposer{}

			_, err := r.Generate(context.Background(), tt.req)

			require.Error(t, err)
			assert.Equal(t, repurpose.EINVALID, repurpose.ErrorCode(err))
		})
	}
}

func TestStage_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "scraping", pipeline.StageScraping.String())
	assert.Equal(t, "generating", pipeline.StageGenerating.String())
	assert.Equal(t, "done", pipeline.StageDone.String())
}
