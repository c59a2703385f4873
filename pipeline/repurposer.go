// Package pipeline runs the scrape, prompt, generate and parse steps that
// turn a social media post into three LinkedIn variations.
package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/repurpose"
)

// Ensure Repurposer implements repurpose.Repurposer at compile time.
var _ repurpose.Repurposer = (*Repurposer)(nil)

// Stage identifies a step of a repurposing run.
type Stage int

const (
	StageScraping Stage = iota
	StageGenerating
	StageDone
)

// String returns a short human-readable label.
func (s Stage) String() string {
	switch s {
	case StageScraping:
		return "scraping"
	case StageGenerating:
		return "generating"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// ProgressFunc is called as a run moves between stages.
type ProgressFunc func(stage Stage)

// Repurposer orchestrates a repurposing run. Zero-valued Rules and Params
// fall back to repurpose.DefaultPromptRules and repurpose.DefaultGenerateParams.
// Repurposer holds no per-run state and is safe for concurrent use.
type Repurposer struct {
	Scraper   repurpose.Scraper
	Generator repurpose.Generator
	Rules     repurpose.PromptRules
	Params    repurpose.GenerateParams
	Logger    *slog.Logger
	Progress  ProgressFunc
}

// Repurpose scrapes the source URL (or takes the pasted text), generates and
// parses three variations.
func (r *Repurposer) Repurpose(ctx context.Context, src repurpose.Source) (*repurpose.Result, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	var res *repurpose.Result
	if src.URL != "" {
		r.progress(StageScraping)
		scraped, err := r.Scraper.Scrape(ctx, strings.TrimSpace(src.URL))
		if err != nil {
			return nil, err
		}
		res = &repurpose.Result{
			Platform: scraped.Platform,
			Author:   scraped.Author,
			Content:  scraped.Content,
		}
		if scraped.Failed {
			return res, repurpose.Errorf(repurpose.EUNPROCESSABLE, "%s", scraped.Content)
		}
		if src.Author != "" {
			res.Author = src.Author
		}
	} else {
		platform, _ := repurpose.ParsePlatform(string(src.Platform))
		author := src.Author
		if author == "" {
			author = repurpose.ManualAuthor
		}
		res = &repurpose.Result{
			Platform: platform,
			Author:   author,
			Content:  strings.TrimSpace(src.Text),
		}
	}

	variations, err := r.Generate(ctx, repurpose.GenerationRequest{
		SourceContent:  res.Content,
		SourcePlatform: res.Platform,
		Author:         res.Author,
	})
	if err != nil {
		return res, err
	}
	res.Variations = variations

	return res, nil
}

// Generate builds the prompt for req, calls the generator and parses the
// response. Generator errors are returned unchanged.
func (r *Repurposer) Generate(ctx context.Context, req repurpose.GenerationRequest) (repurpose.VariationSet, error) {
	if strings.TrimSpace(req.SourceContent) == "" {
		return repurpose.VariationSet{}, repurpose.Errorf(repurpose.EINVALID, "content required")
	}
	platform, err := repurpose.ParsePlatform(string(req.SourcePlatform))
	if err != nil {
		return repurpose.VariationSet{}, err
	}
	req.SourcePlatform = platform

	r.progress(StageGenerating)
	prompt := repurpose.BuildPrompt(req, r.rules())
	raw, err := r.Generator.Generate(ctx, prompt, r.params())
	if err != nil {
		return repurpose.VariationSet{}, err
	}

	set := repurpose.ParseVariations(raw)
	if n := set.Padded(); n > 0 {
		r.logger().WarnContext(ctx, "variations padded",
			"padded", n,
			"response_chars", len(raw),
		)
	}
	r.progress(StageDone)

	return set, nil
}

func (r *Repurposer) rules() repurpose.PromptRules {
	if r.Rules == (repurpose.PromptRules{}) {
		return repurpose.DefaultPromptRules()
	}
	return r.Rules
}

func (r *Repurposer) params() repurpose.GenerateParams {
	if r.Params == (repurpose.GenerateParams{}) {
		return repurpose.DefaultGenerateParams()
	}
	return r.Params
}

func (r *Repurposer) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

func (r *Repurposer) progress(stage Stage) {
	if r.Progress != nil {
		r.Progress(stage)
	}
}
