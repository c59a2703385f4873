package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/repurpose"
	"github.com/fwojciec/repurpose/config"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	src := repurpose.Source{
		URL:      c.URL,
		Text:     c.Text,
		Platform: repurpose.Platform(c.Platform),
		Author:   c.Author,
	}

	result, err := deps.Repurposer.Repurpose(deps.Ctx, src)
	deps.Spinner.Stop()
	if err != nil {
		c.explain(deps, result, err)
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(deps.Stdout, "Source: %s post by %s\n", result.Platform.Title(), result.Author)
	for i, post := range result.Variations {
		fmt.Fprintf(deps.Stdout, "\n=== Variation %d: %s ===\n\n", i+1, repurpose.VariationStyles[i].Name)
		fmt.Fprintln(deps.Stdout, post)
	}
	if n := result.Variations.Padded(); n > 0 {
		fmt.Fprintf(deps.Stderr, "warning: the model returned %d of %d variations; try again for a full set\n",
			repurpose.VariationCount-n, repurpose.VariationCount)
	}
	return nil
}

// explain prints an error with a hint for the failures users can fix.
func (c *GenerateCmd) explain(deps *Dependencies, result *repurpose.Result, err error) {
	switch repurpose.ErrorCode(err) {
	case repurpose.EUNPROCESSABLE:
		fmt.Fprintf(deps.Stderr, "warning: %s\n", repurpose.ErrorMessage(err))
		platform := repurpose.PlatformTwitter
		if result != nil && result.Platform != "" {
			platform = result.Platform
		}
		fmt.Fprintf(deps.Stderr, "Hint: repurpose generate --text \"...\" --platform %s\n", platform)
	case repurpose.EUNAUTHORIZED:
		fmt.Fprintf(deps.Stderr, "error: %s\n", repurpose.ErrorMessage(err))
		fmt.Fprintln(deps.Stderr, "Hint: set GEMINI_API_KEY. Get a key at https://aistudio.google.com/apikey")
	case repurpose.EUNAVAILABLE:
		fmt.Fprintf(deps.Stderr, "error: %s\n", repurpose.ErrorMessage(err))
		if deps.Config != nil && deps.Config.Backend == config.BackendOllama {
			fmt.Fprintln(deps.Stderr, "Hint: is Ollama running? Start it with 'ollama serve'")
		}
	default:
		fmt.Fprintf(deps.Stderr, "error: %s\n", repurpose.ErrorMessage(err))
	}
}
