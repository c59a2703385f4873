package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/repurpose"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	result, err := deps.Scraper.Scrape(deps.Ctx, strings.TrimSpace(c.URL))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repurpose.ErrorMessage(err))
		if repurpose.ErrorCode(err) == repurpose.EUNSUPPORTED {
			fmt.Fprintln(deps.Stderr, "Supported sites: twitter.com, x.com, linkedin.com, reddit.com")
		}
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	}

	if result.Failed {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", result.Content)
		fmt.Fprintf(deps.Stderr, "Hint: repurpose generate --text \"...\" --platform %s\n", result.Platform)
		return repurpose.Errorf(repurpose.EUNPROCESSABLE, "%s", result.Content)
	}

	if !c.JSON {
		fmt.Fprintf(deps.Stdout, "Platform: %s\n", result.Platform.Title())
		fmt.Fprintf(deps.Stdout, "Author:   %s\n\n", result.Author)
		fmt.Fprintln(deps.Stdout, result.Text())
	}
	return nil
}
