package main

import (
	"fmt"

	"github.com/fwojciec/repurpose"
)

// Run executes the models command.
func (c *ModelsCmd) Run(deps *Dependencies) error {
	if deps.Models == nil {
		fmt.Fprintln(deps.Stderr, "error: listing models needs the ollama backend. Use --backend ollama")
		return repurpose.Errorf(repurpose.EUNSUPPORTED, "backend does not list models")
	}

	models, err := deps.Models.Models(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repurpose.ErrorMessage(err))
		if repurpose.ErrorCode(err) == repurpose.EUNAVAILABLE {
			fmt.Fprintln(deps.Stderr, "Hint: is Ollama running? Start it with 'ollama serve'")
		}
		return err
	}

	if len(models) == 0 {
		fmt.Fprintln(deps.Stdout, "No models installed. Pull one with 'ollama pull llama3.2'")
		return nil
	}

	var configured string
	if deps.Config != nil {
		configured = deps.Config.Ollama.Model
	}
	for _, m := range models {
		marker := " "
		if m == configured {
			marker = "*"
		}
		fmt.Fprintf(deps.Stdout, "%s %s\n", marker, m)
	}
	return nil
}
