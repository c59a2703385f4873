package mock

import (
	"context"

	"github.com/fwojciec/repurpose"
)

var _ repurpose.Generator = (*Generator)(nil)

// Generator is a mock implementation of repurpose.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, prompt string, params repurpose.GenerateParams) (string, error)
}

func (g *Generator) Generate(ctx context.Context, prompt string, params repurpose.GenerateParams) (string, error) {
	return g.GenerateFn(ctx, prompt, params)
}
