package mock

import (
	"context"

	"github.com/fwojciec/repurpose"
)

var _ repurpose.Repurposer = (*Repurposer)(nil)

// Repurposer is a mock implementation of repurpose.Repurposer.
type Repurposer struct {
	RepurposeFn func(ctx context.Context, src repurpose.Source) (*repurpose.Result, error)
	GenerateFn  func(ctx context.Context, req repurpose.GenerationRequest) (repurpose.VariationSet, error)
}

func (r *Repurposer) Repurpose(ctx context.Context, src repurpose.Source) (*repurpose.Result, error) {
	return r.RepurposeFn(ctx, src)
}

func (r *Repurposer) Generate(ctx context.Context, req repurpose.GenerationRequest) (repurpose.VariationSet, error) {
	return r.GenerateFn(ctx, req)
}
