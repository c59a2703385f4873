package mock

import (
	"context"

	"github.com/fwojciec/repurpose"
)

var _ repurpose.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of repurpose.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, req *repurpose.FetchRequest) (*repurpose.FetchResponse, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, req *repurpose.FetchRequest) (*repurpose.FetchResponse, error) {
	return f.FetchFn(ctx, req)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
