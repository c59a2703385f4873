package main

import (
	"context"
	"fmt"
	"time"

	repurposehttp "github.com/fwojciec/repurpose/http"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 5 * time.Second

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := repurposehttp.NewServer()
	if deps.Config != nil && deps.Config.Addr != "" {
		s.Addr = deps.Config.Addr
	}
	if c.Addr != "" {
		s.Addr = c.Addr
	}
	s.Scraper = deps.Scraper
	s.Repurposer = deps.Repurposer
	s.Ping = deps.Ping
	if deps.Logger != nil {
		s.Logger = deps.Logger
	}

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(s.ListenAndServe)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Close(shutdownCtx)
	})

	fmt.Fprintf(deps.Stdout, "Serving on http://%s\n", s.Addr)
	return g.Wait()
}
