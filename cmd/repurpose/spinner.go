package main

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fwojciec/repurpose/pipeline"
)

// Spinner shows run progress on a terminal. It does nothing when the
// writer is not a terminal, and a nil *Spinner is a no-op.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a Spinner writing to w.
func NewSpinner(w io.Writer) *Spinner {
	opts := []spinner.Option{spinner.WithHiddenCursor(true)}
	if f, ok := w.(*os.File); ok {
		opts = append(opts, spinner.WithWriterFile(f))
	} else {
		opts = append(opts, spinner.WithWriter(w))
	}
	return &Spinner{s: spinner.New(spinner.CharSets[14], 100*time.Millisecond, opts...)}
}

// Stage updates the label for stage, starting or stopping the spinner.
// It has the signature of pipeline.ProgressFunc.
func (p *Spinner) Stage(stage pipeline.Stage) {
	if p == nil {
		return
	}
	var suffix string
	switch stage {
	case pipeline.StageScraping:
		suffix = " Scraping post..."
	case pipeline.StageGenerating:
		suffix = " Generating variations..."
	default:
		p.Stop()
		return
	}
	p.s.Lock()
	p.s.Suffix = suffix
	p.s.Unlock()
	p.s.Start()
}

// Stop halts the spinner and clears its line.
func (p *Spinner) Stop() {
	if p == nil {
		return
	}
	p.s.Stop()
}
