package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/repurpose"
	"github.com/fwojciec/repurpose/config"
)

// ModelLister lists the models a generation backend serves.
type ModelLister interface {
	Models(ctx context.Context) ([]string, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Config     *config.Config
	Scraper    repurpose.Scraper
	Repurposer repurpose.Repurposer
	Models     ModelLister
	Ping       func(ctx context.Context) error
	Spinner    *Spinner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" type:"path" env:"REPURPOSE_CONFIG" help:"Path to a YAML config file"`
	Backend string `short:"b" help:"Generation backend (gemini or ollama)"`
	Verbose bool   `short:"v" help:"Log fetches and generation calls"`
	Browser bool   `help:"Render Twitter and LinkedIn pages in headless Chrome"`

	Scrape   ScrapeCmd   `cmd:"" help:"Scrape a post and print its text"`
	Generate GenerateCmd `cmd:"" help:"Generate three LinkedIn variations from a post URL or pasted text"`
	Serve    ServeCmd    `cmd:"" help:"Run the JSON API server"`
	Models   ModelsCmd   `cmd:"" help:"List models served by the ollama backend"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL  string `arg:"" help:"Post URL (Twitter/X, LinkedIn or Reddit)"`
	JSON bool   `help:"Print the result as JSON"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	URL      string `short:"u" xor:"source" required:"" help:"Post URL to scrape"`
	Text     string `short:"t" xor:"source" required:"" help:"Post text to use instead of scraping"`
	Platform string `short:"p" help:"Platform the pasted text came from (twitter, linkedin, reddit)"`
	Author   string `short:"a" help:"Author to credit in the prompt"`
	JSON     bool   `help:"Print the result as JSON"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)"`
}

// ModelsCmd is the "models" subcommand.
type ModelsCmd struct{}
