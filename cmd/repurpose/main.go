package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/fwojciec/repurpose"
	"github.com/fwojciec/repurpose/config"
	"github.com/fwojciec/repurpose/gemini"
	"github.com/fwojciec/repurpose/gjson"
	"github.com/fwojciec/repurpose/goquery"
	repurposehttp "github.com/fwojciec/repurpose/http"
	"github.com/fwojciec/repurpose/openai"
	"github.com/fwojciec/repurpose/pipeline"
	"github.com/fwojciec/repurpose/rod"
	repurposeslog "github.com/fwojciec/repurpose/slog"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine.
	_ = godotenv.Load()

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	_ = m.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// DefaultConfigPath is read when present and no --config is given.
const DefaultConfigPath = "repurpose.yaml"

// Main represents the program.
type Main struct {
	// Getenv reads environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// Close releases fetchers opened by Run.
func (m *Main) Close() error {
	var errs []error
	for _, c := range m.closers {
		errs = append(errs, c.Close())
	}
	m.closers = nil
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("repurpose"),
		kong.Description("Turn Twitter/X, LinkedIn and Reddit posts into LinkedIn posts."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'repurpose --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := m.loadConfig(cli)
	if err != nil {
		return err
	}
	deps.Config = cfg
	serving := kongCtx.Command() == "serve"
	deps.Logger = newLogger(stderr, cli.Verbose, serving)

	if err := m.wire(ctx, deps, serving); err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// loadConfig layers defaults, the config file, the environment and flags.
func (m *Main) loadConfig(cli *CLI) (*config.Config, error) {
	cfg := config.Default()

	path, optional := cli.Config, false
	if path == "" {
		path, optional = DefaultConfigPath, true
	}
	if err := cfg.Load(path, optional); err != nil {
		return nil, err
	}

	cfg.ApplyEnv(m.Getenv)

	if cli.Backend != "" {
		cfg.Backend = cli.Backend
	}
	if cli.Browser {
		cfg.Scrape.Browser = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns a slog.Logger backed by charmbracelet/log. Commands
// stay quiet unless --verbose; the server logs requests.
func newLogger(w io.Writer, verbose, serving bool) *slog.Logger {
	level := log.WarnLevel
	switch {
	case verbose:
		level = log.DebugLevel
	case serving:
		level = log.InfoLevel
	}
	return slog.New(log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: serving,
	}))
}

// wire builds the scraping and generation services from deps.Config.
// The spinner is left nil for the server, which logs instead.
func (m *Main) wire(ctx context.Context, deps *Dependencies, serving bool) error {
	cfg, logger := deps.Config, deps.Logger

	httpOpts := []repurposehttp.Option{
		repurposehttp.WithTimeout(cfg.Scrape.Timeout),
		repurposehttp.WithUserAgent(cfg.Scrape.UserAgent),
	}
	if cfg.Scrape.RequestsPerSecond > 0 {
		httpOpts = append(httpOpts, repurposehttp.WithHostLimiter(repurposehttp.NewHostLimiter(cfg.Scrape.RequestsPerSecond)))
	}
	var fetcher repurpose.Fetcher = repurposeslog.NewLoggingFetcher(repurposehttp.NewFetcher(httpOpts...), logger)
	m.closers = append(m.closers, fetcher)

	// Reddit is always read from its JSON API; the browser only helps
	// with HTML pages.
	htmlFetcher := fetcher
	if cfg.Scrape.Browser {
		browser, err := rod.NewFetcher(
			rod.WithTimeout(cfg.Scrape.Timeout),
			rod.WithUserAgent(cfg.Scrape.UserAgent),
		)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		htmlFetcher = repurposeslog.NewLoggingFetcher(browser, logger)
		m.closers = append(m.closers, htmlFetcher)
	}

	router := repurpose.NewRouter(
		repurposeslog.NewLoggingExtractor(goquery.NewTwitterExtractor(htmlFetcher, goquery.WithMirror(cfg.Scrape.TwitterMirror)), logger),
		repurposeslog.NewLoggingExtractor(goquery.NewLinkedInExtractor(htmlFetcher), logger),
		repurposeslog.NewLoggingExtractor(gjson.NewRedditExtractor(fetcher), logger),
	)
	deps.Scraper = repurposeslog.NewLoggingScraper(router, logger)

	generator, err := m.generator(ctx, deps)
	if err != nil {
		return err
	}

	if !serving {
		deps.Spinner = NewSpinner(deps.Stderr)
	}
	deps.Repurposer = &pipeline.Repurposer{
		Scraper:   deps.Scraper,
		Generator: repurposeslog.NewLoggingGenerator(generator, cfg.Backend, logger),
		Rules:     cfg.Prompt,
		Params:    cfg.Generation.Params(),
		Logger:    logger,
		Progress:  deps.Spinner.Stage,
	}
	return nil
}

// generator builds the configured backend. The ollama backend also
// provides model listing and the health probe.
func (m *Main) generator(ctx context.Context, deps *Dependencies) (repurpose.Generator, error) {
	cfg := deps.Config
	switch cfg.Backend {
	case config.BackendOllama:
		gen := openai.NewGenerator(
			openai.WithBaseURL(cfg.Ollama.BaseURL),
			openai.WithAPIKey(cfg.Ollama.APIKey),
			openai.WithModel(cfg.Ollama.Model),
			openai.WithTimeout(cfg.Ollama.Timeout),
		)
		deps.Models = gen
		deps.Ping = gen.Ping
		return gen, nil
	default:
		var client *genai.Client
		if cfg.Gemini.APIKey != "" {
			c, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  cfg.Gemini.APIKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
			}
			client = c
		}
		return gemini.NewGenerator(client,
			gemini.WithModel(cfg.Gemini.Model),
			gemini.WithTimeout(cfg.Gemini.Timeout),
		), nil
	}
}
