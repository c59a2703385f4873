// Package rod implements repurpose.Fetcher with headless Chrome, for mirrors
// and pages that only render their content with JavaScript.
package rod

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/repurpose"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// DefaultFetchTimeout bounds navigation and load of a single page.
const DefaultFetchTimeout = 10 * time.Second

// renderedContentType is reported for every page; the browser only hands
// back serialized DOM.
const renderedContentType = "text/html; charset=utf-8"

// Ensure Fetcher implements repurpose.Fetcher at compile time.
var _ repurpose.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Pages are opened with go-rod/stealth so mirrors that sniff for headless
// browsers serve the real page.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser      *browser
	timeout      time.Duration
	userAgent    string
	recycleAfter int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-page timeout. Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's user agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithRecycleAfter sets how many pages a browser serves before it is
// relaunched. Zero disables recycling.
func WithRecycleAfter(n int) Option {
	return func(f *Fetcher) {
		f.recycleAfter = n
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		recycleAfter: DefaultRecycleAfter,
	}
	for _, opt := range opts {
		opt(f)
	}

	b, err := newBrowser(f.recycleAfter)
	if err != nil {
		return nil, repurpose.Errorf(repurpose.EUNAVAILABLE, "%v", err)
	}
	f.browser = b
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, fr *repurpose.FetchRequest) (*repurpose.FetchResponse, error) {
	if fr == nil || fr.URL == "" {
		return nil, repurpose.Errorf(repurpose.EINVALID, "fetch URL required")
	}
	if err := ctx.Err(); err != nil {
		return nil, classify(err)
	}
	if fr.ExpectContentType != "" && !strings.Contains(renderedContentType, strings.ToLower(fr.ExpectContentType)) {
		return nil, repurpose.Errorf(repurpose.EMALFORMED, "unexpected content type %q, want %s", renderedContentType, fr.ExpectContentType)
	}

	b, err := f.browser.acquire()
	if err != nil {
		return nil, repurpose.Errorf(repurpose.EINVALID, "fetcher %v", err)
	}

	page, err := stealth.Page(b)
	if err != nil {
		return nil, repurpose.Errorf(repurpose.EUNAVAILABLE, "opening page: %v", err)
	}
	defer page.Close()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return nil, classify(err)
		}
	}
	if len(fr.Header) > 0 {
		dict := make([]string, 0, 2*len(fr.Header))
		for k, v := range fr.Header {
			dict = append(dict, k, v)
		}
		cleanup, err := page.SetExtraHeaders(dict)
		if err != nil {
			return nil, classify(err)
		}
		defer cleanup()
	}

	if err := page.Navigate(fr.URL); err != nil {
		return nil, classify(err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, classify(err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, classify(err)
	}

	return &repurpose.FetchResponse{
		URL:         fr.URL,
		StatusCode:  200,
		ContentType: renderedContentType,
		Body:        []byte(html),
	}, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.browser.close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.browser.pid()
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return repurpose.Errorf(repurpose.ETIMEOUT, "page load timed out")
	}
	return repurpose.Errorf(repurpose.ENETWORK, "%v", err)
}
