// Package http provides net/http implementations of repurpose.Fetcher and
// the JSON API server.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/repurpose"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent mimics a desktop browser; several platforms serve an
// empty shell or a block page to unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 10 << 20

// Ensure Fetcher implements repurpose.Fetcher at compile time.
var _ repurpose.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves documents using plain HTTP GET requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	limiter   *HostLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithHostLimiter paces requests per host. Requests wait for their turn;
// they are never retried.
func WithHostLimiter(l *HostLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch performs a single GET request.
func (f *Fetcher) Fetch(ctx context.Context, fr *repurpose.FetchRequest) (*repurpose.FetchResponse, error) {
	if fr == nil || fr.URL == "" {
		return nil, repurpose.Errorf(repurpose.EINVALID, "fetch URL required")
	}

	u, err := url.Parse(fr.URL)
	if err != nil || u.Host == "" {
		return nil, repurpose.Errorf(repurpose.EINVALID, "invalid URL %q", fr.URL)
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return nil, repurpose.Errorf(repurpose.ETIMEOUT, "waiting for %s: %v", u.Host, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fr.URL, nil)
	if err != nil {
		return nil, repurpose.Errorf(repurpose.EINVALID, "invalid request: %v", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	for k, v := range fr.Header {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, repurpose.Errorf(repurpose.ENETWORK, "HTTP %d for %s", resp.StatusCode, fr.URL)
	}

	contentType := resp.Header.Get("Content-Type")
	if fr.ExpectContentType != "" && !strings.Contains(strings.ToLower(contentType), strings.ToLower(fr.ExpectContentType)) {
		return nil, repurpose.Errorf(repurpose.EMALFORMED, "unexpected content type %q, want %s", contentType, fr.ExpectContentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classify(err)
	}

	return &repurpose.FetchResponse{
		URL:         fr.URL,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
	}, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// classify converts transport errors into application error codes.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return repurpose.Errorf(repurpose.ETIMEOUT, "request timed out")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return repurpose.Errorf(repurpose.ETIMEOUT, "request timed out")
	}
	return repurpose.Errorf(repurpose.ENETWORK, "%v", err)
}
