package repurpose

import "context"

// FetchRequest describes a single GET request made by an extractor.
type FetchRequest struct {
	URL string

	// Header holds extra request headers. The fetcher supplies a browser-like
	// User-Agent unless one is set here.
	Header map[string]string

	// ExpectContentType, when set, is a substring the response Content-Type
	// must contain (e.g. "json"). A mismatch is reported as EMALFORMED
	// instead of returning the body.
	ExpectContentType string
}

// FetchResponse holds a successful response.
type FetchResponse struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// Fetcher retrieves raw documents from URLs.
type Fetcher interface {
	// Fetch performs a single attempt; there is no retry.
	// Non-2xx statuses are reported as ENETWORK, timeouts as ETIMEOUT, and
	// content-type mismatches as EMALFORMED.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResponse, error)

	// Close releases resources held by the fetcher.
	Close() error
}
