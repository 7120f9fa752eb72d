// Package http provides an HTTP implementation of scrabtopus.Fetcher.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cassieopeanuts/scrabtopus"
)

const (
	// DefaultFetchTimeout is the default timeout for HTTP requests.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultUserAgent identifies the crawler to the sites it visits.
	DefaultUserAgent = "Mozilla/5.0 (compatible; scrabtopus/1.0)"

	// DefaultMaxBodySize bounds the number of body bytes read per response.
	DefaultMaxBodySize = 10 << 20
)

// Ensure Fetcher implements scrabtopus.Fetcher at compile time.
var _ scrabtopus.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with plain HTTP GET requests. It does not
// execute JavaScript.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
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

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize limits how many bytes of a response body are read.
// Longer bodies are truncated.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch issues a GET request for url. Any HTTP status is returned as a
// response; only failures to obtain one are errors, coded ETRANSPORT.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*scrabtopus.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, scrabtopus.Errorf(scrabtopus.ETRANSPORT, "build request for %s: %v", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, scrabtopus.Errorf(scrabtopus.ETRANSPORT, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	var body io.Reader = resp.Body
	if f.maxBodySize > 0 {
		body = io.LimitReader(resp.Body, f.maxBodySize)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, scrabtopus.Errorf(scrabtopus.ETRANSPORT, "read body of %s: %v", url, err)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &scrabtopus.Response{
		URL:        finalURL,
		StatusCode: resp.StatusCode,
		Body:       data,
	}, nil
}
