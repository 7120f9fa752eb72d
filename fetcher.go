package scrabtopus

import "context"

// Response is the raw result of fetching a URL.
type Response struct {
	// URL is the requested URL.
	URL string

	// StatusCode is the HTTP status code of the final response.
	StatusCode int

	// Body is the response body.
	Body []byte
}

// OK reports whether the response has a 2xx status.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode <= 299
}

// Fetcher retrieves raw page bodies.
type Fetcher interface {
	// Fetch performs a GET request for url. Transport failures (DNS,
	// connection, timeout) are returned as errors with code ETRANSPORT.
	// Any HTTP response, including non-2xx ones, is returned as a Response.
	Fetch(ctx context.Context, url string) (*Response, error)
}
