package mock

import (
	"context"

	"github.com/cassieopeanuts/scrabtopus"
)

var _ scrabtopus.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of scrabtopus.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*scrabtopus.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*scrabtopus.Response, error) {
	return f.FetchFn(ctx, url)
}
