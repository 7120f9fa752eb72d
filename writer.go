package scrabtopus

import "context"

// Writer persists the result of a crawl.
type Writer interface {
	Write(ctx context.Context, data *ScrapedData) error
}
