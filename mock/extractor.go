package mock

import "github.com/cassieopeanuts/scrabtopus"

var _ scrabtopus.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of scrabtopus.PageExtractor.
type PageExtractor struct {
	ExtractFn func(pageURL string, body []byte) (*scrabtopus.Page, []string)
}

func (e *PageExtractor) Extract(pageURL string, body []byte) (*scrabtopus.Page, []string) {
	return e.ExtractFn(pageURL, body)
}
