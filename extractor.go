package scrabtopus

// PageExtractor turns a fetched page body into structured content and the
// in-scope links found in its main region.
type PageExtractor interface {
	// Extract parses body and returns the page built from its main region
	// along with the deduplicated internal links, in a deterministic order.
	// Extraction never fails: missing structure yields an empty page.
	Extract(pageURL string, body []byte) (*Page, []string)
}
