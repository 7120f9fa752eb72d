// Package goquery implements HTML section and link extraction on top of
// PuerkitoBio/goquery.
package goquery

import (
	"bytes"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/cassieopeanuts/scrabtopus"
)

// Ensure Extractor implements scrabtopus.PageExtractor at compile time.
var _ scrabtopus.PageExtractor = (*Extractor)(nil)

// Extractor parses a page, locates its main region and runs the section
// and link extractors over it.
type Extractor struct {
	locator    Locator
	predicates Predicates
	filter     *scrabtopus.URLFilter

	sections *SectionExtractor
	links    *LinkExtractor
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLocator sets how the main region is found.
// Defaults to MainLocator{}.
func WithLocator(l Locator) Option {
	return func(e *Extractor) {
		e.locator = l
	}
}

// WithPredicates overrides the element predicates.
// Defaults to DefaultPredicates().
func WithPredicates(p Predicates) Option {
	return func(e *Extractor) {
		e.predicates = p
	}
}

// WithURLFilter restricts extracted links with include/exclude patterns.
func WithURLFilter(f *scrabtopus.URLFilter) Option {
	return func(e *Extractor) {
		e.filter = f
	}
}

// NewExtractor creates a new Extractor.
// Returns an error if a predicate selector does not compile.
func NewExtractor(opts ...Option) (*Extractor, error) {
	e := &Extractor{
		locator:    MainLocator{},
		predicates: DefaultPredicates(),
	}
	for _, opt := range opts {
		opt(e)
	}

	sections, err := NewSectionExtractor(e.predicates)
	if err != nil {
		return nil, err
	}
	e.sections = sections
	e.links = &LinkExtractor{Filter: e.filter}

	return e, nil
}

// Extract parses body and returns the page and its in-scope links.
// Malformed markup yields a best-effort tree; a page that cannot be parsed
// at all yields an empty page and no links.
func (e *Extractor) Extract(pageURL string, body []byte) (*scrabtopus.Page, []string) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return &scrabtopus.Page{URL: pageURL}, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return &scrabtopus.Page{URL: pageURL}, nil
	}

	main := e.locator.Locate(doc, body, base)
	return e.sections.Extract(main, pageURL), e.links.Extract(main, base)
}
