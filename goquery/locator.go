package goquery

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// Locator selects the main-content region of a parsed page. Implementations
// return an empty selection when the page has no recognizable main region.
type Locator interface {
	Locate(doc *goquery.Document, body []byte, pageURL *url.URL) *goquery.Selection
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(doc *goquery.Document, body []byte, pageURL *url.URL) *goquery.Selection

// Locate calls f.
func (f LocatorFunc) Locate(doc *goquery.Document, body []byte, pageURL *url.URL) *goquery.Selection {
	return f(doc, body, pageURL)
}

// DefaultMainSelector selects the page's <main> element.
const DefaultMainSelector = "main"

// MainLocator selects the first element matching a CSS selector.
type MainLocator struct {
	// Selector defaults to DefaultMainSelector.
	Selector string
}

// Locate returns the first element matching the selector.
func (l MainLocator) Locate(doc *goquery.Document, _ []byte, _ *url.URL) *goquery.Selection {
	selector := l.Selector
	if selector == "" {
		selector = DefaultMainSelector
	}
	return doc.Find(selector).First()
}
