// Package trafilatura locates the main-content region of a page with
// go-trafilatura, for sites that do not mark it up with a <main> element.
package trafilatura

import (
	"bytes"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	sgoquery "github.com/cassieopeanuts/scrabtopus/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Locator implements goquery.Locator at compile time.
var _ sgoquery.Locator = (*Locator)(nil)

// Locator selects the content node found by trafilatura. When trafilatura
// finds nothing it falls back to Fallback.
type Locator struct {
	Fallback sgoquery.Locator
}

// NewLocator creates a new Locator that falls back to the <main> element.
func NewLocator() *Locator {
	return &Locator{Fallback: sgoquery.MainLocator{}}
}

// Locate runs trafilatura over body and returns its content node.
func (l *Locator) Locate(doc *goquery.Document, body []byte, pageURL *url.URL) *goquery.Selection {
	if len(bytes.TrimSpace(body)) == 0 {
		return l.fallback(doc, body, pageURL)
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeLinks:   true,
		OriginalURL:    pageURL,
	}

	result, err := trafilatura.Extract(bytes.NewReader(body), opts)
	if err != nil || result == nil || result.ContentNode == nil {
		return l.fallback(doc, body, pageURL)
	}
	return goquery.NewDocumentFromNode(result.ContentNode).Selection
}

func (l *Locator) fallback(doc *goquery.Document, body []byte, pageURL *url.URL) *goquery.Selection {
	if l.Fallback == nil {
		return doc.Find(sgoquery.DefaultMainSelector).First()
	}
	return l.Fallback.Locate(doc, body, pageURL)
}
