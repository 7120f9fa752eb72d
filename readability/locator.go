// Package readability locates the main-content region of a page with
// go-readability.
package readability

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	sgoquery "github.com/cassieopeanuts/scrabtopus/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Locator implements goquery.Locator at compile time.
var _ sgoquery.Locator = (*Locator)(nil)

// Locator selects the article readability extracts from the page. When no
// article is found it falls back to Fallback.
type Locator struct {
	Fallback sgoquery.Locator
}

// NewLocator creates a new Locator that falls back to the <main> element.
func NewLocator() *Locator {
	return &Locator{Fallback: sgoquery.MainLocator{}}
}

// Locate parses the readability article content and returns its body.
func (l *Locator) Locate(doc *goquery.Document, body []byte, pageURL *url.URL) *goquery.Selection {
	if len(bytes.TrimSpace(body)) == 0 {
		return l.fallback(doc, body, pageURL)
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return l.fallback(doc, body, pageURL)
	}

	content, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return l.fallback(doc, body, pageURL)
	}
	return content.Find("body").First()
}

func (l *Locator) fallback(doc *goquery.Document, body []byte, pageURL *url.URL) *goquery.Selection {
	if l.Fallback == nil {
		return doc.Find(sgoquery.DefaultMainSelector).First()
	}
	return l.Fallback.Locate(doc, body, pageURL)
}
