package goquery

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cassieopeanuts/scrabtopus"
)

// LinkExtractor collects the in-scope links of a main-content region.
type LinkExtractor struct {
	// Filter, if set, further restricts links after the scope check.
	Filter *scrabtopus.URLFilter
}

// ExtractLinks extracts links from main without an additional filter.
func ExtractLinks(main *goquery.Selection, base *url.URL) []string {
	return (&LinkExtractor{}).Extract(main, base)
}

// Extract resolves the href of every anchor inside main against base and
// returns the deduplicated links that pass scrabtopus.InScope and the
// filter, sorted lexically. Hrefs that cannot be resolved are skipped.
func (e *LinkExtractor) Extract(main *goquery.Selection, base *url.URL) []string {
	if main == nil || base == nil {
		return nil
	}
	base = scrabtopus.NormalizeURL(base)

	seen := make(map[string]struct{})
	main.First().Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved, ok := resolveURL(base, href)
		if !ok {
			return
		}
		if !scrabtopus.InScope(resolved, base) {
			return
		}
		link := resolved.String()
		if !e.Filter.Match(link) {
			return
		}
		seen[link] = struct{}{}
	})

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}

// hrefNoise holds the ASCII tab and newline characters that browsers drop
// from anywhere inside a URL.
var hrefNoise = strings.NewReplacer("\t", "", "\n", "", "\r", "")

// resolveURL resolves href against base and normalizes the result.
// Surrounding whitespace and embedded tabs and newlines are removed first.
// The bool result is false if the href cannot be parsed.
func resolveURL(base *url.URL, href string) (*url.URL, bool) {
	ref, err := url.Parse(hrefNoise.Replace(strings.TrimSpace(href)))
	if err != nil {
		return nil, false
	}
	return scrabtopus.NormalizeURL(base.ResolveReference(ref)), true
}
