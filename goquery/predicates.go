package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/cassieopeanuts/scrabtopus"
)

// Predicates holds the CSS selectors that classify elements during section
// extraction.
type Predicates struct {
	// Header matches elements that start a new section.
	Header string

	// Paragraph matches siblings extracted as a single paragraph.
	Paragraph string

	// List matches siblings whose list items are extracted.
	List string

	// ListItem matches the item descendants of a list.
	ListItem string

	// Excluded matches interactive and boilerplate siblings that are
	// skipped without descending.
	Excluded string
}

// DefaultPredicates returns the selectors used unless configured otherwise.
func DefaultPredicates() Predicates {
	return Predicates{
		Header:    "h1, h2, h3, h4",
		Paragraph: "p",
		List:      "ul, ol",
		ListItem:  "li",
		Excluded:  "button, nav, footer, a, script, style, svg, img",
	}
}

type matchers struct {
	header    goquery.Matcher
	paragraph goquery.Matcher
	list      goquery.Matcher
	listItem  goquery.Matcher
	excluded  goquery.Matcher
}

func (p Predicates) compile() (*matchers, error) {
	var m matchers
	for _, c := range []struct {
		name     string
		selector string
		dst      *goquery.Matcher
	}{
		{"header", p.Header, &m.header},
		{"paragraph", p.Paragraph, &m.paragraph},
		{"list", p.List, &m.list},
		{"list item", p.ListItem, &m.listItem},
		{"excluded", p.Excluded, &m.excluded},
	} {
		if c.selector == "" {
			return nil, scrabtopus.Errorf(scrabtopus.EINVALID, "%s selector is empty", c.name)
		}
		sel, err := cascadia.Compile(c.selector)
		if err != nil {
			return nil, scrabtopus.Errorf(scrabtopus.EINVALID, "invalid %s selector %q: %v", c.name, c.selector, err)
		}
		*c.dst = sel
	}
	return &m, nil
}
