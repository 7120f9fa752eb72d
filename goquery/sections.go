package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/cassieopeanuts/scrabtopus"
	"golang.org/x/net/html"
)

// SectionExtractor builds a page from the headers of a main-content region
// and the paragraph and list siblings that follow each of them.
type SectionExtractor struct {
	m *matchers
}

// NewSectionExtractor compiles the given predicates into a SectionExtractor.
func NewSectionExtractor(p Predicates) (*SectionExtractor, error) {
	m, err := p.compile()
	if err != nil {
		return nil, err
	}
	return &SectionExtractor{m: m}, nil
}

var defaultSections = func() *SectionExtractor {
	e, err := NewSectionExtractor(DefaultPredicates())
	if err != nil {
		panic(err)
	}
	return e
}()

// ExtractSections extracts a page from main using DefaultPredicates.
func ExtractSections(main *goquery.Selection, pageURL string) *scrabtopus.Page {
	return defaultSections.Extract(main, pageURL)
}

// Extract returns the page for main. The title is the text of the first
// header inside main. Each non-empty header opens a section that collects
// the header's following siblings up to the next header. Sections without
// content are dropped. An empty main yields a page with no title and no
// sections.
func (e *SectionExtractor) Extract(main *goquery.Selection, pageURL string) *scrabtopus.Page {
	page := &scrabtopus.Page{URL: pageURL}
	if main == nil || main.Length() == 0 {
		return page
	}

	headers := main.First().FindMatcher(e.m.header)
	if headers.Length() == 0 {
		return page
	}
	page.Title = nodeText(headers.Nodes[0])

	index := make(siblingIndex)
	for _, h := range headers.Nodes {
		header := nodeText(h)
		if header == "" {
			continue
		}

		section := &scrabtopus.Section{Header: header}
		for _, sib := range index.following(h) {
			if e.m.header.Match(sib) {
				break
			}
			if e.m.excluded.Match(sib) {
				continue
			}
			// A sibling matching both predicates contributes both blocks.
			if e.m.paragraph.Match(sib) {
				if text := nodeText(sib); text != "" {
					section.Content = append(section.Content, scrabtopus.Paragraph(text))
				}
			}
			if e.m.list.Match(sib) {
				if items := e.listItems(sib); len(items) > 0 {
					section.Content = append(section.Content, scrabtopus.List(items))
				}
			}
		}

		if len(section.Content) > 0 {
			page.Sections = append(page.Sections, section)
		}
	}

	return page
}

// listItems returns the non-empty text of every list item below n.
func (e *SectionExtractor) listItems(n *html.Node) []string {
	var items []string
	for _, li := range matchDescendants(n, e.m.listItem) {
		if text := nodeText(li); text != "" {
			items = append(items, text)
		}
	}
	return items
}

// siblingIndex caches, per parent, the element children in document order
// and the position of each child.
type siblingIndex map[*html.Node]*siblings

type siblings struct {
	nodes []*html.Node
	pos   map[*html.Node]int
}

// following returns the element siblings after n.
func (idx siblingIndex) following(n *html.Node) []*html.Node {
	if n.Parent == nil {
		return nil
	}
	s, ok := idx[n.Parent]
	if !ok {
		s = &siblings{pos: make(map[*html.Node]int)}
		for c := n.Parent.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			s.pos[c] = len(s.nodes)
			s.nodes = append(s.nodes, c)
		}
		idx[n.Parent] = s
	}
	return s.nodes[s.pos[n]+1:]
}

// matchDescendants returns the descendants of n matched by m in document
// order. n itself is not considered.
func matchDescendants(n *html.Node, m goquery.Matcher) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if m.Match(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// nodeText joins every text node below n with a space and normalizes the
// result.
func nodeText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		if p.Type == html.TextNode {
			parts = append(parts, p.Data)
			return
		}
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return scrabtopus.JoinText(parts)
}
