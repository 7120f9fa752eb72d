package scrabtopus

import (
	"bytes"
	"encoding/json"
)

// ScrapedData is the result of a crawl: one entry per successfully scraped
// page, in the order the pages were scraped.
type ScrapedData struct {
	Pages []*Page `json:"pages"`
}

// Len returns the number of pages.
func (d *ScrapedData) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// MarshalJSON encodes an empty collection as {"pages": []} rather than null.
func (d ScrapedData) MarshalJSON() ([]byte, error) {
	pages := d.Pages
	if pages == nil {
		pages = []*Page{}
	}
	return json.Marshal(struct {
		Pages []*Page `json:"pages"`
	}{pages})
}

// Page is the structured content extracted from a single fetched URL.
type Page struct {
	URL      string     `json:"url"`
	Title    string     `json:"title"`
	Sections []*Section `json:"sections"`
}

// MarshalJSON encodes a page without sections as "sections": [].
func (p Page) MarshalJSON() ([]byte, error) {
	type page Page
	if p.Sections == nil {
		p.Sections = []*Section{}
	}
	return json.Marshal(page(p))
}

// Section groups the content found under one header, up to the next header.
type Section struct {
	Header  string         `json:"header"`
	Content []ContentBlock `json:"content"`
}

// BlockKind identifies the variant held by a ContentBlock.
type BlockKind int

const (
	BlockParagraph BlockKind = iota + 1
	BlockList
)

// String returns the kind name.
func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockList:
		return "list"
	default:
		return "unknown"
	}
}

// ContentBlock is either a paragraph or a list. Use Paragraph and List to
// construct one; the zero value is invalid.
type ContentBlock struct {
	Kind  BlockKind
	Text  string
	Items []string
}

// Paragraph returns a paragraph block.
func Paragraph(text string) ContentBlock {
	return ContentBlock{Kind: BlockParagraph, Text: text}
}

// List returns a list block.
func List(items []string) ContentBlock {
	return ContentBlock{Kind: BlockList, Items: items}
}

type paragraphJSON struct {
	Paragraph string `json:"paragraph"`
}

type listJSON struct {
	Lists []string `json:"lists"`
}

// MarshalJSON encodes a paragraph as {"paragraph": "..."} and a list as
// {"lists": [...]}.
func (b ContentBlock) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case BlockParagraph:
		return json.Marshal(paragraphJSON{b.Text})
	case BlockList:
		items := b.Items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(listJSON{items})
	default:
		return nil, Errorf(EINVALID, "content block has no kind")
	}
}

// UnmarshalJSON accepts both object forms and a bare string, which older
// output used for paragraphs.
func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*b = Paragraph(text)
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p, hasParagraph := raw["paragraph"]
	l, hasList := raw["lists"]
	switch {
	case hasParagraph && hasList:
		return Errorf(EINVALID, "content block has both paragraph and lists")
	case hasParagraph:
		var text string
		if err := json.Unmarshal(p, &text); err != nil {
			return err
		}
		*b = Paragraph(text)
	case hasList:
		var items []string
		if err := json.Unmarshal(l, &items); err != nil {
			return err
		}
		*b = List(items)
	default:
		return Errorf(EINVALID, "content block has neither paragraph nor lists")
	}
	return nil
}
