// Package markdown renders scraped data as a Markdown document.
package markdown

import (
	"context"
	"io"

	"github.com/cassieopeanuts/scrabtopus"
	md "github.com/nao1215/markdown"
)

// Encode writes data to w as Markdown. Each page becomes a level-one
// heading followed by its source link and one level-two heading per
// section. Paragraphs are written as plain text and lists as bullet lists.
// Pages are separated by horizontal rules.
func Encode(w io.Writer, data *scrabtopus.ScrapedData) error {
	doc := md.NewMarkdown(w)

	for i, page := range pagesOf(data) {
		if i > 0 {
			doc.PlainText("").HorizontalRule().PlainText("")
		}

		title := page.Title
		if title == "" {
			title = page.URL
		}
		doc.H1(title).PlainText("").PlainText(md.Link(page.URL, page.URL))

		for _, section := range page.Sections {
			doc.PlainText("").H2(section.Header)
			for _, block := range section.Content {
				doc.PlainText("")
				switch block.Kind {
				case scrabtopus.BlockParagraph:
					doc.PlainText(block.Text)
				case scrabtopus.BlockList:
					doc.BulletList(block.Items...)
				}
			}
		}
	}
	doc.PlainText("")

	return doc.Build()
}

func pagesOf(data *scrabtopus.ScrapedData) []*scrabtopus.Page {
	if data == nil {
		return nil
	}
	return data.Pages
}

// Ensure Writer implements scrabtopus.Writer at compile time.
var _ scrabtopus.Writer = (*Writer)(nil)

// Writer writes scraped data as Markdown to an io.Writer.
type Writer struct {
	w io.Writer
}

// NewWriter creates a new Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write renders data to the underlying writer.
func (w *Writer) Write(ctx context.Context, data *scrabtopus.ScrapedData) error {
	if err := Encode(w.w, data); err != nil {
		return scrabtopus.Errorf(scrabtopus.EWRITE, "render markdown: %v", err)
	}
	return nil
}
