package markdown_test

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/cassieopeanuts/scrabtopus"
	"github.com/cassieopeanuts/scrabtopus/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalizeNewlines(s string) string {
	if runtime.GOOS == "windows" {
		return strings.ReplaceAll(s, "\r\n", "\n")
	}
	return s
}

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("renders pages sections and blocks", func(t *testing.T) {
		t.Parallel()

		data := &scrabtopus.ScrapedData{Pages: []*scrabtopus.Page{
			{
				URL:   "https://example.com/",
				Title: "Home",
				Sections: []*scrabtopus.Section{{
					Header: "Intro",
					Content: []scrabtopus.ContentBlock{
						scrabtopus.Paragraph("Welcome."),
						scrabtopus.List([]string{"one", "two"}),
					},
				}},
			},
			{URL: "https://example.com/a"},
		}}

		var buf bytes.Buffer
		err := markdown.Encode(&buf, data)

		require.NoError(t, err)
		want := "# Home\n\n" +
			"[https://example.com/](https://example.com/)\n\n" +
			"## Intro\n\n" +
			"Welcome.\n\n" +
			"- one\n- two\n\n" +
			"---\n\n" +
			"# https://example.com/a\n\n" +
			"[https://example.com/a](https://example.com/a)\n"
		assert.Equal(t, want, normalizeNewlines(buf.String()))
	})

	t.Run("renders empty data as empty document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := markdown.Encode(&buf, &scrabtopus.ScrapedData{})

		require.NoError(t, err)
		assert.Empty(t, strings.TrimSpace(buf.String()))
	})
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("closed")
}

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("writes markdown to destination", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		data := &scrabtopus.ScrapedData{Pages: []*scrabtopus.Page{{URL: "https://example.com/", Title: "Home"}}}

		err := markdown.NewWriter(&buf).Write(context.Background(), data)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(buf.String(), "# Home"))
	})

	t.Run("returns write error when destination fails", func(t *testing.T) {
		t.Parallel()

		data := &scrabtopus.ScrapedData{Pages: []*scrabtopus.Page{{URL: "https://example.com/", Title: "Home"}}}

		err := markdown.NewWriter(failingWriter{}).Write(context.Background(), data)

		assert.Equal(t, scrabtopus.EWRITE, scrabtopus.ErrorCode(err))
	})
}
