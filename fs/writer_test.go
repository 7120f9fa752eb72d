package fs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cassieopeanuts/scrabtopus"
	"github.com/cassieopeanuts/scrabtopus/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic Output
// Scraped data replaces the output file only once fully encoded

func samplePages() *scrabtopus.ScrapedData {
	return &scrabtopus.ScrapedData{Pages: []*scrabtopus.Page{{
		URL:   "https://example.com/",
		Title: "Home",
		Sections: []*scrabtopus.Section{{
			Header: "Welcome",
			Content: []scrabtopus.ContentBlock{
				scrabtopus.Paragraph("Hello & goodbye"),
				scrabtopus.List([]string{"one", "two"}),
			},
		}},
	}}}
}

func TestWriter_WritesIndentedJSON(t *testing.T) {
	t.Parallel()

	// Given a JSON writer targeting a file
	path := filepath.Join(t.TempDir(), "scraped_data.json")
	w := fs.NewJSONWriter(path)

	// When I write scraped data
	err := w.Write(context.Background(), samplePages())

	// Then the file contains two-space indented JSON
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "{\n  \"pages\": [\n    {\n      \"url\": \"https://example.com/\"")
	assert.Contains(t, string(content), "\"paragraph\": \"Hello & goodbye\"")

	// And it decodes back to the same data
	var got scrabtopus.ScrapedData
	require.NoError(t, json.Unmarshal(content, &got))
	assert.Equal(t, samplePages(), &got)
}

func TestWriter_WritesEmptyCrawlAsEmptyPages(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scraped_data.json")

	err := fs.NewJSONWriter(path).Write(context.Background(), &scrabtopus.ScrapedData{})

	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pages": []}`, string(content))
}

func TestWriter_CreatesParentDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "nested", "data.json")

	err := fs.NewJSONWriter(path).Write(context.Background(), samplePages())

	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestWriter_ReplacesExistingFile(t *testing.T) {
	t.Parallel()

	// Given an existing output file
	path := filepath.Join(t.TempDir(), "scraped_data.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	// When I write new data
	err := fs.NewJSONWriter(path).Write(context.Background(), samplePages())

	// Then the old content is replaced
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "old")
}

func TestWriter_FailedEncodeLeavesExistingFile(t *testing.T) {
	t.Parallel()

	// Given an existing output file
	dir := t.TempDir()
	path := filepath.Join(dir, "scraped_data.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	// When encoding fails
	failing := func(w io.Writer, data *scrabtopus.ScrapedData) error {
		_, _ = w.Write([]byte("partial"))
		return errors.New("encode failed")
	}
	err := fs.NewWriter(path, failing).Write(context.Background(), samplePages())

	// Then a write error is returned
	require.Error(t, err)
	assert.Equal(t, scrabtopus.EWRITE, scrabtopus.ErrorCode(err))

	// And the existing file is untouched
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))

	// And no temp files remain
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStreamWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("encodes to underlying writer", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		err := fs.NewStreamWriter(&buf, fs.EncodeJSON).Write(context.Background(), samplePages())

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "\"title\": \"Home\"")
	})

	t.Run("returns write error when encoding fails", func(t *testing.T) {
		t.Parallel()

		failing := func(w io.Writer, data *scrabtopus.ScrapedData) error {
			return errors.New("broken pipe")
		}

		err := fs.NewStreamWriter(io.Discard, failing).Write(context.Background(), samplePages())

		assert.Equal(t, scrabtopus.EWRITE, scrabtopus.ErrorCode(err))
	})
}
