// Package fs writes scraped data to the local filesystem.
package fs

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/cassieopeanuts/scrabtopus"
)

// DefaultOutputPath is the file a crawl is written to when no path is given.
const DefaultOutputPath = "scraped_data.json"

// EncodeFunc serializes scraped data to w.
type EncodeFunc func(w io.Writer, data *scrabtopus.ScrapedData) error

// EncodeJSON writes data as JSON indented with two spaces.
func EncodeJSON(w io.Writer, data *scrabtopus.ScrapedData) error {
	if data == nil {
		data = &scrabtopus.ScrapedData{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}

// Ensure Writer implements scrabtopus.Writer at compile time.
var _ scrabtopus.Writer = (*Writer)(nil)

// Writer writes scraped data to a single file with atomic replace
// semantics. Data is encoded into a temporary file in the target directory,
// which is renamed over the target once complete. A failed write leaves any
// existing file untouched.
type Writer struct {
	path   string
	encode EncodeFunc
}

// NewWriter creates a Writer that encodes with encode and writes to path.
func NewWriter(path string, encode EncodeFunc) *Writer {
	return &Writer{path: path, encode: encode}
}

// NewJSONWriter creates a Writer that writes indented JSON to path.
func NewJSONWriter(path string) *Writer {
	return NewWriter(path, EncodeJSON)
}

// Write encodes data and replaces the target file.
func (w *Writer) Write(ctx context.Context, data *scrabtopus.ScrapedData) error {
	dir, base := filepath.Split(w.path)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return scrabtopus.Errorf(scrabtopus.EWRITE, "create output directory: %v", err)
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return scrabtopus.Errorf(scrabtopus.EWRITE, "create temp file: %v", err)
	}
	tmpPath := tmp.Name()

	// Remove the temp file unless it was renamed into place.
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := w.encode(tmp, data); err != nil {
		_ = tmp.Close()
		return scrabtopus.Errorf(scrabtopus.EWRITE, "encode %s: %v", w.path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return scrabtopus.Errorf(scrabtopus.EWRITE, "sync %s: %v", w.path, err)
	}
	if err := tmp.Close(); err != nil {
		return scrabtopus.Errorf(scrabtopus.EWRITE, "close %s: %v", w.path, err)
	}
	if err := os.Rename(tmpPath, w.path); err != nil {
		return scrabtopus.Errorf(scrabtopus.EWRITE, "replace %s: %v", w.path, err)
	}
	committed = true

	return nil
}

// Ensure StreamWriter implements scrabtopus.Writer at compile time.
var _ scrabtopus.Writer = (*StreamWriter)(nil)

// StreamWriter encodes scraped data to an io.Writer such as stdout.
type StreamWriter struct {
	w      io.Writer
	encode EncodeFunc
}

// NewStreamWriter creates a StreamWriter.
func NewStreamWriter(w io.Writer, encode EncodeFunc) *StreamWriter {
	return &StreamWriter{w: w, encode: encode}
}

// Write encodes data to the underlying writer.
func (s *StreamWriter) Write(ctx context.Context, data *scrabtopus.ScrapedData) error {
	if err := s.encode(s.w, data); err != nil {
		return scrabtopus.Errorf(scrabtopus.EWRITE, "encode output: %v", err)
	}
	return nil
}
