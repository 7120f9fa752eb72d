package main_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	main "github.com/cassieopeanuts/scrabtopus/cmd/scrabtopus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAMLConfig(t *testing.T) {
	t.Parallel()

	t.Run("accepts empty file", func(t *testing.T) {
		t.Parallel()

		resolver, err := main.LoadYAMLConfig(strings.NewReader(""))

		require.NoError(t, err)
		assert.NotNil(t, resolver)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadYAMLConfig(strings.NewReader("max_pages: [1, 2\n"))

		require.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("writes text records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		main.NewLogger(&buf, "text", false).Info("crawl started", "seed", "https://example.com")

		assert.Contains(t, buf.String(), `msg="crawl started"`)
		assert.Contains(t, buf.String(), "seed=https://example.com")
	})

	t.Run("writes json records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		main.NewLogger(&buf, "json", false).Info("crawl started")

		assert.Contains(t, buf.String(), `"msg":"crawl started"`)
	})

	t.Run("writes pretty records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		main.NewLogger(&buf, "pretty", false).Info("crawl started")

		assert.Contains(t, buf.String(), "crawl started")
	})

	t.Run("hides debug records unless verbose", func(t *testing.T) {
		t.Parallel()

		var quiet, verbose bytes.Buffer
		main.NewLogger(&quiet, "text", false).Debug("page scraped")
		main.NewLogger(&verbose, "text", true).Debug("page scraped")

		assert.Empty(t, quiet.String())
		assert.Contains(t, verbose.String(), "page scraped")
	})

	t.Run("verbose pretty logger enables debug", func(t *testing.T) {
		t.Parallel()

		logger := main.NewLogger(&bytes.Buffer{}, "pretty", true)

		assert.True(t, logger.Enabled(context.Background(), -4))
	})
}
