package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/cassieopeanuts/scrabtopus"
	"github.com/cassieopeanuts/scrabtopus/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier(t *testing.T) {
	t.Parallel()

	t.Run("implements scrabtopus.URLFrontier interface", func(t *testing.T) {
		t.Parallel()
		var _ scrabtopus.URLFrontier = crawl.NewFrontier(10, 0.01)
	})

	t.Run("pops in insertion order", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(1000, 0.01)
		f.Push("https://example.com/b")
		f.Push("https://example.com/a")
		f.Push("https://example.com/c")

		var got []string
		for {
			url, ok := f.Pop()
			if !ok {
				break
			}
			got = append(got, url)
		}

		assert.Equal(t, []string{"https://example.com/b", "https://example.com/a", "https://example.com/c"}, got)
	})

	t.Run("rejects url already queued", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(1000, 0.01)

		assert.True(t, f.Push("https://example.com/a"))
		assert.False(t, f.Push("https://example.com/a"))
		assert.Equal(t, 1, f.Len())
	})

	t.Run("accepts url again after it is popped but not visited", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(1000, 0.01)
		f.Push("https://example.com/a")
		_, _ = f.Pop()

		assert.True(t, f.Push("https://example.com/a"))
	})

	t.Run("rejects visited url", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(1000, 0.01)
		f.Visit("https://example.com/a")

		assert.False(t, f.Push("https://example.com/a"))
		assert.True(t, f.Visited("https://example.com/a"))
		assert.False(t, f.Visited("https://example.com/b"))
		assert.Equal(t, 1, f.VisitedCount())
	})

	t.Run("seed bypasses duplicate check", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(1000, 0.01)
		f.Visit("https://example.com/")
		f.Seed("https://example.com/")

		url, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://example.com/", url)
	})

	t.Run("pop on empty frontier returns false", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(1000, 0.01)

		_, ok := f.Pop()
		assert.False(t, ok)
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(10000, 0.01)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					url := fmt.Sprintf("https://example.com/page%d", j)
					if f.Push(url) {
						continue
					}
					f.Visit(url)
				}
			}(i)
		}
		wg.Wait()

		assert.LessOrEqual(t, f.Len(), 100)
	})
}
