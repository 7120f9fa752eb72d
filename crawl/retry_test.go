package crawl_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/cassieopeanuts/scrabtopus"
	"github.com/cassieopeanuts/scrabtopus/crawl"
	"github.com/cassieopeanuts/scrabtopus/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	delays := []time.Duration{time.Millisecond, time.Millisecond}

	t.Run("returns first successful response", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*scrabtopus.Response, error) {
				calls++
				return &scrabtopus.Response{URL: url, StatusCode: http.StatusOK}, nil
			},
		}

		resp, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/", fetcher, delays, nil)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 1, calls)
	})

	t.Run("does not retry error status codes", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*scrabtopus.Response, error) {
				calls++
				return &scrabtopus.Response{URL: url, StatusCode: http.StatusBadGateway}, nil
			},
		}

		resp, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/", fetcher, delays, nil)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries failures and reports attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*scrabtopus.Response, error) {
				calls++
				if calls < 3 {
					return nil, scrabtopus.Errorf(scrabtopus.ETRANSPORT, "connection reset")
				}
				return &scrabtopus.Response{URL: url, StatusCode: http.StatusOK}, nil
			},
		}

		var attempts []int
		onRetry := func(url string, attempt int, err error) {
			attempts = append(attempts, attempt)
		}

		resp, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/", fetcher, delays, onRetry)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, []int{2, 3}, attempts)
	})

	t.Run("returns last error when retries are exhausted", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*scrabtopus.Response, error) {
				calls++
				return nil, scrabtopus.Errorf(scrabtopus.ETRANSPORT, "attempt %d", calls)
			},
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/", fetcher, delays, nil)

		require.Error(t, err)
		assert.Equal(t, "attempt 3", scrabtopus.ErrorMessage(err))
		assert.Equal(t, 3, calls)
	})

	t.Run("attempts once without delays", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*scrabtopus.Response, error) {
				calls++
				return nil, scrabtopus.Errorf(scrabtopus.ETRANSPORT, "down")
			},
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/", fetcher, nil, nil)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops retrying when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*scrabtopus.Response, error) {
				cancel()
				return nil, scrabtopus.Errorf(scrabtopus.ETRANSPORT, "down")
			},
		}

		_, err := crawl.FetchWithRetryDelays(ctx, "https://example.com/", fetcher, []time.Duration{time.Hour}, nil)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, crawl.RetryDelays(3))
	assert.Empty(t, crawl.RetryDelays(0))
}
