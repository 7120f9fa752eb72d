package crawl

import (
	"context"
	"time"

	"github.com/cassieopeanuts/scrabtopus"
)

// RetryFunc is called before each retry attempt.
type RetryFunc func(url string, attempt int, err error)

// RetryDelays returns n exponential backoff delays starting at 1s.
func RetryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, n)
	d := time.Second
	for i := 0; i < n; i++ {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// FetchWithRetryDelays fetches url, retrying transport failures after each
// of the given delays. HTTP responses are never retried, whatever their
// status. With no delays the fetch is attempted once.
func FetchWithRetryDelays(ctx context.Context, url string, fetcher scrabtopus.Fetcher, delays []time.Duration, onRetry RetryFunc) (*scrabtopus.Response, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if onRetry != nil {
			onRetry(url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
