package scrabtopus

import "context"

// URLFrontier manages the crawl queue and the visited set.
type URLFrontier interface {
	// Push appends url to the queue tail.
	// Returns false if the URL has been visited or is already queued.
	Push(url string) bool

	// Pop removes and returns the URL at the queue head.
	// Returns false if the queue is empty.
	Pop() (string, bool)

	// Visit marks url as visited.
	Visit(url string)

	// Visited returns true if url has been marked visited.
	Visited(url string) bool

	// Len returns the number of URLs in the queue.
	Len() int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
