package crawl

import (
	"container/list"
	"sync"

	"github.com/cassieopeanuts/scrabtopus"
	"github.com/cassieopeanuts/scrabtopus/bloom"
)

// Compile-time interface verification.
var _ scrabtopus.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO crawl queue with a visited set.
// Visited lookups go through a Bloom filter first, so the exact set is only
// consulted for URLs that may have been visited. Queued URLs are indexed for
// constant-time duplicate checks.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	seen    *bloom.Filter
	visited map[string]struct{}
	pending map[string]int
	queue   *list.List
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for the visited prefilter.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen:    bloom.NewFilter(n, fpRate),
		visited: make(map[string]struct{}),
		pending: make(map[string]int),
		queue:   list.New(),
	}
}

// Push appends url to the tail of the queue.
// Returns false if the URL has been visited or is already queued.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.isVisited(url) || f.pending[url] > 0 {
		return false
	}
	f.enqueue(url)
	return true
}

// Seed appends url to the queue unconditionally. It is used for the start
// URL of a crawl.
func (f *Frontier) Seed(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enqueue(url)
}

func (f *Frontier) enqueue(url string) {
	f.pending[url]++
	f.queue.PushBack(url)
}

// Pop removes and returns the URL at the head of the queue.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	front := f.queue.Front()
	if front == nil {
		return "", false
	}
	url, _ := f.queue.Remove(front).(string)
	if f.pending[url]--; f.pending[url] <= 0 {
		delete(f.pending, url)
	}
	return url, true
}

// Visit marks url as visited. Visiting a URL twice is a no-op.
func (f *Frontier) Visit(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.TestOrAdd(url) {
		if _, ok := f.visited[url]; ok {
			return
		}
	}
	f.visited[url] = struct{}{}
}

// Visited returns true if url has been marked visited.
func (f *Frontier) Visited(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isVisited(url)
}

func (f *Frontier) isVisited(url string) bool {
	if !f.seen.Test(url) {
		return false
	}
	_, ok := f.visited[url]
	return ok
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// VisitedCount returns the number of visited URLs.
func (f *Frontier) VisitedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visited)
}
