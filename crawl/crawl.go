// Package crawl provides breadth-first crawling of a single domain.
// It coordinates the frontier, fetching, extraction and the page cap.
package crawl

import (
	"context"
	"net/url"
	"time"

	"github.com/cassieopeanuts/scrabtopus"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxPages is the page cap used when Crawler.MaxPages is not set.
	DefaultMaxPages = 200

	// DefaultDelay is the politeness delay between fetches used by the CLI.
	DefaultDelay = 500 * time.Millisecond
)

// Crawler crawls a site breadth-first from a seed URL.
//
// With Concurrency <= 1 one URL is fetched at a time and Delay is slept
// after each processed URL. With Concurrency > 1 URLs are fetched in
// batches and RateLimiter paces the requests; pages are still processed in
// the order their URLs left the queue, so output is deterministic for
// deterministic responses.
type Crawler struct {
	Fetcher     scrabtopus.Fetcher
	Extractor   scrabtopus.PageExtractor
	RateLimiter scrabtopus.DomainLimiter

	// MaxPages caps the number of scraped pages. Defaults to DefaultMaxPages.
	MaxPages int

	// Delay is the politeness delay applied after each processed URL in
	// sequential mode. Zero disables it.
	Delay time.Duration

	Concurrency int
	RetryDelays []time.Duration
	Progress    ProgressFunc

	// Sleep pauses between URLs. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Result holds the outcome of a crawl.
type Result struct {
	Data *scrabtopus.ScrapedData

	// Scraped equals len(Data.Pages) and never exceeds the page cap.
	Scraped int

	// Failed counts URLs whose fetch failed or returned a non-2xx status.
	Failed int

	// Skipped counts queue entries discarded because they were visited.
	Skipped int

	// Pending is the number of URLs left in the queue at termination.
	Pending int

	// Visited is the number of URLs marked visited.
	Visited int
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type    ProgressType
	URL     string
	Scraped int
	Queued  int
	Links   int
	Attempt int
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressRetrying
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// fetchOutcome holds the result of fetching a single URL.
type fetchOutcome struct {
	url  string
	resp *scrabtopus.Response
	err  error
}

// Crawl crawls from seedURL until the queue is empty or MaxPages pages
// have been scraped. Failures of individual URLs are reported through
// Progress and never abort the crawl; a seed that is invalid or cannot be
// fetched yields an empty result. The only error returned is the context's,
// together with the pages scraped so far.
func (c *Crawler) Crawl(ctx context.Context, seedURL string) (*Result, error) {
	result := &Result{Data: &scrabtopus.ScrapedData{Pages: []*scrabtopus.Page{}}}

	seed, err := scrabtopus.ParseSeed(seedURL)
	if err != nil {
		c.report(ProgressEvent{Type: ProgressFailed, URL: seedURL, Error: err})
		c.report(ProgressEvent{Type: ProgressFinished})
		return result, nil
	}

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	frontier := NewFrontier(expectedURLs(maxPages), 0.01)
	frontier.Seed(seed.String())

	c.report(ProgressEvent{Type: ProgressStarted, URL: seed.String()})

	if c.Concurrency > 1 {
		err = c.crawlBatches(ctx, frontier, maxPages, result)
	} else {
		err = c.crawlSequential(ctx, frontier, maxPages, result)
	}

	result.Pending = frontier.Len()
	result.Visited = frontier.VisitedCount()
	c.report(ProgressEvent{Type: ProgressFinished, Scraped: result.Scraped, Queued: result.Pending})

	return result, err
}

func (c *Crawler) crawlSequential(ctx context.Context, frontier *Frontier, maxPages int, result *Result) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if result.Scraped >= maxPages {
			return nil
		}

		url, ok := frontier.Pop()
		if !ok {
			return nil
		}
		if frontier.Visited(url) {
			result.Skipped++
			c.report(ProgressEvent{Type: ProgressSkipped, URL: url})
			continue
		}

		resp, err := c.fetch(ctx, url)
		c.handle(frontier, fetchOutcome{url: url, resp: resp, err: err}, result)

		if err := c.sleep(ctx, c.Delay); err != nil {
			return err
		}
	}
}

func (c *Crawler) crawlBatches(ctx context.Context, frontier *Frontier, maxPages int, result *Result) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if result.Scraped >= maxPages {
			return nil
		}

		batch := c.nextBatch(frontier, min(c.Concurrency, maxPages-result.Scraped), result)
		if len(batch) == 0 {
			return nil
		}

		outcomes := make([]fetchOutcome, len(batch))
		var g errgroup.Group
		g.SetLimit(c.Concurrency)
		for i, u := range batch {
			g.Go(func() error {
				outcomes[i].url = u
				if c.RateLimiter != nil {
					if err := c.RateLimiter.Wait(ctx, hostOf(u)); err != nil {
						outcomes[i].err = err
						return nil
					}
				}
				outcomes[i].resp, outcomes[i].err = c.fetch(ctx, u)
				return nil
			})
		}
		_ = g.Wait()

		for _, o := range outcomes {
			c.handle(frontier, o, result)
		}
	}
}

// nextBatch pops up to n distinct unvisited URLs.
func (c *Crawler) nextBatch(frontier *Frontier, n int, result *Result) []string {
	batch := make([]string, 0, n)
	inBatch := make(map[string]struct{}, n)
	for len(batch) < n {
		url, ok := frontier.Pop()
		if !ok {
			break
		}
		if _, dup := inBatch[url]; dup || frontier.Visited(url) {
			result.Skipped++
			c.report(ProgressEvent{Type: ProgressSkipped, URL: url})
			continue
		}
		inBatch[url] = struct{}{}
		batch = append(batch, url)
	}
	return batch
}

// fetch retrieves url and classifies non-2xx responses as ESTATUS errors.
func (c *Crawler) fetch(ctx context.Context, url string) (*scrabtopus.Response, error) {
	resp, err := FetchWithRetryDelays(ctx, url, c.Fetcher, c.RetryDelays, func(url string, attempt int, err error) {
		c.report(ProgressEvent{Type: ProgressRetrying, URL: url, Attempt: attempt, Error: err})
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, scrabtopus.Errorf(scrabtopus.ETRANSPORT, "no response for %s", url)
	}
	if !resp.OK() {
		return resp, scrabtopus.Errorf(scrabtopus.ESTATUS, "HTTP %d for %s", resp.StatusCode, url)
	}
	return resp, nil
}

// handle records the outcome of a fetch: on success the page is appended
// and its links enqueued. The URL is marked visited in every case, after
// its links have been enqueued.
func (c *Crawler) handle(frontier *Frontier, o fetchOutcome, result *Result) {
	defer frontier.Visit(o.url)

	if o.err != nil {
		result.Failed++
		c.report(ProgressEvent{Type: ProgressFailed, URL: o.url, Scraped: result.Scraped, Error: o.err})
		return
	}

	page, links := c.Extractor.Extract(o.url, o.resp.Body)
	result.Data.Pages = append(result.Data.Pages, page)
	result.Scraped++

	queued := 0
	for _, link := range links {
		if frontier.Push(link) {
			queued++
		}
	}

	c.report(ProgressEvent{
		Type:    ProgressCompleted,
		URL:     o.url,
		Scraped: result.Scraped,
		Queued:  frontier.Len(),
		Links:   queued,
	})
}

func (c *Crawler) report(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}

func (c *Crawler) sleep(ctx context.Context, d time.Duration) error {
	if c.Sleep != nil {
		return c.Sleep(ctx, d)
	}
	return sleepContext(ctx, d)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// expectedURLs sizes the visited prefilter. Every scraped page can enqueue
// many links.
func expectedURLs(maxPages int) uint {
	return uint(max(maxPages*10, 1024))
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
