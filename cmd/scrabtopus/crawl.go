package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cassieopeanuts/scrabtopus"
	"github.com/cassieopeanuts/scrabtopus/crawl"
	"github.com/cassieopeanuts/scrabtopus/fs"
	sgoquery "github.com/cassieopeanuts/scrabtopus/goquery"
	shttp "github.com/cassieopeanuts/scrabtopus/http"
	"github.com/cassieopeanuts/scrabtopus/markdown"
	"github.com/cassieopeanuts/scrabtopus/readability"
	sslog "github.com/cassieopeanuts/scrabtopus/slog"
	"github.com/cassieopeanuts/scrabtopus/sqlite"
	"github.com/cassieopeanuts/scrabtopus/trafilatura"
)

// Validate checks flag values before any work starts. A seed that cannot
// be parsed at all is let through; the crawl reports it and writes an
// empty result.
func (c *CrawlCmd) Validate() error {
	if _, err := scrabtopus.ParseSeed(c.URL); err != nil && scrabtopus.ErrorCode(err) != scrabtopus.ERESOLVE {
		return err
	}
	if c.MaxPages <= 0 {
		return scrabtopus.Errorf(scrabtopus.EINVALID, "max-pages must be positive, got %d", c.MaxPages)
	}
	if c.Delay < 0 {
		return scrabtopus.Errorf(scrabtopus.EINVALID, "delay must not be negative, got %s", c.Delay)
	}
	if c.Concurrency < 1 {
		return scrabtopus.Errorf(scrabtopus.EINVALID, "concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Timeout <= 0 {
		return scrabtopus.Errorf(scrabtopus.EINVALID, "timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxBodySize <= 0 {
		return scrabtopus.Errorf(scrabtopus.EINVALID, "max-body-size must be positive, got %d", c.MaxBodySize)
	}
	if c.Retries < 0 {
		return scrabtopus.Errorf(scrabtopus.EINVALID, "retries must not be negative, got %d", c.Retries)
	}
	if _, err := scrabtopus.NewURLFilter(c.Include, c.Exclude); err != nil {
		return err
	}
	return nil
}

// wireCrawl builds the crawler and output writers for the crawl command.
func (m *Main) wireCrawl(deps *Dependencies, c *CrawlCmd, verbose bool) error {
	filter, err := scrabtopus.NewURLFilter(c.Include, c.Exclude)
	if err != nil {
		return err
	}

	var fetcher scrabtopus.Fetcher = shttp.NewFetcher(
		shttp.WithTimeout(c.Timeout),
		shttp.WithUserAgent(c.UserAgent),
		shttp.WithMaxBodySize(c.MaxBodySize),
	)
	if verbose {
		fetcher = sslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	extractor, err := sgoquery.NewExtractor(
		sgoquery.WithLocator(newLocator(c.Locator)),
		sgoquery.WithURLFilter(filter),
	)
	if err != nil {
		return err
	}

	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Extractor:   extractor,
		MaxPages:    c.MaxPages,
		Delay:       c.Delay,
		Concurrency: c.Concurrency,
		RetryDelays: crawl.RetryDelays(c.Retries),
	}
	if c.Concurrency > 1 {
		crawler.RateLimiter = crawl.NewIntervalLimiter(c.Delay)
	}
	deps.Crawler = crawler

	var out scrabtopus.Writer
	switch {
	case c.Output == "-" && c.Format == "markdown":
		out = markdown.NewWriter(deps.Stdout)
	case c.Output == "-":
		out = fs.NewStreamWriter(deps.Stdout, fs.EncodeJSON)
	case c.Format == "markdown":
		out = fs.NewWriter(c.Output, markdown.Encode)
	default:
		out = fs.NewJSONWriter(c.Output)
	}
	name := c.Output
	if name == "-" {
		name = "stdout"
	}
	deps.Writers = append(deps.Writers, logWriter(out, name, deps.Logger, verbose))

	if c.DB != "" {
		if err := m.openDB(c.DB, deps.Stderr); err != nil {
			return err
		}
		store := sqlite.NewStore(m.DB, c.URL)
		deps.Writers = append(deps.Writers, logWriter(store, c.DB, deps.Logger, verbose))
		deps.RunID = store.LastRunID
	}

	return nil
}

func logWriter(w scrabtopus.Writer, name string, logger *slog.Logger, verbose bool) scrabtopus.Writer {
	if !verbose {
		return w
	}
	return sslog.NewLoggingWriter(w, name, logger)
}

func newLocator(name string) sgoquery.Locator {
	switch name {
	case "trafilatura":
		return trafilatura.NewLocator()
	case "readability":
		return readability.NewLocator()
	default:
		return sgoquery.MainLocator{Selector: sgoquery.DefaultMainSelector}
	}
}

// Run executes the crawl command. When the crawl is interrupted the pages
// scraped so far are still written.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	deps.Crawler.Progress = func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			logger.Info("crawl started", "seed", event.URL)
		case crawl.ProgressCompleted:
			logger.Debug("page scraped", "url", event.URL, "scraped", event.Scraped, "queued", event.Queued, "links", event.Links)
		case crawl.ProgressFailed:
			logger.Warn("skip", "url", event.URL, "err", event.Error)
		case crawl.ProgressRetrying:
			logger.Info("retry", "url", event.URL, "attempt", event.Attempt, "err", event.Error)
		case crawl.ProgressFinished:
			logger.Info("crawl finished", "scraped", event.Scraped, "pending", event.Queued)
		}
	}

	result, crawlErr := deps.Crawler.Crawl(deps.Ctx, c.URL)

	// Write even if the crawl was interrupted.
	writeCtx := context.WithoutCancel(deps.Ctx)
	for _, w := range deps.Writers {
		if err := w.Write(writeCtx, result.Data); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrabtopus.ErrorMessage(err))
			return err
		}
	}

	summary := deps.Stdout
	if c.Output == "-" {
		summary = deps.Stderr
	}
	fmt.Fprintf(summary, "Scraped %d pages\n", result.Scraped)
	if deps.RunID != nil {
		fmt.Fprintf(summary, "Stored run %s\n", deps.RunID())
	}

	if crawlErr != nil {
		fmt.Fprintf(deps.Stderr, "Interrupted; wrote %d pages scraped so far\n", result.Scraped)
		return crawlErr
	}

	return nil
}
