package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/cassieopeanuts/scrabtopus"
	"github.com/cassieopeanuts/scrabtopus/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Crawler *crawl.Crawler
	Writers []scrabtopus.Writer
	Runs    scrabtopus.RunService

	// RunID reports the ID of the run stored by the last write, if any.
	RunID func() string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    kong.ConfigFlag `help:"Load configuration from a YAML file"`
	Verbose   bool            `short:"v" help:"Log every request and write"`
	LogFormat string          `default:"text" enum:"text,json,pretty" help:"Log format (text, json, pretty)"`

	Crawl CrawlCmd `cmd:"" help:"Crawl a site and extract its sections"`
	Runs  RunsCmd  `cmd:"" help:"List crawl runs stored in the database"`
	Show  ShowCmd  `cmd:"" help:"Print a stored crawl run"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string        `arg:"" name:"seed" help:"Seed URL; only pages on its host are crawled"`
	MaxPages    int           `default:"${max_pages}" help:"Maximum number of pages to scrape"`
	Delay       time.Duration `default:"${delay}" help:"Politeness delay between requests"`
	UserAgent   string        `default:"${user_agent}" help:"User-Agent header sent with requests"`
	Output      string        `short:"o" default:"${output}" help:"Output file, or - for stdout"`
	Format      string        `default:"json" enum:"json,markdown" help:"Output format (json, markdown)"`
	DB          string        `name:"db" help:"Also store the run in this SQLite database"`
	Concurrency int           `short:"c" default:"1" help:"Concurrent fetch limit"`
	Locator     string        `default:"main" enum:"main,trafilatura,readability" help:"Main content locator (main, trafilatura, readability)"`
	Include     []string      `help:"Only follow links matching this regex (repeatable)"`
	Exclude     []string      `help:"Never follow links matching this regex (repeatable)"`
	Timeout     time.Duration `default:"${timeout}" help:"Per-request timeout"`
	MaxBodySize int64         `default:"${max_body_size}" help:"Maximum response body bytes read per page"`
	Retries     int           `default:"0" help:"Retries for failed requests"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	DB    string `name:"db" default:"${db_path}" help:"SQLite database path"`
	Limit int    `default:"20" help:"Maximum number of runs to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" name:"run-id" help:"Run ID"`
	DB     string `name:"db" default:"${db_path}" help:"SQLite database path"`
	Format string `default:"json" enum:"json,markdown" help:"Output format (json, markdown)"`
}
