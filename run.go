package scrabtopus

import (
	"context"
	"time"
)

// Run is a stored crawl.
type Run struct {
	ID         string
	SeedURL    string
	PageCount  int
	StartedAt  time.Time
	FinishedAt time.Time
}

// RunFilter restricts the runs returned by FindRuns.
type RunFilter struct {
	Limit  int
	Offset int
}

// RunService reads crawls persisted by a Writer.
type RunService interface {
	// FindRuns returns stored runs, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindRunData returns the pages of a run.
	// Returns ENOTFOUND if the run does not exist.
	FindRunData(ctx context.Context, id string) (*ScrapedData, error)
}
