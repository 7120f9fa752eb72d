package main

import (
	"fmt"
	"time"

	"github.com/cassieopeanuts/scrabtopus"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, scrabtopus.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrabtopus.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'scrabtopus crawl --db' to store one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %4d pages  %s\n",
			r.ID, r.StartedAt.Format(time.DateTime), r.PageCount, r.SeedURL)
	}

	return nil
}
