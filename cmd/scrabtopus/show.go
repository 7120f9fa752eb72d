package main

import (
	"fmt"

	"github.com/cassieopeanuts/scrabtopus"
	"github.com/cassieopeanuts/scrabtopus/fs"
	"github.com/cassieopeanuts/scrabtopus/markdown"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	data, err := deps.Runs.FindRunData(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrabtopus.ErrorMessage(err))
		return err
	}

	var out scrabtopus.Writer = fs.NewStreamWriter(deps.Stdout, fs.EncodeJSON)
	if c.Format == "markdown" {
		out = markdown.NewWriter(deps.Stdout)
	}

	if err := out.Write(deps.Ctx, data); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrabtopus.ErrorMessage(err))
		return err
	}

	return nil
}
