package main

import (
	"fmt"

	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/viewer"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	s, err := deps.openSession(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}

	s.app.LoadSidebar(deps.Ctx)
	results := viewer.Filter(s.app.Entries(), c.Query)
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, viewer.MessageNoMatches)
		return nil
	}

	for _, e := range results {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", e.DisplayTitle(), e.Path)
	}
	return nil
}
