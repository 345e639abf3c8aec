package main

import (
	"fmt"

	"github.com/fwojciec/docview"
)

// Run executes the tree command.
func (c *TreeCmd) Run(deps *Dependencies) error {
	s, err := deps.openSession(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}

	s.app.LoadSidebar(deps.Ctx)
	fmt.Fprint(deps.Stdout, s.app.State().Sidebar.String())
	return nil
}
