package main

import (
	"fmt"

	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/bubbletea"
	"github.com/fwojciec/docview/glamour"
	"github.com/fwojciec/docview/htmltomarkdown"
)

// Run executes the view command.
func (c *ViewCmd) Run(deps *Dependencies) error {
	s, err := deps.openSession(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}
	s.layout.NarrowWidth = bubbletea.NarrowColumns
	s.app.BackToTopThreshold = bubbletea.BackToTopLines

	painter := glamour.NewPainter(htmltomarkdown.NewConverter())
	m := bubbletea.NewModel(deps.Ctx, s.app, painter, c.Path)
	m.Logger = deps.logger()

	if err := bubbletea.Run(deps.Ctx, m); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}
	return nil
}
