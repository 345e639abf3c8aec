package main

import (
	"fmt"

	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/glamour"
	"github.com/fwojciec/docview/htmltomarkdown"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	s, err := deps.openSession(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}

	if err := s.app.Start(deps.Ctx, c.Path); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}
	state := s.app.State()
	if state.Path == "" {
		err := docview.Errorf(docview.EINVALID, "no document given and no home_page configured")
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}

	if c.HTML {
		fmt.Fprintln(deps.Stdout, state.HTML)
		return nil
	}

	painter := glamour.NewPainter(htmltomarkdown.NewConverter())
	out, err := painter.Paint(state.HTML, string(state.Theme), c.Width)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}
	fmt.Fprint(deps.Stdout, out)
	return nil
}
