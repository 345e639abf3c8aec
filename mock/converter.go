package mock

import "github.com/fwojciec/docview"

var _ docview.Converter = (*Converter)(nil)

// Converter is a mock implementation of docview.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
