package mock

import "github.com/fwojciec/docview"

var _ docview.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of docview.Renderer.
type Renderer struct {
	RenderFn func(text string) (string, error)
}

func (r *Renderer) Render(text string) (string, error) {
	return r.RenderFn(text)
}
