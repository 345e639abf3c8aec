// Package glamour paints rendered document HTML for terminals.
package glamour

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/fwojciec/docview"
)

// MinWidth is the narrowest word wrap width used.
const MinWidth = 20

// Painter converts document HTML to Markdown and renders it with a glamour
// standard style. Renderers are reused per style and width.
type Painter struct {
	converter docview.Converter

	mu        sync.Mutex
	renderers map[key]*glamour.TermRenderer
}

type key struct {
	style string
	width int
}

// NewPainter creates a Painter that converts HTML with converter.
func NewPainter(converter docview.Converter) *Painter {
	return &Painter{
		converter: converter,
		renderers: make(map[key]*glamour.TermRenderer),
	}
}

// Paint renders html in style ("light" or "dark") wrapped at width columns.
func (p *Painter) Paint(html, style string, width int) (string, error) {
	md, err := p.converter.Convert(html)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(md) == "" {
		return "", nil
	}

	r, err := p.renderer(style, max(width, MinWidth))
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", docview.Errorf(docview.EINTERNAL, "paint: %v", err)
	}
	return out, nil
}

func (p *Painter) renderer(style string, width int) (*glamour.TermRenderer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	k := key{style: style, width: width}
	if r, ok := p.renderers[k]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, docview.Errorf(docview.EINVALID, "style %q: %v", style, err)
	}
	p.renderers[k] = r
	return r, nil
}
