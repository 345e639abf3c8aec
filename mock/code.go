package mock

import "github.com/fwojciec/docview"

var (
	_ docview.CodeExtractor = (*CodeExtractor)(nil)
	_ docview.Clipboard     = (*Clipboard)(nil)
)

// CodeExtractor is a mock implementation of docview.CodeExtractor.
type CodeExtractor struct {
	CodeBlocksFn func(html string) ([]docview.CodeBlock, error)
}

func (e *CodeExtractor) CodeBlocks(html string) ([]docview.CodeBlock, error) {
	return e.CodeBlocksFn(html)
}

// Clipboard is a mock implementation of docview.Clipboard.
type Clipboard struct {
	WriteAllFn func(text string) error
}

func (c *Clipboard) WriteAll(text string) error {
	return c.WriteAllFn(text)
}
