package docview

// Renderer converts markdown-like text to HTML.
type Renderer interface {
	Render(text string) (string, error)
}
