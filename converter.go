package docview

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms rendered document HTML into Markdown so it can be
	// displayed by terminal renderers. Empty input yields empty output.
	Convert(html string) (string, error)
}
