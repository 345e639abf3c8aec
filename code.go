package docview

// CodeBlock is a code listing found in rendered document HTML.
type CodeBlock struct {
	Lang string
	Text string
}

// CodeExtractor finds code blocks in rendered HTML, in document order.
type CodeExtractor interface {
	CodeBlocks(html string) ([]CodeBlock, error)
}

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}
