package viewer

import (
	"regexp"

	"github.com/fwojciec/docview"
)

var paragraphBoundary = regexp.MustCompile(`</p>\s*<p>`)

// CollapseParagraphs joins directly adjacent paragraphs with a line break.
func CollapseParagraphs(html string) string {
	return paragraphBoundary.ReplaceAllString(html, "<br>")
}

// ContentRenderer turns fetched document text into display HTML.
type ContentRenderer struct {
	markdown docview.Renderer
}

// NewContentRenderer creates a ContentRenderer over a markdown capability.
func NewContentRenderer(markdown docview.Renderer) *ContentRenderer {
	return &ContentRenderer{markdown: markdown}
}

// Render returns HTML for the document at path. HTML documents pass through
// verbatim. Anything else is rendered as markdown and post-processed.
// Failures, including panics in the markdown capability, are returned as
// EINTERNAL errors carrying a displayable message.
func (r *ContentRenderer) Render(path, text string) (html string, err error) {
	if docview.IsHTML(path) {
		return text, nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			html = ""
			err = docview.Errorf(docview.EINTERNAL, "Markdown 解析失败: %v", rec)
		}
	}()

	out, err := r.markdown.Render(text)
	if err != nil {
		return "", docview.Errorf(docview.EINTERNAL, "Markdown 解析失败: %s", docview.ErrorMessage(err))
	}
	return CollapseParagraphs(out), nil
}
