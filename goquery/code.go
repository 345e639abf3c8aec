// Package goquery inspects rendered document HTML.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docview"
)

// Ensure CodeExtractor implements docview.CodeExtractor at compile time.
var _ docview.CodeExtractor = (*CodeExtractor)(nil)

// CodeExtractor finds pre blocks in rendered HTML.
type CodeExtractor struct{}

// NewCodeExtractor creates a CodeExtractor.
func NewCodeExtractor() *CodeExtractor {
	return &CodeExtractor{}
}

// CodeBlocks returns each pre block in document order. The copied text is
// that of the inner code element when there is one.
func (e *CodeExtractor) CodeBlocks(html string) ([]docview.CodeBlock, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docview.Errorf(docview.EINVALID, "failed to parse HTML: %v", err)
	}

	var blocks []docview.CodeBlock
	doc.Find("pre").Each(func(_ int, pre *goquery.Selection) {
		target := pre
		if code := pre.ChildrenFiltered("code").First(); code.Length() > 0 {
			target = code
		}
		blocks = append(blocks, docview.CodeBlock{
			Lang: language(target),
			Text: target.Text(),
		})
	})
	return blocks, nil
}

func language(s *goquery.Selection) string {
	if lang, ok := s.Attr("data-lang"); ok {
		return lang
	}
	class, _ := s.Attr("class")
	for _, c := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(c, "language-"); ok {
			return lang
		}
	}
	return ""
}

// Title returns the text of the first h1, or "".
func Title(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", docview.Errorf(docview.EINVALID, "failed to parse HTML: %v", err)
	}
	return strings.TrimSpace(doc.Find("h1").First().Text()), nil
}
