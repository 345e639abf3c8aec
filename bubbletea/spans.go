package bubbletea

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/viewer"
)

// CodeSpans locates each code block in painted terminal lines. A block is
// found by its first non-blank line, searching forward from the end of the
// previous block. Blocks that cannot be found get an empty span and never
// come into view.
func CodeSpans(lines []string, blocks []docview.CodeBlock) []viewer.Span {
	plain := make([]string, len(lines))
	for i, l := range lines {
		plain[i] = strings.TrimSpace(ansi.Strip(l))
	}

	spans := make([]viewer.Span, len(blocks))
	from := 0
	for i, b := range blocks {
		text := strings.Split(strings.TrimRight(b.Text, "\n"), "\n")
		first := firstNonBlank(text)
		if first == "" {
			continue
		}
		for j := from; j < len(plain); j++ {
			if !strings.Contains(plain[j], first) {
				continue
			}
			spans[i] = viewer.Span{Top: j, Height: len(text)}
			from = j + len(text)
			break
		}
	}
	return spans
}

func firstNonBlank(lines []string) string {
	for _, l := range lines {
		if s := strings.TrimSpace(l); s != "" {
			return s
		}
	}
	return ""
}
