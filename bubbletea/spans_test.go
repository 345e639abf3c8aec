package bubbletea_test

import (
	"testing"

	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/bubbletea"
	"github.com/fwojciec/docview/viewer"
	"github.com/stretchr/testify/assert"
)

func TestCodeSpans(t *testing.T) {
	t.Parallel()

	t.Run("locates styled blocks in order", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"  Intro",
			"",
			"  \x1b[38;5;81mfunc\x1b[0m main() {",
			"  }",
			"",
			"  echo hi",
		}
		blocks := []docview.CodeBlock{
			{Lang: "go", Text: "func main() {\n}\n"},
			{Lang: "sh", Text: "echo hi"},
		}

		spans := bubbletea.CodeSpans(lines, blocks)

		assert.Equal(t, []viewer.Span{{Top: 2, Height: 2}, {Top: 5, Height: 1}}, spans)
	})

	t.Run("missing block gets an empty span", func(t *testing.T) {
		t.Parallel()

		spans := bubbletea.CodeSpans([]string{"text"}, []docview.CodeBlock{{Text: "absent"}})

		assert.Equal(t, []viewer.Span{{}}, spans)
	})

	t.Run("repeated first line matches after the previous block", func(t *testing.T) {
		t.Parallel()

		lines := []string{"x := 1", "x := 1"}
		blocks := []docview.CodeBlock{{Text: "x := 1"}, {Text: "x := 1"}}

		spans := bubbletea.CodeSpans(lines, blocks)

		assert.Equal(t, 0, spans[0].Top)
		assert.Equal(t, 1, spans[1].Top)
	})
}
