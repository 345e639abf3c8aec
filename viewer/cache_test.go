package viewer_test

import (
	"testing"

	"github.com/fwojciec/docview/viewer"
	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	t.Parallel()

	t.Run("rendered replaces raw", func(t *testing.T) {
		t.Parallel()

		c := viewer.NewCache()
		c.SetRaw("a.md", "# A")
		c.SetRendered("a.md", "<h1>A</h1>")

		_, ok := c.Raw("a.md")
		assert.False(t, ok)
		html, ok := c.Rendered("a.md")
		assert.True(t, ok)
		assert.Equal(t, "<h1>A</h1>", html)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("raw is ignored once rendered", func(t *testing.T) {
		t.Parallel()

		c := viewer.NewCache()
		c.SetRendered("a.md", "<h1>A</h1>")
		c.SetRaw("a.md", "# stale")

		_, ok := c.Raw("a.md")
		assert.False(t, ok)
	})

	t.Run("Has checks both tiers", func(t *testing.T) {
		t.Parallel()

		c := viewer.NewCache()
		c.SetRaw("raw.md", "x")
		c.SetRendered("rendered.md", "<p>x</p>")

		assert.True(t, c.Has("raw.md"))
		assert.True(t, c.Has("rendered.md"))
		assert.False(t, c.Has("other.md"))
		assert.Equal(t, 2, c.Len())
	})
}
