package viewer_test

import (
	"testing"

	"github.com/fwojciec/docview/viewer"
	"github.com/stretchr/testify/assert"
)

func TestLocation(t *testing.T) {
	t.Parallel()

	t.Run("back and forward", func(t *testing.T) {
		t.Parallel()

		var l viewer.Location
		l.Push("a.md")
		l.Push("b.md")
		l.Push("c.md")

		prev, ok := l.Back()
		assert.True(t, ok)
		assert.Equal(t, "b.md", prev)

		next, ok := l.Forward()
		assert.True(t, ok)
		assert.Equal(t, "c.md", next)
		assert.False(t, l.CanGoForward())
	})

	t.Run("pushing the current path is a no-op", func(t *testing.T) {
		t.Parallel()

		var l viewer.Location
		l.Push("a.md")
		l.Push("a.md")

		assert.False(t, l.CanGoBack())
	})

	t.Run("new visit clears forward history", func(t *testing.T) {
		t.Parallel()

		var l viewer.Location
		l.Push("a.md")
		l.Push("b.md")
		l.Back()
		l.Push("c.md")

		assert.False(t, l.CanGoForward())
		assert.Equal(t, "c.md", l.Current())
	})

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()

		var l viewer.Location
		_, ok := l.Back()
		assert.False(t, ok)
		_, ok = l.Forward()
		assert.False(t, ok)
	})
}
