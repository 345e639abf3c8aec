package viewer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/mock"
	"github.com/fwojciec/docview/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocuments_Load(t *testing.T) {
	t.Parallel()

	t.Run("second load is served from cache with identical html", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{"docs/guide.md": "hello\n\nworld"})
		docs := newDocuments(s, &mock.Scheduler{})

		first, err := docs.Load(context.Background(), "guide.md")
		require.NoError(t, err)
		second, err := docs.Load(context.Background(), "guide.md")
		require.NoError(t, err)

		assert.Equal(t, first.HTML, second.HTML)
		assert.Equal(t, viewer.OriginNetwork, first.Origin)
		assert.Equal(t, viewer.OriginRendered, second.Origin)
		assert.Equal(t, 1, s.count("docs/guide.md"))
	})

	t.Run("missing document is reported and not cached", func(t *testing.T) {
		t.Parallel()

		s := newSite(nil)
		docs := newDocuments(s, &mock.Scheduler{})

		_, err := docs.Load(context.Background(), "missing.md")

		assert.Equal(t, docview.ENOTFOUND, docview.ErrorCode(err))
		assert.Equal(t, "文件不存在: missing.md", docview.ErrorMessage(err))
		assert.False(t, docs.Cache().Has("missing.md"))
		assert.Equal(t, 0, docs.Cache().Len())
	})

	t.Run("failed load is retried", func(t *testing.T) {
		t.Parallel()

		s := newSite(nil)
		docs := newDocuments(s, &mock.Scheduler{})

		_, err := docs.Load(context.Background(), "late.md")
		require.Error(t, err)

		s.set("docs/late.md", "arrived")
		doc, err := docs.Load(context.Background(), "late.md")

		require.NoError(t, err)
		assert.Equal(t, "<p>arrived</p>\n", doc.HTML)
		assert.Equal(t, 2, s.count("docs/late.md"))
	})

	t.Run("html documents are stored verbatim", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{"docs/page.html": "<p>a</p>\n<p>b</p>"})
		docs := newDocuments(s, &mock.Scheduler{})

		doc, err := docs.Load(context.Background(), "page.html")

		require.NoError(t, err)
		assert.Equal(t, "<p>a</p>\n<p>b</p>", doc.HTML)
	})

	t.Run("raw hit is rendered and promoted", func(t *testing.T) {
		t.Parallel()

		s := newSite(nil)
		docs := newDocuments(s, &mock.Scheduler{})
		docs.Cache().SetRaw("pooled.md", "pooled")

		doc, err := docs.Load(context.Background(), "pooled.md")

		require.NoError(t, err)
		assert.Equal(t, viewer.OriginRaw, doc.Origin)
		_, raw := docs.Cache().Raw("pooled.md")
		assert.False(t, raw)
		html, ok := docs.Cache().Rendered("pooled.md")
		assert.True(t, ok)
		assert.Equal(t, doc.HTML, html)
		assert.Equal(t, 0, s.count("docs/pooled.md"))
	})

	t.Run("render failure is not cached", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{"docs/broken.md": "x"})
		renderer := viewer.NewContentRenderer(&mock.Renderer{
			RenderFn: func(string) (string, error) { return "", errors.New("unexpected token") },
		})
		docs := viewer.NewDocuments(s.source(), renderer, viewer.NewCache(), &mock.Scheduler{})

		_, err := docs.Load(context.Background(), "broken.md")

		assert.Equal(t, "Markdown 解析失败: unexpected token", docview.ErrorMessage(err))
		assert.False(t, docs.Cache().Has("broken.md"))
	})
}

func TestDocuments_Prefetch(t *testing.T) {
	t.Parallel()

	t.Run("hover shorter than the delay fetches nothing", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{"docs/a.md": "a"})
		sched := &mock.Scheduler{}
		docs := newDocuments(s, sched)

		assert.True(t, docs.Prefetch(context.Background(), "a.md"))
		sched.Advance(149 * time.Millisecond)
		docs.CancelPrefetch("a.md")
		sched.Advance(time.Second)

		assert.Equal(t, 0, s.count("docs/a.md"))
		assert.False(t, docs.Cache().Has("a.md"))
		assert.False(t, docs.Pending("a.md"))
	})

	t.Run("hover past the delay populates the raw tier once", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{"docs/a.md": "a"})
		sched := &mock.Scheduler{}
		docs := newDocuments(s, sched)

		docs.Prefetch(context.Background(), "a.md")
		sched.Advance(100 * time.Millisecond)
		docs.Prefetch(context.Background(), "a.md")
		docs.Prefetch(context.Background(), "a.md")
		assert.Equal(t, 1, sched.Pending())

		sched.Advance(viewer.DefaultPrefetchDelay)
		assert.False(t, docs.Prefetch(context.Background(), "a.md"))
		sched.Advance(time.Second)

		assert.Equal(t, 1, s.count("docs/a.md"))
		raw, ok := docs.Cache().Raw("a.md")
		assert.True(t, ok)
		assert.Equal(t, "a", raw)
		_, rendered := docs.Cache().Rendered("a.md")
		assert.False(t, rendered)
	})

	t.Run("cached documents are not prefetched", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{"docs/a.md": "a"})
		sched := &mock.Scheduler{}
		docs := newDocuments(s, sched)
		_, err := docs.Load(context.Background(), "a.md")
		require.NoError(t, err)

		assert.False(t, docs.Prefetch(context.Background(), "a.md"))
		assert.Equal(t, 0, sched.Pending())
	})

	t.Run("failed prefetch stores nothing", func(t *testing.T) {
		t.Parallel()

		s := newSite(nil)
		sched := &mock.Scheduler{}
		docs := newDocuments(s, sched)

		docs.Prefetch(context.Background(), "gone.md")
		sched.Advance(viewer.DefaultPrefetchDelay)

		assert.Equal(t, 1, s.count("docs/gone.md"))
		assert.False(t, docs.Cache().Has("gone.md"))
		assert.True(t, docs.Prefetch(context.Background(), "gone.md"))
	})

	t.Run("prefetched document loads without another fetch", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{"docs/a.md": "a"})
		sched := &mock.Scheduler{}
		docs := newDocuments(s, sched)

		docs.Prefetch(context.Background(), "a.md")
		sched.Advance(viewer.DefaultPrefetchDelay)
		doc, err := docs.Load(context.Background(), "a.md")

		require.NoError(t, err)
		assert.Equal(t, viewer.OriginRaw, doc.Origin)
		assert.Equal(t, 1, s.count("docs/a.md"))
	})

	t.Run("custom delay", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{"docs/a.md": "a"})
		sched := &mock.Scheduler{}
		docs := newDocuments(s, sched)
		docs.PrefetchDelay = 10 * time.Millisecond

		docs.Prefetch(context.Background(), "a.md")
		sched.Advance(10 * time.Millisecond)

		assert.True(t, docs.Cache().Has("a.md"))
	})
}
