package etree_test

import (
	"testing"

	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/etree"
	"github.com/fwojciec/docview/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalSidebar(t *testing.T) {
	t.Parallel()

	t.Run("collapsed folder hides its children", func(t *testing.T) {
		t.Parallel()

		var children []*docview.Entry
		for _, name := range []string{"a", "b", "c", "d", "e"} {
			children = append(children, &docview.Entry{Type: docview.EntryFile, Name: name + ".md", Title: name, Path: "guide/" + name + ".md"})
		}
		sb := viewer.BuildSidebar([]*docview.Entry{{Type: docview.EntryFolder, Name: "Guide", Children: children}})
		id := sb.Nodes[0].ID

		out, err := etree.MarshalSidebar(sb)

		require.NoError(t, err)
		assert.Contains(t, out, `<li class="folder" data-folder-id="`+id+`" data-state="collapsed">`)
		assert.Contains(t, out, `<span class="folder-icon">📁</span>Guide<span class="folder-arrow">▶</span>`)
		assert.Contains(t, out, `<ul class="folder-children" data-parent="`+id+`" style="display:none">`)
		assert.Contains(t, out, `<li class="sub-item" style="padding-left: 20px"><a href="#guide%2Fa.md" data-path="guide/a.md"><span class="file-icon">📄</span>a</a></li>`)
	})

	t.Run("escapes labels", func(t *testing.T) {
		t.Parallel()

		sb := viewer.BuildSidebar([]*docview.Entry{{Type: docview.EntryFile, Name: "x", Title: "<b>&</b>", Path: "x.md"}})

		out, err := etree.MarshalSidebar(sb)

		require.NoError(t, err)
		assert.Contains(t, out, "&lt;b&gt;&amp;&lt;/b&gt;")
		assert.NotContains(t, out, "padding-left", "top-level files are not indented")
	})

	t.Run("empty folder has no child list", func(t *testing.T) {
		t.Parallel()

		sb := viewer.BuildSidebar([]*docview.Entry{{Type: docview.EntryFolder, Name: "empty"}})

		out, err := etree.MarshalSidebar(sb)

		require.NoError(t, err)
		assert.NotContains(t, out, "folder-children")
		assert.Contains(t, out, `data-state="expanded"`)
	})

	t.Run("message and search heading", func(t *testing.T) {
		t.Parallel()

		out, err := etree.MarshalSidebar(viewer.MessageSidebar(viewer.MessageEmpty))
		require.NoError(t, err)
		assert.Equal(t, `<ul id="sidebar-list"><li>暂无文档</li></ul>`, out)

		out, err = etree.MarshalSidebar(viewer.SearchResults([]*docview.Entry{{Type: docview.EntryFile, Name: "a", Path: "a.md"}}))
		require.NoError(t, err)
		assert.Contains(t, out, `<li class="folder">搜索结果</li>`)
	})
}
