// Package etree serializes the sidebar tree to HTML markup.
package etree

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/fwojciec/docview/viewer"
)

// MarshalSidebar returns the sidebar as a ul#sidebar-list element. Folders
// are li.folder headers followed by a sibling ul.folder-children list;
// files are li.sub-item links to their encoded fragment.
func MarshalSidebar(sb *viewer.Sidebar) (string, error) {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true

	list := doc.CreateElement("ul")
	list.CreateAttr("id", "sidebar-list")
	appendNodes(list, sb.Nodes)

	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("marshal sidebar: %w", err)
	}
	return out, nil
}

func appendNodes(parent *etree.Element, nodes []*viewer.Node) {
	for _, n := range nodes {
		switch n.Kind {
		case viewer.NodeFolder:
			appendFolder(parent, n)
		case viewer.NodeFile:
			appendFile(parent, n)
		case viewer.NodeHeading:
			li := parent.CreateElement("li")
			li.CreateAttr("class", "folder")
			li.SetText(n.Label)
		default:
			parent.CreateElement("li").SetText(n.Label)
		}
	}
}

func appendFolder(parent *etree.Element, n *viewer.Node) {
	li := parent.CreateElement("li")
	li.CreateAttr("class", "folder")
	li.CreateAttr("data-folder-id", n.ID)
	li.CreateAttr("data-state", n.State())

	name := li.CreateElement("span")
	name.CreateAttr("class", "folder-name")
	icon := name.CreateElement("span")
	icon.CreateAttr("class", "folder-icon")
	icon.SetText("📁")
	name.CreateText(n.Label)
	arrow := name.CreateElement("span")
	arrow.CreateAttr("class", "folder-arrow")
	arrow.SetText(n.Arrow())

	if len(n.Children) == 0 {
		return
	}
	children := parent.CreateElement("ul")
	children.CreateAttr("class", "folder-children")
	children.CreateAttr("data-parent", n.ID)
	display := "block"
	if n.Collapsed {
		display = "none"
	}
	children.CreateAttr("style", "display:"+display)
	appendNodes(children, n.Children)
}

func appendFile(parent *etree.Element, n *viewer.Node) {
	li := parent.CreateElement("li")
	li.CreateAttr("class", "sub-item")
	if n.Depth > 0 {
		li.CreateAttr("style", fmt.Sprintf("padding-left: %dpx", n.Indent()))
	}
	a := li.CreateElement("a")
	a.CreateAttr("href", "#"+n.EscapedPath())
	a.CreateAttr("data-path", n.Path)
	icon := a.CreateElement("span")
	icon.CreateAttr("class", "file-icon")
	icon.SetText("📄")
	a.CreateText(n.Label)
}
