package viewer

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docview"
)

// Sidebar layout constants.
const (
	// CollapseThreshold is the recursive file count at which a folder
	// starts out collapsed.
	CollapseThreshold = 4
	// IndentStep is the per-depth indentation of file links, in pixels.
	IndentStep = 20
)

// Sidebar messages.
const (
	MessageEmpty       = "暂无文档"
	MessageNoMatches   = "未找到匹配的文档"
	MessageUnavailable = "请在config.json中配置source_dir"
	HeadingResults     = "搜索结果"
)

// NodeKind identifies the role of a sidebar node.
type NodeKind int

// NodeKind constants.
const (
	NodeFolder NodeKind = iota
	NodeFile
	NodeHeading
	NodeMessage
)

// Node is one element of the sidebar tree.
type Node struct {
	Kind      NodeKind
	ID        string
	Label     string
	Path      string
	Depth     int
	Collapsed bool
	Children  []*Node
}

// EscapedPath returns the percent-encoded document path used in links.
func (n *Node) EscapedPath() string {
	return url.PathEscape(n.Path)
}

// State returns "collapsed" or "expanded".
func (n *Node) State() string {
	if n.Collapsed {
		return "collapsed"
	}
	return "expanded"
}

// Arrow returns the folder arrow glyph for the current state.
func (n *Node) Arrow() string {
	if n.Collapsed {
		return "▶"
	}
	return "▼"
}

// Indent returns the left indentation in pixels.
func (n *Node) Indent() int {
	return n.Depth * IndentStep
}

func (n *Node) clone() *Node {
	c := *n
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.clone()
		}
	}
	return &c
}

// Sidebar is the rendered navigation tree.
type Sidebar struct {
	Nodes []*Node
}

// BuildSidebar builds the navigation tree for an index. Folders holding
// CollapseThreshold or more files, counted recursively, start collapsed.
func BuildSidebar(entries []*docview.Entry) *Sidebar {
	nodes := buildNodes(entries, 0, "")
	if len(nodes) == 0 {
		return MessageSidebar(MessageEmpty)
	}
	return &Sidebar{Nodes: nodes}
}

func buildNodes(entries []*docview.Entry, depth int, parent string) []*Node {
	var nodes []*Node
	for i, e := range entries {
		position := parent + "/" + strconv.Itoa(i)
		switch {
		case e.IsFolder():
			nodes = append(nodes, &Node{
				Kind:      NodeFolder,
				ID:        folderID(position),
				Label:     e.Name,
				Depth:     depth,
				Collapsed: docview.CountFiles(e.Children) >= CollapseThreshold,
				Children:  buildNodes(e.Children, depth+1, position),
			})
		case e.IsFile():
			nodes = append(nodes, &Node{
				Kind:  NodeFile,
				Label: e.DisplayTitle(),
				Path:  e.Path,
				Depth: depth,
			})
		}
	}
	return nodes
}

func folderID(position string) string {
	return "folder-" + strconv.FormatUint(xxhash.Sum64String(position), 16)
}

// SearchResults builds the flat sidebar shown for a search.
func SearchResults(results []*docview.Entry) *Sidebar {
	if len(results) == 0 {
		return MessageSidebar(MessageNoMatches)
	}
	nodes := make([]*Node, 0, len(results)+1)
	nodes = append(nodes, &Node{Kind: NodeHeading, Label: HeadingResults})
	for _, e := range results {
		nodes = append(nodes, &Node{Kind: NodeFile, Label: e.DisplayTitle(), Path: e.Path})
	}
	return &Sidebar{Nodes: nodes}
}

// MessageSidebar returns a sidebar holding a single message.
func MessageSidebar(msg string) *Sidebar {
	return &Sidebar{Nodes: []*Node{{Kind: NodeMessage, Label: msg}}}
}

// Message returns the text of a message-only sidebar, or "".
func (s *Sidebar) Message() string {
	if len(s.Nodes) == 1 && s.Nodes[0].Kind == NodeMessage {
		return s.Nodes[0].Label
	}
	return ""
}

// Find returns the folder with the given id, or nil.
func (s *Sidebar) Find(id string) *Node {
	return find(s.Nodes, id)
}

func find(nodes []*Node, id string) *Node {
	for _, n := range nodes {
		if n.Kind == NodeFolder && n.ID == id {
			return n
		}
		if found := find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// Toggle flips the collapsed state of the folder with the given id. It
// reports false when id names no folder or the folder has no children.
func (s *Sidebar) Toggle(id string) bool {
	n := s.Find(id)
	if n == nil || len(n.Children) == 0 {
		return false
	}
	n.Collapsed = !n.Collapsed
	return true
}

// Rows returns the visible nodes in display order. Children of collapsed
// folders are omitted.
func (s *Sidebar) Rows() []*Node {
	return rows(s.Nodes, nil)
}

func rows(nodes []*Node, out []*Node) []*Node {
	for _, n := range nodes {
		out = append(out, n)
		if n.Kind == NodeFolder && !n.Collapsed {
			out = rows(n.Children, out)
		}
	}
	return out
}

// Clone returns a deep copy of the sidebar.
func (s *Sidebar) Clone() *Sidebar {
	if s == nil {
		return nil
	}
	c := &Sidebar{Nodes: make([]*Node, len(s.Nodes))}
	for i, n := range s.Nodes {
		c.Nodes[i] = n.clone()
	}
	return c
}

// String renders the visible rows as indented text.
func (s *Sidebar) String() string {
	var b strings.Builder
	for _, n := range s.Rows() {
		b.WriteString(strings.Repeat("  ", n.Depth))
		switch n.Kind {
		case NodeFolder:
			b.WriteString(n.Arrow())
			b.WriteString(" ")
			b.WriteString(n.Label)
		case NodeFile:
			b.WriteString(n.Label)
			b.WriteString(" (")
			b.WriteString(n.Path)
			b.WriteString(")")
		default:
			b.WriteString(n.Label)
		}
		b.WriteString("\n")
	}
	return b.String()
}
