package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/docview/viewer"
	"github.com/mattn/go-runewidth"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	headingStyle  = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	sidebarStyle  = lipgloss.NewStyle().
			Width(SidebarWidth).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true)
)

// View renders the viewer.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	height := m.contentHeight()
	var body string
	switch {
	case m.state.Narrow && m.state.MobileOpen:
		body = m.sidebarView(m.width, height)
	case m.state.Narrow || m.state.SidebarCollapsed:
		body = m.content.View()
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			sidebarStyle.Height(height).Render(m.sidebarView(SidebarWidth, height)),
			m.content.View(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.statusView())
}

func (m *Model) headerView() string {
	if m.state.MenuHidden {
		return ""
	}
	header := titleStyle.Render(m.state.SiteTitle)
	if m.state.Path != "" {
		header += "  " + dimStyle.Render(m.state.Path)
	}
	return header
}

func (m *Model) sidebarView(width, height int) string {
	lines := []string{headingStyle.Render(truncate(m.state.SidebarTitle, width))}
	if m.state.SearchVisible && (m.searching || m.search.Value() != "") {
		lines = append(lines, m.search.View())
	}

	visible := max(height-len(lines), 1)
	offset := max(m.cursor-visible+1, 0)
	for i := offset; i < len(m.rows) && i < offset+visible; i++ {
		line := truncate(rowLabel(m.rows[i]), width)
		switch {
		case i == m.cursor && !m.searching:
			line = selectedStyle.Render(line)
		case m.rows[i].Kind == viewer.NodeHeading:
			line = headingStyle.Render(line)
		case m.rows[i].Kind == viewer.NodeMessage:
			line = dimStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// rowLabel renders a sidebar node as one line, indented two columns per
// depth.
func rowLabel(n *viewer.Node) string {
	indent := strings.Repeat("  ", n.Depth)
	switch n.Kind {
	case viewer.NodeFolder:
		return indent + n.Arrow() + " " + n.Label
	case viewer.NodeFile:
		return indent + "  " + n.Label
	default:
		return n.Label
	}
}

func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

func (m *Model) statusView() string {
	parts := []string{
		m.progress.ViewAs(m.state.Progress),
		fmt.Sprintf("%3.0f%%", m.state.Progress*100),
		m.state.ThemeIcon,
	}
	if m.state.BackToTopVisible {
		parts = append(parts, "↑ g")
	}
	if i, ok := m.visibleBlock(); ok {
		parts = append(parts, "y "+m.app.CopyControls().Label(i))
	}
	if m.state.CanGoBack {
		parts = append(parts, "◀ [")
	}
	if m.state.CanGoForward {
		parts = append(parts, "] ▶")
	}
	if !m.state.Narrow {
		parts = append(parts, dimStyle.Render("b "+m.state.SidebarToggleTitle))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return strings.Join(parts, "  ")
}
