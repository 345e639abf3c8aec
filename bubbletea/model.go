// Package bubbletea implements the interactive terminal viewer.
package bubbletea

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/viewer"
)

// Terminal layout constants.
const (
	// SidebarWidth is the sidebar column count, excluding its border.
	SidebarWidth = 32
	// NarrowColumns is the widest terminal that gets the overlay sidebar.
	NarrowColumns = 80
	// BackToTopLines is the scroll offset, in lines, past which the
	// back-to-top hint appears.
	BackToTopLines = 20
	// ColumnPixels converts max_content_width to columns.
	ColumnPixels = 8
)

// MessageNoCode is shown when copy is requested with no code block in view.
const MessageNoCode = "当前没有代码块"

// Painter renders document HTML as styled terminal text.
type Painter interface {
	Paint(html, style string, width int) (string, error)
}

// ChangedMsg reports that viewer state changed outside the event loop.
type ChangedMsg struct{}

type startedMsg struct{ err error }

type openedMsg struct{ err error }

type paintKey struct {
	html  string
	theme viewer.Theme
	width int
}

// Model is the bubbletea model of the viewer. All state lives in the
// viewer.App; the model only keeps what the terminal layout needs.
type Model struct {
	Logger *slog.Logger

	ctx      context.Context
	app      *viewer.App
	painter  Painter
	fragment string

	state     viewer.State
	rows      []*viewer.Node
	cursor    int
	hovered   string
	searching bool
	status    string

	search   textinput.Model
	content  viewport.Model
	progress progress.Model

	width   int
	height  int
	painted paintKey
	resets  int
	spans   []viewer.Span
}

// NewModel creates a model driving app. fragment is the document opened at
// start, or empty for the configured home page.
func NewModel(ctx context.Context, app *viewer.App, painter Painter, fragment string) *Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "搜索文档"

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 20

	m := &Model{
		ctx:      ctx,
		app:      app,
		painter:  painter,
		fragment: fragment,
		search:   search,
		content:  viewport.New(0, 0),
		progress: bar,
	}
	m.state = app.State()
	m.rows = m.state.Sidebar.Rows()
	m.resets = m.state.ScrollResets
	return m
}

// Init starts the viewer.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		return startedMsg{err: m.app.Start(m.ctx, m.fragment)}
	}
}

// Update handles terminal and viewer events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.app.Resize(msg.Width)
	case ChangedMsg:
	case startedMsg:
		m.setStatus(msg.err)
	case openedMsg:
		m.setStatus(msg.err)
	case tea.KeyMsg:
		if m.searching {
			cmd = m.updateSearch(msg)
		} else {
			cmd = m.handleKey(msg)
		}
	}
	m.refresh()
	return m, cmd
}

func (m *Model) setStatus(err error) {
	if err != nil {
		m.status = docview.ErrorMessage(err)
		return
	}
	m.status = ""
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		return m.activate()
	case "/":
		if m.state.SearchVisible {
			m.searching = true
			return m.search.Focus()
		}
	case "t":
		m.app.ToggleTheme(m.ctx)
	case "b":
		m.app.ToggleSidebar(m.ctx)
	case "m":
		m.app.ToggleMobileSidebar()
	case "esc":
		m.app.CloseMobileSidebar()
	case "g", "home":
		m.app.BackToTop()
	case "y":
		m.copy()
	case "backspace", "[":
		return m.navigate(m.app.Back)
	case "]":
		return m.navigate(m.app.Forward)
	case "pgdown", " ":
		m.content.ViewDown()
		m.reportScroll()
	case "pgup":
		m.content.ViewUp()
		m.reportScroll()
	case "ctrl+d":
		m.content.HalfViewDown()
		m.reportScroll()
	case "ctrl+u":
		m.content.HalfViewUp()
		m.reportScroll()
	case "J":
		m.content.LineDown(1)
		m.reportScroll()
	case "K":
		m.content.LineUp(1)
		m.reportScroll()
	case "G", "end":
		m.content.GotoBottom()
		m.reportScroll()
	}
	return nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.app.SearchInput(m.ctx, "")
		}
		return nil
	case "enter":
		m.searching = false
		m.search.Blur()
		m.cursor = 0
		return nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		m.app.SearchInput(m.ctx, v)
	}
	return cmd
}

// move shifts the sidebar cursor. Resting on a file link starts its hover
// prefetch and leaving it cancels a prefetch that has not fired yet.
func (m *Model) move(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.rows)-1)
	m.hover(m.rows[m.cursor])
}

func (m *Model) hover(n *viewer.Node) {
	path := ""
	if n.Kind == viewer.NodeFile {
		path = n.Path
	}
	if path == m.hovered {
		return
	}
	if m.hovered != "" {
		m.app.CancelPrefetch(m.hovered)
	}
	m.hovered = path
	if path != "" {
		m.app.Prefetch(m.ctx, path)
	}
}

func (m *Model) activate() tea.Cmd {
	if len(m.rows) == 0 {
		return nil
	}
	n := m.rows[m.cursor]
	switch n.Kind {
	case viewer.NodeFolder:
		m.app.ToggleFolder(n.ID)
	case viewer.NodeFile:
		path := n.Path
		return func() tea.Msg {
			return openedMsg{err: m.app.Open(m.ctx, path)}
		}
	}
	return nil
}

func (m *Model) navigate(f func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{err: f(m.ctx)}
	}
}

// copy copies the first attached code block in view.
func (m *Model) copy() {
	i, ok := m.visibleBlock()
	if !ok {
		m.status = MessageNoCode
		return
	}
	if err := m.app.Copy(i); err != nil {
		m.status = docview.ErrorMessage(err)
		return
	}
	m.status = ""
}

func (m *Model) visibleBlock() (int, bool) {
	controls := m.app.CopyControls()
	for i := range controls.Len() {
		if i >= len(m.spans) || !controls.Attached(i) {
			continue
		}
		if controls.Observer.Intersects(m.spans[i], m.content.YOffset, m.content.Height) {
			return i, true
		}
	}
	return 0, false
}

func (m *Model) reportScroll() {
	m.app.Scroll(m.content.YOffset, m.content.TotalLineCount(), m.content.Height)
}

// refresh pulls a fresh snapshot from the app and repaints the document
// when its content, theme or width changed.
func (m *Model) refresh() {
	m.state = m.app.State()
	m.rows = m.state.Sidebar.Rows()
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}

	m.content.Width = m.contentWidth()
	m.content.Height = m.contentHeight()

	key := paintKey{html: m.state.HTML, theme: m.state.Theme, width: m.wrapWidth()}
	if key != m.painted && m.width > 0 {
		m.painted = key
		m.paint()
	}
	if m.state.ScrollResets != m.resets {
		m.resets = m.state.ScrollResets
		m.content.GotoTop()
	}
}

func (m *Model) paint() {
	out, err := m.painter.Paint(m.painted.html, string(m.painted.theme), m.painted.width)
	if err != nil {
		m.logger().Warn("paint", "path", m.state.Path, "error", err)
		out = m.painted.html
	}
	m.content.SetContent(out)

	controls := m.app.CopyControls()
	blocks := make([]docview.CodeBlock, controls.Len())
	for i := range blocks {
		blocks[i] = controls.Block(i)
	}
	m.spans = CodeSpans(strings.Split(out, "\n"), blocks)
	m.app.SetCodeSpans(m.spans)
	m.reportScroll()
	m.state = m.app.State()
}

func (m *Model) contentWidth() int {
	if m.state.Narrow || m.state.SidebarCollapsed {
		return m.width
	}
	return max(m.width-SidebarWidth-1, 0)
}

// contentHeight leaves room for the header and status lines.
func (m *Model) contentHeight() int {
	return max(m.height-2, 0)
}

func (m *Model) wrapWidth() int {
	w := m.contentWidth() - 2
	if m.state.MaxContentWidth > 0 {
		w = min(w, m.state.MaxContentWidth/ColumnPixels)
	}
	return w
}

func (m *Model) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return discard
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))
