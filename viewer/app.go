package viewer

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/docview"
)

// App defaults.
const (
	DefaultBackToTopThreshold = 200
	MenuHideOffset            = 100
	MenuRevealDelay           = time.Second
)

// State is a snapshot of everything a front end displays.
type State struct {
	SiteTitle       string
	SidebarTitle    string
	MaxContentWidth int
	HomePage        string

	SearchVisible bool
	Query         string
	Sidebar       *Sidebar

	Path string
	HTML string
	// ScrollResets increments whenever the content should scroll to top.
	ScrollResets int

	Progress         float64
	BackToTopVisible bool
	MenuHidden       bool

	Theme              Theme
	ThemeIcon          string
	HighlightStyle     string
	SidebarCollapsed   bool
	SidebarToggleTitle string
	MobileOpen         bool
	Narrow             bool

	CanGoBack    bool
	CanGoForward bool
}

// App is the viewer controller. It owns all session state and is driven by
// front-end events. Methods are safe for concurrent use since timers fire on
// their own goroutines.
type App struct {
	// Extractor finds code blocks for copy controls. Optional.
	Extractor docview.CodeExtractor
	// Clipboard receives copied code blocks. Optional.
	Clipboard docview.Clipboard
	Logger    *slog.Logger
	Now       func() time.Time
	// OnChange is called after state changes, outside the lock.
	OnChange func()

	BackToTopThreshold int

	source    docview.Source
	parser    docview.ConfigParser
	documents *Documents
	layout    *Layout
	scheduler docview.Scheduler
	search    *Debouncer
	reveal    *Debouncer

	mu             sync.Mutex
	config         *docview.Config
	flat           []*docview.Entry
	sidebar        *Sidebar
	query          string
	path           string
	content        string
	scrollResets   int
	offset         int
	progress       float64
	backToTop      bool
	menuHidden     bool
	location       Location
	copyControls   *CopyControls
	mobileCloser   docview.Timer
	backToTopShown bool
}

// NewApp creates an App.
func NewApp(source docview.Source, parser docview.ConfigParser, documents *Documents, layout *Layout, scheduler docview.Scheduler) *App {
	return &App{
		Now:                time.Now,
		BackToTopThreshold: DefaultBackToTopThreshold,
		source:             source,
		parser:             parser,
		documents:          documents,
		layout:             layout,
		scheduler:          scheduler,
		search:             &Debouncer{Delay: DefaultSearchDelay, Scheduler: scheduler},
		reveal:             &Debouncer{Delay: MenuRevealDelay, Scheduler: scheduler},
		config:             docview.DefaultConfig(),
		sidebar:            &Sidebar{},
		copyControls:       NewCopyControls(nil, nil, scheduler),
	}
}

// Start loads config, preferences and the index, then navigates to fragment
// or the configured home page. Only a failed initial document load is
// returned, and it is also shown inline.
func (a *App) Start(ctx context.Context, fragment string) error {
	a.LoadConfig(ctx)

	a.mu.Lock()
	fallback := ParseTheme(a.config.Theme)
	err := a.layout.Restore(ctx, fallback)
	a.mu.Unlock()
	if err != nil {
		a.logger().Warn("restore preferences", "error", err)
	}

	a.LoadSidebar(ctx)
	return a.HandleFragment(ctx, fragment)
}

// LoadConfig fetches config.json with a cache-busting query. If the fetch or
// parse fails the fallback config is used and search is shown.
func (a *App) LoadConfig(ctx context.Context) {
	name := fmt.Sprintf("%s?t=%d", docview.ConfigFile, a.Now().UnixMilli())
	cfg, err := a.fetchConfig(ctx, name)
	if err != nil {
		a.logger().Info("using default config", "error", err)
		cfg = docview.FallbackConfig()
	}

	a.mu.Lock()
	a.config = cfg
	a.backToTopShown = cfg.EnableBackToTop
	a.backToTop = a.backToTopShown && a.offset > a.BackToTopThreshold
	a.mu.Unlock()
	a.notify()
}

func (a *App) fetchConfig(ctx context.Context, name string) (*docview.Config, error) {
	data, err := a.source.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	return a.parser.ParseConfig([]byte(data))
}

// LoadSidebar fetches index.json and renders the tree. When the index is
// unavailable the sidebar shows a placeholder and search matches nothing.
func (a *App) LoadSidebar(ctx context.Context) {
	entries, err := a.fetchIndex(ctx)

	a.mu.Lock()
	if err != nil {
		a.logger().Warn("index unavailable", "error", err)
		a.sidebar = MessageSidebar(MessageUnavailable)
	} else {
		a.flat = docview.Flatten(entries)
		a.sidebar = BuildSidebar(entries)
	}
	a.mu.Unlock()
	a.notify()
}

func (a *App) fetchIndex(ctx context.Context) ([]*docview.Entry, error) {
	data, err := a.source.Fetch(ctx, docview.IndexFile)
	if err != nil {
		return nil, err
	}
	return docview.ParseIndex([]byte(data))
}

// SearchInput records query and runs Search once input has been quiet for
// DefaultSearchDelay.
func (a *App) SearchInput(ctx context.Context, query string) {
	a.mu.Lock()
	a.query = query
	a.mu.Unlock()
	a.notify()

	a.search.Trigger(func() {
		a.Search(ctx, query)
	})
}

// Search replaces the sidebar with matches for query. A blank query
// re-fetches the index and restores the full tree.
func (a *App) Search(ctx context.Context, query string) {
	if IsBlank(query) {
		entries, err := a.fetchIndex(ctx)
		if err != nil {
			a.logger().Warn("restore index failed", "error", err)
			return
		}
		a.mu.Lock()
		a.flat = docview.Flatten(entries)
		a.sidebar = BuildSidebar(entries)
		a.mu.Unlock()
		a.notify()
		return
	}

	a.mu.Lock()
	results := Filter(a.flat, query)
	a.sidebar = SearchResults(results)
	a.mu.Unlock()
	a.logger().Debug("search", "query", query, "results", len(results))
	a.notify()
}

// HandleFragment navigates to fragment, or to the configured home page when
// fragment is empty. A fragment naming the displayed document is ignored.
func (a *App) HandleFragment(ctx context.Context, fragment string) error {
	a.mu.Lock()
	target := fragment
	if target == "" {
		target = a.config.HomePage
	}
	displayed := target != "" && target == a.path && target == a.location.Current()
	a.mu.Unlock()

	if target == "" || displayed {
		return nil
	}
	return a.Open(ctx, target)
}

// Open loads and displays the document at path. A failure is displayed
// inline in place of the content and returned.
func (a *App) Open(ctx context.Context, path string) error {
	doc, err := a.documents.Load(ctx, path)
	if err != nil {
		a.mu.Lock()
		a.content = "<p>" + html.EscapeString(docview.ErrorMessage(err)) + "</p>"
		a.copyControls = NewCopyControls(nil, a.Clipboard, a.scheduler)
		a.mu.Unlock()
		a.notify()
		return err
	}
	a.apply(doc)
	return nil
}

func (a *App) apply(doc *Document) {
	blocks := a.codeBlocks(doc.HTML)

	a.mu.Lock()
	a.path = doc.Path
	a.content = doc.HTML
	a.location.Push(doc.Path)
	a.resetScroll()
	a.copyControls = NewCopyControls(blocks, a.Clipboard, a.scheduler)
	if a.layout.Narrow() {
		if a.mobileCloser != nil {
			a.mobileCloser.Stop()
		}
		a.mobileCloser = a.scheduler.AfterFunc(MobileCloseDelay, func() {
			a.mu.Lock()
			a.layout.CloseMobileSidebar()
			a.mu.Unlock()
			a.notify()
		})
	}
	a.mu.Unlock()
	a.notify()
}

func (a *App) codeBlocks(rendered string) []docview.CodeBlock {
	if a.Extractor == nil {
		return nil
	}
	blocks, err := a.Extractor.CodeBlocks(rendered)
	if err != nil {
		a.logger().Warn("extract code blocks", "error", err)
		return nil
	}
	return blocks
}

// resetScroll must be called with a.mu held.
func (a *App) resetScroll() {
	a.scrollResets++
	a.offset = 0
	a.progress = 0
	a.backToTop = false
}

// Back navigates to the previously visited document.
func (a *App) Back(ctx context.Context) error {
	a.mu.Lock()
	path, ok := a.location.Back()
	a.mu.Unlock()
	if !ok {
		return nil
	}
	return a.Open(ctx, path)
}

// Forward navigates forward after Back.
func (a *App) Forward(ctx context.Context) error {
	a.mu.Lock()
	path, ok := a.location.Forward()
	a.mu.Unlock()
	if !ok {
		return nil
	}
	return a.Open(ctx, path)
}

// Scroll reports the content scroll position. offset is the top of the
// viewport, total the content height and visible the viewport height.
func (a *App) Scroll(offset, total, visible int) {
	a.mu.Lock()
	narrow := a.layout.Narrow()
	if narrow {
		a.menuHidden = offset > a.offset && offset > MenuHideOffset
	}
	a.offset = offset
	a.progress = progress(offset, total, visible)
	a.backToTop = a.backToTopShown && offset > a.BackToTopThreshold
	attached := a.copyControls.Observe(offset, visible)
	a.mu.Unlock()

	if len(attached) > 0 {
		a.logger().Debug("copy controls attached", "blocks", attached)
	}
	if narrow {
		a.reveal.Trigger(func() {
			a.mu.Lock()
			a.menuHidden = false
			a.mu.Unlock()
			a.notify()
		})
	}
	a.notify()
}

func progress(offset, total, visible int) float64 {
	scrollable := total - visible
	if scrollable <= 0 {
		return 0
	}
	p := float64(offset) / float64(scrollable)
	return min(max(p, 0), 1)
}

// BackToTop scrolls the content to the top.
func (a *App) BackToTop() {
	a.mu.Lock()
	a.resetScroll()
	a.mu.Unlock()
	a.notify()
}

// SetCodeSpans records where each code block of the current document is
// laid out, in the coordinates Scroll uses.
func (a *App) SetCodeSpans(spans []Span) {
	a.mu.Lock()
	a.copyControls.SetSpans(spans)
	a.mu.Unlock()
}

// CopyControls returns the copy controls of the current document.
func (a *App) CopyControls() *CopyControls {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.copyControls
}

// Copy copies code block i of the current document.
func (a *App) Copy(i int) error {
	controls := a.CopyControls()
	if err := controls.Copy(i); err != nil {
		return err
	}
	a.notify()
	return nil
}

// ToggleFolder expands or collapses a sidebar folder.
func (a *App) ToggleFolder(id string) bool {
	a.mu.Lock()
	ok := a.sidebar.Toggle(id)
	a.mu.Unlock()
	if ok {
		a.notify()
	}
	return ok
}

// Prefetch starts the hover prefetch for path.
func (a *App) Prefetch(ctx context.Context, path string) {
	a.documents.Prefetch(ctx, path)
}

// CancelPrefetch cancels a pending hover prefetch for path.
func (a *App) CancelPrefetch(path string) {
	a.documents.CancelPrefetch(path)
}

// ToggleTheme switches between light and dark.
func (a *App) ToggleTheme(ctx context.Context) {
	a.withLayout(func(l *Layout) error { return l.ToggleTheme(ctx) })
}

// ToggleSidebar collapses or expands the sidebar.
func (a *App) ToggleSidebar(ctx context.Context) {
	a.withLayout(func(l *Layout) error { return l.ToggleSidebar(ctx) })
}

// ExpandSidebar expands a collapsed sidebar.
func (a *App) ExpandSidebar(ctx context.Context) {
	a.withLayout(func(l *Layout) error { return l.ExpandSidebar(ctx) })
}

// ToggleMobileSidebar opens or closes the narrow viewport overlay.
func (a *App) ToggleMobileSidebar() {
	a.withLayout(func(l *Layout) error { l.ToggleMobileSidebar(); return nil })
}

// CloseMobileSidebar closes the narrow viewport overlay.
func (a *App) CloseMobileSidebar() {
	a.withLayout(func(l *Layout) error { l.CloseMobileSidebar(); return nil })
}

// Resize reports the viewport width.
func (a *App) Resize(width int) {
	a.withLayout(func(l *Layout) error { l.Resize(width); return nil })
}

func (a *App) withLayout(f func(*Layout) error) {
	a.mu.Lock()
	err := f(a.layout)
	a.mu.Unlock()
	if err != nil {
		a.logger().Warn("save preference", "error", err)
	}
	a.notify()
}

// State returns a snapshot of the current state.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	theme := a.layout.Theme()
	return State{
		SiteTitle:          a.config.SiteTitle,
		SidebarTitle:       a.config.SidebarTitle,
		MaxContentWidth:    a.config.MaxContentWidth,
		HomePage:           a.config.HomePage,
		SearchVisible:      a.config.EnableSearch,
		Query:              a.query,
		Sidebar:            a.sidebar.Clone(),
		Path:               a.path,
		HTML:               a.content,
		ScrollResets:       a.scrollResets,
		Progress:           a.progress,
		BackToTopVisible:   a.backToTop,
		MenuHidden:         a.menuHidden,
		Theme:              theme,
		ThemeIcon:          theme.Icon(),
		HighlightStyle:     theme.HighlightStyle(),
		SidebarCollapsed:   a.layout.SidebarCollapsed(),
		SidebarToggleTitle: a.layout.SidebarToggleTitle(),
		MobileOpen:         a.layout.MobileOpen(),
		Narrow:             a.layout.Narrow(),
		CanGoBack:          a.location.CanGoBack(),
		CanGoForward:       a.location.CanGoForward(),
	}
}

// Entries returns the flattened index.
func (a *App) Entries() []*docview.Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flat
}

func (a *App) notify() {
	if a.OnChange != nil {
		a.OnChange()
	}
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return discard
}
