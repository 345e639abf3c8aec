package viewer

import (
	"context"
	"strconv"
	"time"

	"github.com/fwojciec/docview"
)

// Theme is the color scheme.
type Theme string

// Theme constants.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a stored or configured value to a theme. Anything other
// than "dark" is light.
func ParseTheme(s string) Theme {
	if s == string(ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Icon returns the theme toggle glyph.
func (t Theme) Icon() string {
	if t == ThemeDark {
		return "☾"
	}
	return "☀"
}

// HighlightStyle returns the syntax highlighting style paired with t.
func (t Theme) HighlightStyle() string {
	if t == ThemeDark {
		return "github-dark"
	}
	return "github"
}

// Layout defaults.
const (
	DefaultNarrowWidth = 768
	MobileCloseDelay   = 50 * time.Millisecond
)

// Sidebar toggle titles.
const (
	TitleExpandSidebar   = "展开侧边栏"
	TitleCollapseSidebar = "收起侧边栏"
)

// Layout holds theme and sidebar state. Theme and sidebar collapse are
// persisted through a PreferenceStore. Layout is not safe for concurrent
// use; App serializes access to it.
type Layout struct {
	// NarrowWidth is the widest viewport treated as narrow.
	NarrowWidth int

	prefs            docview.PreferenceStore
	theme            Theme
	sidebarCollapsed bool
	width            int
	mobileOpen       bool
}

// NewLayout returns a light, expanded layout backed by prefs.
func NewLayout(prefs docview.PreferenceStore) *Layout {
	return &Layout{
		NarrowWidth: DefaultNarrowWidth,
		prefs:       prefs,
		theme:       ThemeLight,
	}
}

// Restore loads persisted state. fallback is used when no theme was saved.
func (l *Layout) Restore(ctx context.Context, fallback Theme) error {
	theme, err := l.prefs.Preference(ctx, docview.PrefTheme)
	switch {
	case err == nil:
		l.theme = ParseTheme(theme)
	case docview.ErrorCode(err) == docview.ENOTFOUND:
		l.theme = fallback
	default:
		return err
	}

	collapsed, err := l.prefs.Preference(ctx, docview.PrefSidebarCollapsed)
	switch {
	case err == nil:
		l.sidebarCollapsed = collapsed == "true"
	case docview.ErrorCode(err) == docview.ENOTFOUND:
	default:
		return err
	}
	return nil
}

// Theme returns the current theme.
func (l *Layout) Theme() Theme { return l.theme }

// SidebarCollapsed reports whether the sidebar is collapsed.
func (l *Layout) SidebarCollapsed() bool { return l.sidebarCollapsed }

// MobileOpen reports whether the mobile sidebar overlay is open.
func (l *Layout) MobileOpen() bool { return l.mobileOpen }

// Width returns the last reported viewport width.
func (l *Layout) Width() int { return l.width }

// ToggleTheme switches the theme and persists it.
func (l *Layout) ToggleTheme(ctx context.Context) error {
	l.theme = l.theme.Toggle()
	return l.prefs.SetPreference(ctx, docview.PrefTheme, string(l.theme))
}

// ToggleSidebar collapses or expands the sidebar and persists the state.
func (l *Layout) ToggleSidebar(ctx context.Context) error {
	l.sidebarCollapsed = !l.sidebarCollapsed
	return l.saveSidebar(ctx)
}

// ExpandSidebar expands the sidebar and persists the state.
func (l *Layout) ExpandSidebar(ctx context.Context) error {
	l.sidebarCollapsed = false
	return l.saveSidebar(ctx)
}

func (l *Layout) saveSidebar(ctx context.Context) error {
	return l.prefs.SetPreference(ctx, docview.PrefSidebarCollapsed, strconv.FormatBool(l.sidebarCollapsed))
}

// SidebarToggleTitle returns the tooltip of the sidebar toggle.
func (l *Layout) SidebarToggleTitle() string {
	if l.sidebarCollapsed {
		return TitleExpandSidebar
	}
	return TitleCollapseSidebar
}

// Resize records the viewport width. Widening past NarrowWidth closes the
// mobile overlay.
func (l *Layout) Resize(width int) {
	l.width = width
	if !l.Narrow() {
		l.mobileOpen = false
	}
}

// Narrow reports whether the viewport is at most NarrowWidth wide. An
// unreported width is not narrow.
func (l *Layout) Narrow() bool {
	return l.width > 0 && l.width <= l.NarrowWidth
}

// ToggleMobileSidebar opens or closes the overlay on narrow viewports.
func (l *Layout) ToggleMobileSidebar() {
	if !l.Narrow() {
		return
	}
	l.mobileOpen = !l.mobileOpen
}

// CloseMobileSidebar closes the overlay.
func (l *Layout) CloseMobileSidebar() {
	l.mobileOpen = false
}
