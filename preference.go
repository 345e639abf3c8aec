package docview

import "context"

// Preference keys persisted between sessions.
const (
	PrefTheme            = "theme"
	PrefSidebarCollapsed = "sidebarCollapsed"
)

// PreferenceStore persists small string preferences.
type PreferenceStore interface {
	// Preference returns the stored value for key.
	// Returns ENOTFOUND if nothing is stored under key.
	Preference(ctx context.Context, key string) (string, error)

	// SetPreference stores value under key, replacing any previous value.
	SetPreference(ctx context.Context, key, value string) error
}
