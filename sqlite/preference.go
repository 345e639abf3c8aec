package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/docview"
)

// Compile-time interface verification.
var _ docview.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceStore implements docview.PreferenceStore using SQLite.
// Preferences are scoped to one site so each site keeps its own theme.
type PreferenceStore struct {
	db   *DB
	site string
	now  func() time.Time
}

// NewPreferenceStore creates a PreferenceStore for site.
func NewPreferenceStore(db *DB, site string) *PreferenceStore {
	return &PreferenceStore{db: db, site: site, now: time.Now}
}

// Preference returns the value stored under key.
func (s *PreferenceStore) Preference(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM preferences WHERE site = ? AND key = ?
	`, s.site, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", docview.Errorf(docview.ENOTFOUND, "preference %q not set", key)
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetPreference stores value under key.
func (s *PreferenceStore) SetPreference(ctx context.Context, key, value string) error {
	if key == "" {
		return docview.Errorf(docview.EINVALID, "preference key required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (site, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (site, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, s.site, key, value, s.now().UTC().Format(time.RFC3339))
	return err
}
