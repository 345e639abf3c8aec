package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceStore(t *testing.T) {
	t.Parallel()

	t.Run("missing key is not found", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewPreferenceStore(setupTestDB(t), "https://example.com/")

		_, err := store.Preference(context.Background(), docview.PrefTheme)

		assert.Equal(t, docview.ENOTFOUND, docview.ErrorCode(err))
	})

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewPreferenceStore(setupTestDB(t), "https://example.com/")
		ctx := context.Background()

		require.NoError(t, store.SetPreference(ctx, docview.PrefTheme, "dark"))
		require.NoError(t, store.SetPreference(ctx, docview.PrefTheme, "light"))

		value, err := store.Preference(ctx, docview.PrefTheme)
		require.NoError(t, err)
		assert.Equal(t, "light", value)
	})

	t.Run("sites are isolated", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		a := sqlite.NewPreferenceStore(db, "/srv/a")
		b := sqlite.NewPreferenceStore(db, "/srv/b")

		require.NoError(t, a.SetPreference(ctx, docview.PrefSidebarCollapsed, "true"))

		_, err := b.Preference(ctx, docview.PrefSidebarCollapsed)
		assert.Equal(t, docview.ENOTFOUND, docview.ErrorCode(err))
	})

	t.Run("rejects empty key", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewPreferenceStore(setupTestDB(t), "site")

		err := store.SetPreference(context.Background(), "", "x")

		assert.Equal(t, docview.EINVALID, docview.ErrorCode(err))
	})
}
