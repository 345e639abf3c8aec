package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/docview"
)

var _ docview.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceStore is a mock implementation of docview.PreferenceStore.
type PreferenceStore struct {
	PreferenceFn    func(ctx context.Context, key string) (string, error)
	SetPreferenceFn func(ctx context.Context, key, value string) error
}

func (s *PreferenceStore) Preference(ctx context.Context, key string) (string, error) {
	return s.PreferenceFn(ctx, key)
}

func (s *PreferenceStore) SetPreference(ctx context.Context, key, value string) error {
	return s.SetPreferenceFn(ctx, key, value)
}

// NewMemoryPreferences returns a PreferenceStore backed by a map.
// The returned function snapshots the stored values for assertions.
func NewMemoryPreferences(initial map[string]string) (*PreferenceStore, func() map[string]string) {
	var mu sync.Mutex
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	store := &PreferenceStore{
		PreferenceFn: func(_ context.Context, key string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			v, ok := values[key]
			if !ok {
				return "", docview.Errorf(docview.ENOTFOUND, "preference %q not set", key)
			}
			return v, nil
		},
		SetPreferenceFn: func(_ context.Context, key, value string) error {
			mu.Lock()
			defer mu.Unlock()
			values[key] = value
			return nil
		},
	}
	snapshot := func() map[string]string {
		mu.Lock()
		defer mu.Unlock()
		out := make(map[string]string, len(values))
		for k, v := range values {
			out[k] = v
		}
		return out
	}
	return store, snapshot
}
