package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/docview/cmd/docview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints help and fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		m := &main.Main{DBPath: filepath.Join(t.TempDir(), "state.db")}

		err := m.Run(context.Background(), nil, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "Usage:")
	})

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		m := &main.Main{DBPath: filepath.Join(t.TempDir(), "state.db")}

		err := m.Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		for _, cmd := range []string{"view", "show", "export", "search", "tree", "build"} {
			assert.Contains(t, stdout.String(), cmd)
		}
	})

	t.Run("unknown command fails", func(t *testing.T) {
		t.Parallel()

		m := &main.Main{DBPath: filepath.Join(t.TempDir(), "state.db")}

		err := m.Run(context.Background(), []string{"crawl"}, &bytes.Buffer{}, &bytes.Buffer{})

		assert.Error(t, err)
	})

	t.Run("show opens the preferences database", func(t *testing.T) {
		t.Parallel()

		site := writeSite(t, "")
		stdout := &bytes.Buffer{}
		m := &main.Main{DBPath: filepath.Join(t.TempDir(), "state.db")}

		err := m.Run(context.Background(), []string{"show", site, "guide/usage.html", "--html"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "<h1>Usage</h1>")
		assert.FileExists(t, m.DBPath)
	})

	t.Run("verbose logs fetches to stderr", func(t *testing.T) {
		t.Parallel()

		site := writeSite(t, "")
		stderr := &bytes.Buffer{}
		m := &main.Main{DBPath: filepath.Join(t.TempDir(), "state.db")}

		err := m.Run(context.Background(), []string{"--verbose", "tree", site}, &bytes.Buffer{}, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "msg=fetch")
		assert.Contains(t, stderr.String(), "name=index.json")
		assert.Contains(t, stderr.String(), "session=")
	})
}
