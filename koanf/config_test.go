package koanf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/koanf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigParser_ParseConfig(t *testing.T) {
	t.Parallel()

	t.Run("applies recognized keys", func(t *testing.T) {
		t.Parallel()

		p := koanf.NewConfigParser(koanf.WithEnvPrefix(""))
		cfg, err := p.ParseConfig([]byte(`{
			"site_title": "Handbook",
			"sidebar_title": "Contents",
			"max_content_width": 1200,
			"enable_back_to_top": false,
			"enable_search": true,
			"home_page": "guide/intro.md",
			"theme": "dark",
			"source_dir": "notes",
			"exclude_patterns": ["drafts/**"],
			"exclude_files": ["secret.md"]
		}`))

		require.NoError(t, err)
		assert.Equal(t, &docview.Config{
			SiteTitle:       "Handbook",
			SidebarTitle:    "Contents",
			MaxContentWidth: 1200,
			EnableBackToTop: false,
			EnableSearch:    true,
			HomePage:        "guide/intro.md",
			Theme:           "dark",
			SourceDir:       "notes",
			ExcludePatterns: []string{"drafts/**"},
			ExcludeFiles:    []string{"secret.md"},
		}, cfg)
	})

	t.Run("absent keys keep defaults", func(t *testing.T) {
		t.Parallel()

		p := koanf.NewConfigParser(koanf.WithEnvPrefix(""))
		cfg, err := p.ParseConfig([]byte(`{"site_title": "Handbook"}`))

		require.NoError(t, err)
		assert.Equal(t, "Handbook", cfg.SiteTitle)
		assert.False(t, cfg.EnableSearch)
		assert.True(t, cfg.EnableBackToTop)
		assert.Equal(t, 900, cfg.MaxContentWidth)
		assert.Equal(t, "文档目录", cfg.SidebarTitle)
	})

	t.Run("malformed json is invalid", func(t *testing.T) {
		t.Parallel()

		p := koanf.NewConfigParser(koanf.WithEnvPrefix(""))
		_, err := p.ParseConfig([]byte(`{"site_title": `))

		assert.Equal(t, docview.EINVALID, docview.ErrorCode(err))
	})
}

func TestConfigParser_EnvOverrides(t *testing.T) {
	t.Setenv("DOCVIEWTEST_SITE_TITLE", "From Env")
	t.Setenv("DOCVIEWTEST_ENABLE_SEARCH", "true")

	p := koanf.NewConfigParser(koanf.WithEnvPrefix("DOCVIEWTEST_"))
	cfg, err := p.ParseConfig([]byte(`{"site_title": "From File"}`))

	require.NoError(t, err)
	assert.Equal(t, "From Env", cfg.SiteTitle)
	assert.True(t, cfg.EnableSearch)
}

func TestConfigParser_LoadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"source_dir": "notes"}`), 0644))

		cfg, err := koanf.NewConfigParser(koanf.WithEnvPrefix("")).LoadFile(path)

		require.NoError(t, err)
		assert.Equal(t, "notes", cfg.SourceDir)
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := koanf.NewConfigParser(koanf.WithEnvPrefix("")).LoadFile(filepath.Join(t.TempDir(), "config.json"))

		require.NoError(t, err)
		assert.Equal(t, docview.DefaultConfig(), cfg)
	})
}
