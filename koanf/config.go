// Package koanf decodes site configuration with koanf.
package koanf

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/docview"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the prefix of environment overrides, as in
// DOCVIEW_SITE_TITLE.
const DefaultEnvPrefix = "DOCVIEW_"

// Ensure ConfigParser implements docview.ConfigParser at compile time.
var _ docview.ConfigParser = (*ConfigParser)(nil)

// ConfigParser decodes config.json on top of docview.DefaultConfig and
// overlays environment overrides.
type ConfigParser struct {
	envPrefix string
}

// Option configures a ConfigParser.
type Option func(*ConfigParser)

// WithEnvPrefix sets the environment override prefix. An empty prefix
// disables overrides.
func WithEnvPrefix(prefix string) Option {
	return func(p *ConfigParser) {
		p.envPrefix = prefix
	}
}

// NewConfigParser creates a ConfigParser.
func NewConfigParser(opts ...Option) *ConfigParser {
	p := &ConfigParser{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseConfig decodes data. Returns EINVALID if data is not a JSON object.
func (p *ConfigParser) ParseConfig(data []byte) (*docview.Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), json.Parser()); err != nil {
		return nil, docview.Errorf(docview.EINVALID, "invalid config: %v", err)
	}
	return p.unmarshal(k)
}

// LoadFile reads the config file at path. A missing file yields the
// defaults with environment overrides applied.
func (p *ConfigParser) LoadFile(path string) (*docview.Config, error) {
	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, docview.Errorf(docview.EINVALID, "reading config %s: %v", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	return p.unmarshal(k)
}

func (p *ConfigParser) unmarshal(k *koanf.Koanf) (*docview.Config, error) {
	if p.envPrefix != "" {
		prefix := p.envPrefix
		if err := k.Load(env.Provider(prefix, ".", func(s string) string {
			return strings.ToLower(strings.TrimPrefix(s, prefix))
		}), nil); err != nil {
			return nil, fmt.Errorf("loading env overrides: %w", err)
		}
	}

	cfg := docview.DefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, docview.Errorf(docview.EINVALID, "invalid config: %v", err)
	}
	return cfg, nil
}
