package mock

import "github.com/fwojciec/docview"

var _ docview.ConfigParser = (*ConfigParser)(nil)

// ConfigParser is a mock implementation of docview.ConfigParser.
type ConfigParser struct {
	ParseConfigFn func(data []byte) (*docview.Config, error)
}

func (p *ConfigParser) ParseConfig(data []byte) (*docview.Config, error) {
	return p.ParseConfigFn(data)
}
