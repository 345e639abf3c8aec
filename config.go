package docview

// Config holds the display options of a documentation site, read from
// config.json. The builder keys (SourceDir, ExcludePatterns, ExcludeFiles)
// are only used when generating a site.
type Config struct {
	SiteTitle       string   `json:"site_title" koanf:"site_title"`
	SidebarTitle    string   `json:"sidebar_title" koanf:"sidebar_title"`
	MaxContentWidth int      `json:"max_content_width" koanf:"max_content_width"`
	EnableBackToTop bool     `json:"enable_back_to_top" koanf:"enable_back_to_top"`
	EnableSearch    bool     `json:"enable_search" koanf:"enable_search"`
	HomePage        string   `json:"home_page" koanf:"home_page"`
	Theme           string   `json:"theme" koanf:"theme"`
	SourceDir       string   `json:"source_dir" koanf:"source_dir"`
	ExcludePatterns []string `json:"exclude_patterns" koanf:"exclude_patterns"`
	ExcludeFiles    []string `json:"exclude_files" koanf:"exclude_files"`
}

// DefaultConfig returns the configuration applied for keys a config file omits.
func DefaultConfig() *Config {
	return &Config{
		SiteTitle:       "文档阅读器",
		SidebarTitle:    "文档目录",
		MaxContentWidth: 900,
		EnableBackToTop: true,
		EnableSearch:    false,
		Theme:           "light",
		SourceDir:       "txt",
	}
}

// FallbackConfig returns the configuration used when config.json cannot be
// fetched or parsed. Search is always shown in that case.
func FallbackConfig() *Config {
	cfg := DefaultConfig()
	cfg.EnableSearch = true
	return cfg
}

// ConfigParser decodes a config.json payload.
type ConfigParser interface {
	// ParseConfig decodes data on top of DefaultConfig.
	// Returns EINVALID if data is not a valid configuration.
	ParseConfig(data []byte) (*Config, error)
}
