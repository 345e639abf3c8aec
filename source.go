package docview

import "context"

// Well-known names inside a documentation site.
const (
	ConfigFile = "config.json"
	IndexFile  = "index.json"
	DocsPrefix = "docs/"
)

// DocumentName returns the site-relative name of the document at path.
func DocumentName(path string) string {
	return DocsPrefix + path
}

// Source retrieves files from a documentation site.
// Implementations exist for HTTP hosts and local directories.
type Source interface {
	// Fetch returns the contents of a site-relative name such as
	// "index.json" or "docs/guide/intro.md". A query string on name is
	// forwarded where it is meaningful and ignored otherwise.
	// Returns ENOTFOUND if the file does not exist.
	Fetch(ctx context.Context, name string) (string, error)
}
