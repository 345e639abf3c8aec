package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/clipboard"
	"github.com/fwojciec/docview/fs"
	"github.com/fwojciec/docview/goldmark"
	"github.com/fwojciec/docview/goquery"
	dvhttp "github.com/fwojciec/docview/http"
	"github.com/fwojciec/docview/koanf"
	dvslog "github.com/fwojciec/docview/slog"
	"github.com/fwojciec/docview/viewer"
)

// DefaultRequestRate is the request pacing for remote sites, per second.
const DefaultRequestRate = 20

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Preferences returns the preference store of a site. Commands that
	// don't need persistence leave it nil.
	Preferences func(site string) docview.PreferenceStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable debug logging"`
	Log     string `help:"Log file for the interactive viewer"`

	View   ViewCmd   `cmd:"" help:"Browse a documentation site interactively"`
	Show   ShowCmd   `cmd:"" help:"Print one document to the terminal"`
	Export ExportCmd `cmd:"" help:"Export a document as a standalone HTML page"`
	Search SearchCmd `cmd:"" help:"Search document titles, names and paths"`
	Tree   TreeCmd   `cmd:"" help:"Print the sidebar tree of a site"`
	Build  BuildCmd  `cmd:"" help:"Generate docs/ and index.json from a source tree"`
}

// ViewCmd is the "view" subcommand.
type ViewCmd struct {
	Site string `arg:"" help:"Site URL or directory"`
	Path string `arg:"" optional:"" help:"Document to open instead of the home page"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Site  string `arg:"" help:"Site URL or directory"`
	Path  string `arg:"" optional:"" help:"Document path, defaults to the home page"`
	Width int    `short:"w" default:"80" help:"Word wrap width"`
	HTML  bool   `help:"Print the rendered HTML instead"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Site   string `arg:"" help:"Site URL or directory"`
	Path   string `arg:"" optional:"" help:"Document path, defaults to the home page"`
	Output string `short:"o" help:"Output file, defaults to stdout"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Site  string `arg:"" help:"Site URL or directory"`
	Query string `arg:"" help:"Case-insensitive search text"`
}

// TreeCmd is the "tree" subcommand.
type TreeCmd struct {
	Site string `arg:"" help:"Site URL or directory"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Root   string `arg:"" help:"Project root holding the source directory"`
	Out    string `help:"Output directory, defaults to <root>/reader"`
	Config string `help:"Site config, defaults to <out>/config.json"`
	Jobs   int    `short:"j" default:"8" help:"Concurrent conversions"`
}

// session is a viewer wired to one site.
type session struct {
	app    *viewer.App
	layout *viewer.Layout
}

// openSession wires a viewer for site. A site starting with http:// or
// https:// is fetched remotely, anything else is a local directory.
func (d *Dependencies) openSession(site string) (*session, error) {
	source, key, err := openSource(site)
	if err != nil {
		return nil, err
	}
	logger := d.logger()
	logged := dvslog.NewLoggingSource(source, logger)
	renderer := dvslog.NewLoggingRenderer(goldmark.NewRenderer(), logger)

	scheduler := viewer.SystemScheduler{}
	docs := viewer.NewDocuments(logged, viewer.NewContentRenderer(renderer), viewer.NewCache(), scheduler)
	docs.Logger = logger

	layout := viewer.NewLayout(d.preferences(key))
	app := viewer.NewApp(logged, koanf.NewConfigParser(), docs, layout, scheduler)
	app.Extractor = goquery.NewCodeExtractor()
	app.Clipboard = clipboard.NewClipboard()
	app.Logger = logger

	return &session{app: app, layout: layout}, nil
}

func (d *Dependencies) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (d *Dependencies) preferences(site string) docview.PreferenceStore {
	if d.Preferences == nil {
		return nopPreferences{}
	}
	return d.Preferences(site)
}

// openSource returns the source for site and the key its preferences are
// stored under.
func openSource(site string) (docview.Source, string, error) {
	if strings.HasPrefix(site, "http://") || strings.HasPrefix(site, "https://") {
		src, err := dvhttp.NewSource(site, dvhttp.WithRateLimit(DefaultRequestRate))
		if err != nil {
			return nil, "", err
		}
		return src, strings.TrimSuffix(site, "/"), nil
	}

	abs, err := filepath.Abs(site)
	if err != nil {
		return nil, "", docview.Errorf(docview.EINVALID, "invalid site directory %q: %v", site, err)
	}
	src, err := fs.NewDirSource(abs)
	if err != nil {
		return nil, "", err
	}
	return src, abs, nil
}

// nopPreferences stores nothing; every lookup misses.
type nopPreferences struct{}

func (nopPreferences) Preference(context.Context, string) (string, error) {
	return "", docview.Errorf(docview.ENOTFOUND, "preference not stored")
}

func (nopPreferences) SetPreference(context.Context, string, string) error { return nil }
