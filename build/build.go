// Package build generates a documentation site from a source tree: the
// docs/ folder of converted documents and the index.json that lists them.
package build

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/fs"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of documents converted in parallel.
const DefaultConcurrency = 8

// SkipPrefixes are name prefixes of files and folders never scanned.
var SkipPrefixes = []string{".git", "__pycache__", "node_modules", ".github", "reader", "scripts"}

// Document extensions. Markdown is converted to HTML, text is copied.
const (
	ExtMarkdown = ".md"
	ExtText     = ".txt"
	ExtHTML     = ".html"
)

// Builder performs full rebuilds of a site.
type Builder struct {
	// Concurrency defaults to DefaultConcurrency when zero.
	Concurrency int
	// Progress receives a progress bar. Nil disables it.
	Progress io.Writer
	Logger   *slog.Logger

	renderer docview.Renderer
}

// NewBuilder creates a Builder converting markdown with renderer.
func NewBuilder(renderer docview.Renderer) *Builder {
	return &Builder{renderer: renderer}
}

// Result summarizes a build.
type Result struct {
	Index     []*docview.Entry
	Converted int
	Copied    int
}

// job is one source document and its output path relative to docs/.
type job struct {
	src string
	out string
}

// Build scans filepath.Join(root, cfg.SourceDir) and writes outDir/docs and
// outDir/index.json. Outputs of a previous build are replaced as a whole, so
// documents whose source was removed disappear. On failure the previous
// output is left untouched.
func (b *Builder) Build(ctx context.Context, root, outDir string, cfg *docview.Config) (*Result, error) {
	srcDir := filepath.Join(root, cfg.SourceDir)
	info, err := os.Stat(srcDir)
	if err != nil || !info.IsDir() {
		return nil, docview.Errorf(docview.ENOTFOUND, "源目录不存在 - /%s/", cfg.SourceDir)
	}

	s := &scanner{root: srcDir, cfg: cfg, logger: b.logger()}
	children, err := s.scan(srcDir)
	if err != nil {
		return nil, err
	}

	result, err := b.convert(ctx, outDir, s.jobs)
	if err != nil {
		return nil, err
	}

	result.Index = []*docview.Entry{{
		Type:     docview.EntryFolder,
		Name:     cfg.SourceDir,
		Children: children,
	}}
	data, err := docview.MarshalIndex(result.Index)
	if err != nil {
		return nil, err
	}
	if err := fs.WriteFileAtomic(filepath.Join(outDir, docview.IndexFile), data); err != nil {
		return nil, fmt.Errorf("write index: %w", err)
	}

	b.logger().Info("build complete",
		"source", cfg.SourceDir,
		"converted", result.Converted,
		"copied", result.Copied,
	)
	return result, nil
}

func (b *Builder) convert(ctx context.Context, outDir string, jobs []job) (*Result, error) {
	store := fs.NewStore(outDir, strings.TrimSuffix(docview.DocsPrefix, "/"))
	bar := b.progressBar(len(jobs))

	results := make([]bool, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency())
	for i, j := range jobs {
		g.Go(func() error {
			converted, err := b.convertOne(gctx, store, j)
			if err != nil {
				return err
			}
			results[i] = converted
			_ = bar.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		_ = store.Abort()
		return nil, err
	}
	_ = bar.Finish()

	if err := store.Commit(); err != nil {
		return nil, fmt.Errorf("commit docs: %w", err)
	}

	result := &Result{}
	for _, converted := range results {
		if converted {
			result.Converted++
		} else {
			result.Copied++
		}
	}
	return result, nil
}

func (b *Builder) convertOne(ctx context.Context, store *fs.Store, j job) (bool, error) {
	data, err := os.ReadFile(j.src)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", j.src, err)
	}

	if path.Ext(j.out) != ExtHTML {
		b.logger().Debug("copy", "path", j.out)
		return false, store.Save(ctx, j.out, string(data))
	}

	html, err := b.renderer.Render(string(data))
	if err != nil {
		return false, docview.Errorf(docview.EINVALID, "convert %s: %v", j.out, err)
	}
	b.logger().Debug("convert", "path", j.out, "bytes", len(html))
	return true, store.Save(ctx, j.out, html)
}

func (b *Builder) progressBar(total int) *progressbar.ProgressBar {
	w := b.Progress
	if w == nil {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("转换文档"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (b *Builder) concurrency() int {
	if b.Concurrency > 0 {
		return b.Concurrency
	}
	return DefaultConcurrency
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scanner walks a source tree, building index entries and collecting
// conversion jobs.
type scanner struct {
	root   string
	cfg    *docview.Config
	logger *slog.Logger
	jobs   []job
}

// scan lists dir with folders first, each group ordered by name. Folders
// without documents are omitted.
func (s *scanner) scan(dir string) ([]*docview.Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].IsDir() && !items[j].IsDir()
	})

	var entries []*docview.Entry
	for _, item := range items {
		if Skipped(item.Name()) {
			continue
		}
		full := filepath.Join(dir, item.Name())
		if item.IsDir() {
			children, err := s.scan(full)
			if err != nil {
				return nil, err
			}
			if len(children) > 0 {
				entries = append(entries, &docview.Entry{
					Type:     docview.EntryFolder,
					Name:     item.Name(),
					Children: children,
				})
			}
			continue
		}

		rel, err := filepath.Rel(s.root, full)
		if err != nil {
			return nil, err
		}
		rel = filepath.ToSlash(rel)
		if s.excluded(rel) {
			s.logger.Debug("exclude", "path", rel)
			continue
		}
		out := OutputPath(rel)
		s.jobs = append(s.jobs, job{src: full, out: out})
		entries = append(entries, &docview.Entry{
			Type:  docview.EntryFile,
			Name:  item.Name(),
			Title: Title(item.Name()),
			Path:  out,
		})
	}
	return entries, nil
}

func (s *scanner) excluded(rel string) bool {
	if MatchesAny(rel, s.cfg.ExcludePatterns) {
		return true
	}
	base := path.Base(rel)
	for _, name := range s.cfg.ExcludeFiles {
		if name == base {
			return true
		}
	}
	ext := path.Ext(rel)
	return ext != ExtMarkdown && ext != ExtText
}

// Skipped reports whether name starts with one of SkipPrefixes.
func Skipped(name string) bool {
	for _, p := range SkipPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// MatchesAny reports whether the slash-separated relative path, or its base
// name, matches one of the doublestar patterns. Invalid patterns never match.
func MatchesAny(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(p, base); err == nil && ok {
			return true
		}
	}
	return false
}

// OutputPath maps a source path to its path under docs/. Markdown becomes
// HTML, text keeps its name.
func OutputPath(rel string) string {
	if path.Ext(rel) == ExtMarkdown {
		return strings.TrimSuffix(rel, ExtMarkdown) + ExtHTML
	}
	return rel
}

// Title derives a display title from a file name: the extension is dropped
// and dashes and underscores become spaces.
func Title(name string) string {
	stem := strings.TrimSuffix(name, path.Ext(name))
	return strings.NewReplacer("-", " ", "_", " ").Replace(stem)
}
