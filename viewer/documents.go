package viewer

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/docview"
	"golang.org/x/sync/singleflight"
)

// DefaultPrefetchDelay is how long a link must be hovered before its
// document is prefetched.
const DefaultPrefetchDelay = 150 * time.Millisecond

// Origin records which tier satisfied a load.
type Origin int

// Origin constants.
const (
	OriginNetwork Origin = iota
	OriginRaw
	OriginRendered
)

func (o Origin) String() string {
	switch o {
	case OriginRendered:
		return "rendered"
	case OriginRaw:
		return "raw"
	default:
		return "network"
	}
}

// Document is a loaded, display-ready document.
type Document struct {
	Path   string
	HTML   string
	Origin Origin
}

type pendingPrefetch struct {
	id    uint64
	timer docview.Timer
}

// Documents loads documents through the cache and runs hover prefetch.
type Documents struct {
	// PrefetchDelay defaults to DefaultPrefetchDelay when zero.
	PrefetchDelay time.Duration
	Logger        *slog.Logger

	source    docview.Source
	renderer  *ContentRenderer
	cache     *Cache
	scheduler docview.Scheduler
	group     singleflight.Group

	mu       sync.Mutex
	seq      uint64
	pending  map[string]*pendingPrefetch
	inflight map[string]bool
}

// NewDocuments creates a Documents loader.
func NewDocuments(source docview.Source, renderer *ContentRenderer, cache *Cache, scheduler docview.Scheduler) *Documents {
	return &Documents{
		source:    source,
		renderer:  renderer,
		cache:     cache,
		scheduler: scheduler,
		pending:   make(map[string]*pendingPrefetch),
		inflight:  make(map[string]bool),
	}
}

// Cache returns the underlying cache.
func (d *Documents) Cache() *Cache { return d.cache }

// Load returns the display HTML for path. A rendered hit is returned as is.
// A raw hit is rendered and promoted to the rendered tier. Otherwise the
// document is fetched from the docs/ prefix.
//
// When the fetch fails Load returns ENOTFOUND and caches nothing, so a later
// call retries. Render failures return EINTERNAL and are not cached either.
func (d *Documents) Load(ctx context.Context, path string) (*Document, error) {
	if html, ok := d.cache.Rendered(path); ok {
		d.logger().Debug("cache hit", "path", path, "tier", "rendered")
		return &Document{Path: path, HTML: html, Origin: OriginRendered}, nil
	}

	if text, ok := d.cache.Raw(path); ok {
		d.logger().Debug("cache hit", "path", path, "tier", "raw")
		html, err := d.renderer.Render(path, text)
		if err != nil {
			return nil, err
		}
		d.cache.SetRendered(path, html)
		return &Document{Path: path, HTML: html, Origin: OriginRaw}, nil
	}

	text, err := d.fetch(ctx, path)
	if err != nil {
		d.logger().Warn("document fetch failed", "path", path, "error", err)
		return nil, docview.Errorf(docview.ENOTFOUND, "文件不存在: %s", path)
	}

	html, err := d.renderer.Render(path, text)
	if err != nil {
		return nil, err
	}
	d.cache.SetRendered(path, html)
	return &Document{Path: path, HTML: html, Origin: OriginNetwork}, nil
}

// Prefetch arms a delayed raw fetch for path. It does nothing when path is
// already cached or a prefetch fetch for it is in flight. An armed timer for
// the same path is replaced, so at most one is pending per path.
// It reports whether a timer was armed.
func (d *Documents) Prefetch(ctx context.Context, path string) bool {
	if d.cache.Has(path) {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.inflight[path] {
		return false
	}
	if p, ok := d.pending[path]; ok {
		p.timer.Stop()
	}

	d.seq++
	id := d.seq
	timer := d.scheduler.AfterFunc(d.prefetchDelay(), func() {
		d.runPrefetch(ctx, path, id)
	})
	d.pending[path] = &pendingPrefetch{id: id, timer: timer}
	return true
}

// CancelPrefetch stops a not-yet-fired prefetch timer for path.
func (d *Documents) CancelPrefetch(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[path]; ok {
		p.timer.Stop()
		delete(d.pending, path)
	}
}

// Pending reports whether a prefetch timer is armed for path.
func (d *Documents) Pending(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[path]
	return ok
}

func (d *Documents) runPrefetch(ctx context.Context, path string, id uint64) {
	d.mu.Lock()
	p, ok := d.pending[path]
	if !ok || p.id != id {
		d.mu.Unlock()
		return
	}
	delete(d.pending, path)
	if d.cache.Has(path) {
		d.mu.Unlock()
		return
	}
	d.inflight[path] = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		delete(d.inflight, path)
		d.mu.Unlock()
	}()

	text, err := d.fetch(ctx, path)
	if err != nil {
		d.logger().Debug("prefetch failed", "path", path, "error", err)
		return
	}
	d.cache.SetRaw(path, text)
	d.logger().Debug("prefetched", "path", path, "bytes", len(text))
}

// fetch coalesces concurrent requests for the same document.
func (d *Documents) fetch(ctx context.Context, path string) (string, error) {
	v, err, _ := d.group.Do(path, func() (any, error) {
		return d.source.Fetch(ctx, docview.DocumentName(path))
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (d *Documents) prefetchDelay() time.Duration {
	if d.PrefetchDelay > 0 {
		return d.PrefetchDelay
	}
	return DefaultPrefetchDelay
}

func (d *Documents) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return discard
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))
