package viewer

import "sync"

// Cache is the two-tier document store. The rendered tier holds HTML ready
// for display and is authoritative once populated. The raw tier holds
// fetched source text awaiting its first render. Entries live for the
// session and are never evicted.
type Cache struct {
	mu       sync.RWMutex
	rendered map[string]string
	raw      map[string]string
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		rendered: make(map[string]string),
		raw:      make(map[string]string),
	}
}

// Rendered returns the rendered HTML for path.
func (c *Cache) Rendered(path string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	html, ok := c.rendered[path]
	return html, ok
}

// SetRendered stores rendered HTML for path and drops any raw copy.
func (c *Cache) SetRendered(path, html string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rendered[path] = html
	delete(c.raw, path)
}

// Raw returns the unrendered text for path.
func (c *Cache) Raw(path string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	text, ok := c.raw[path]
	return text, ok
}

// SetRaw stores unrendered text for path. It is a no-op once path has been
// rendered.
func (c *Cache) SetRaw(path, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.rendered[path]; ok {
		return
	}
	c.raw[path] = text
}

// Has reports whether either tier holds path.
func (c *Cache) Has(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, rendered := c.rendered[path]
	_, raw := c.raw[path]
	return rendered || raw
}

// Len returns the number of cached paths across both tiers.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rendered) + len(c.raw)
}
