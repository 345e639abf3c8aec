package viewer

import (
	"sync"
	"time"

	"github.com/fwojciec/docview"
)

// Copy control labels.
const (
	CopyLabel   = "复制"
	CopiedLabel = "已复制"
)

// CopiedDuration is how long the copied label stays before reverting.
const CopiedDuration = 2 * time.Second

// Span is the vertical extent of a block in content coordinates.
type Span struct {
	Top    int
	Height int
}

// IntersectionObserver decides whether a span is in view. The viewport is
// grown by Margin on both edges, and at least Threshold of the span must
// fall inside it.
type IntersectionObserver struct {
	Margin    int
	Threshold float64
}

// DefaultIntersectionObserver uses a 50 unit margin and a 10% threshold.
func DefaultIntersectionObserver() IntersectionObserver {
	return IntersectionObserver{Margin: 50, Threshold: 0.1}
}

// Intersects reports whether span is visible in the viewport starting at top
// with the given height.
func (o IntersectionObserver) Intersects(span Span, top, height int) bool {
	if span.Height <= 0 {
		return false
	}
	lo := top - o.Margin
	hi := top + height + o.Margin
	visible := min(span.Top+span.Height, hi) - max(span.Top, lo)
	if visible <= 0 {
		return false
	}
	return float64(visible)/float64(span.Height) >= o.Threshold
}

// CopyControls manages the lazily attached copy buttons of a document's
// code blocks. A control attaches the first time its block comes into view
// and stays attached.
type CopyControls struct {
	Observer IntersectionObserver

	clipboard docview.Clipboard
	scheduler docview.Scheduler

	mu       sync.Mutex
	blocks   []docview.CodeBlock
	spans    []Span
	attached []bool
	labels   []string
	reverts  []docview.Timer
}

// NewCopyControls creates controls for blocks. No control is attached until
// Observe sees its block.
func NewCopyControls(blocks []docview.CodeBlock, clipboard docview.Clipboard, scheduler docview.Scheduler) *CopyControls {
	return &CopyControls{
		Observer:  DefaultIntersectionObserver(),
		clipboard: clipboard,
		scheduler: scheduler,
		blocks:    blocks,
		spans:     make([]Span, len(blocks)),
		attached:  make([]bool, len(blocks)),
		labels:    make([]string, len(blocks)),
		reverts:   make([]docview.Timer, len(blocks)),
	}
}

// Len returns the number of code blocks.
func (c *CopyControls) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.blocks)
}

// Block returns the i-th code block.
func (c *CopyControls) Block(i int) docview.CodeBlock {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocks[i]
}

// SetSpans records the laid out position of each block. Extra spans are
// ignored.
func (c *CopyControls) SetSpans(spans []Span) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copy(c.spans, spans)
}

// Observe attaches controls to blocks intersecting the viewport and returns
// the indices attached by this call.
func (c *CopyControls) Observe(top, height int) []int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var attached []int
	for i, span := range c.spans {
		if c.attached[i] || !c.Observer.Intersects(span, top, height) {
			continue
		}
		c.attached[i] = true
		c.labels[i] = CopyLabel
		attached = append(attached, i)
	}
	return attached
}

// Attached reports whether block i has a control.
func (c *CopyControls) Attached(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return i >= 0 && i < len(c.attached) && c.attached[i]
}

// Label returns the control label of block i, or "" when it has no control.
func (c *CopyControls) Label(i int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.labels) {
		return ""
	}
	return c.labels[i]
}

// Copy writes block i to the clipboard and shows the copied label for
// CopiedDuration. Block i must have an attached control.
func (c *CopyControls) Copy(i int) error {
	c.mu.Lock()
	if i < 0 || i >= len(c.blocks) || !c.attached[i] {
		c.mu.Unlock()
		return docview.Errorf(docview.EINVALID, "code block %d has no copy control", i)
	}
	text := c.blocks[i].Text
	c.mu.Unlock()

	if err := c.clipboard.WriteAll(text); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.labels[i] = CopiedLabel
	if c.reverts[i] != nil {
		c.reverts[i].Stop()
	}
	c.reverts[i] = c.scheduler.AfterFunc(CopiedDuration, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.labels[i] = CopyLabel
	})
	return nil
}
