package viewer

import (
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/docview"
)

// DefaultSearchDelay is the quiet period before a search runs.
const DefaultSearchDelay = 200 * time.Millisecond

// Filter returns the entries whose title, name or path contains query,
// ignoring case. Order follows entries.
func Filter(entries []*docview.Entry, query string) []*docview.Entry {
	q := strings.ToLower(query)
	var results []*docview.Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.Path), q) {
			results = append(results, e)
		}
	}
	return results
}

// IsBlank reports whether a query restores the full tree.
func IsBlank(query string) bool {
	return strings.TrimSpace(query) == ""
}

// Debouncer runs only the last of a burst of triggers, once Delay has passed
// without another trigger.
type Debouncer struct {
	Delay     time.Duration
	Scheduler docview.Scheduler

	mu    sync.Mutex
	timer docview.Timer
}

// Trigger schedules f, cancelling any previously scheduled call.
func (d *Debouncer) Trigger(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.Scheduler.AfterFunc(d.Delay, f)
}

// Stop cancels a scheduled call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
