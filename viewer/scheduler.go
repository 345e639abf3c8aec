package viewer

import (
	"time"

	"github.com/fwojciec/docview"
)

var _ docview.Scheduler = SystemScheduler{}

// SystemScheduler schedules calls on the runtime timer.
type SystemScheduler struct{}

// AfterFunc runs f on its own goroutine after d.
func (SystemScheduler) AfterFunc(d time.Duration, f func()) docview.Timer {
	return time.AfterFunc(d, f)
}
