package docview

import "time"

// Timer is a pending call scheduled by a Scheduler.
type Timer interface {
	// Stop prevents the call from running. It returns false if the call
	// already ran or the timer was already stopped.
	Stop() bool
}

// Scheduler runs functions after a delay.
// The debounce, prefetch and overlay-close delays all go through it.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}
