package viewer

// Location tracks the displayed document path and the visit history.
type Location struct {
	current string
	back    []string
	forward []string
}

// Current returns the displayed path.
func (l *Location) Current() string { return l.current }

// Push records a visit to path. Pushing the current path is a no-op.
// A new visit clears forward history.
func (l *Location) Push(path string) {
	if path == l.current {
		return
	}
	if l.current != "" {
		l.back = append(l.back, l.current)
	}
	l.current = path
	l.forward = nil
}

// Back moves to the previous path.
func (l *Location) Back() (string, bool) {
	if len(l.back) == 0 {
		return "", false
	}
	prev := l.back[len(l.back)-1]
	l.back = l.back[:len(l.back)-1]
	l.forward = append(l.forward, l.current)
	l.current = prev
	return prev, true
}

// Forward moves to the next path after a Back.
func (l *Location) Forward() (string, bool) {
	if len(l.forward) == 0 {
		return "", false
	}
	next := l.forward[len(l.forward)-1]
	l.forward = l.forward[:len(l.forward)-1]
	l.back = append(l.back, l.current)
	l.current = next
	return next, true
}

// CanGoBack reports whether Back would move.
func (l *Location) CanGoBack() bool { return len(l.back) > 0 }

// CanGoForward reports whether Forward would move.
func (l *Location) CanGoForward() bool { return len(l.forward) > 0 }
