package router

import (
	"log/slog"
	"sync"
)

// Navigator is a core.Navigator that records the last navigation. The
// sidecar has no real browser history to manipulate; redirect targets are
// surfaced to callers and logged instead.
type Navigator struct {
	mu       sync.RWMutex
	path     string
	replaced bool
}

func NewNavigator() *Navigator {
	return &Navigator{}
}

func (n *Navigator) SetPath(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.path = path
	n.replaced = false
	slog.Debug("navigation", slog.String("module", "router"), slog.String("path", path))
}

func (n *Navigator) Replace(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.path = path
	n.replaced = true
	slog.Debug("navigation replaced", slog.String("module", "router"), slog.String("path", path))
}

// Path returns the last navigation target and whether it replaced the
// current history entry.
func (n *Navigator) Path() (string, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.path, n.replaced
}
