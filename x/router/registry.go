// Package router provides the routing collaborator: an in-memory route
// registry with a current-route pointer, plus persistence for route
// descriptors so a sidecar can reload its route table.
package router

import (
	"sync"

	"github.com/totegamma/routegate/core"
)

// Registry is an in-memory core.Router implementation.
type Registry struct {
	mu      sync.RWMutex
	routes  map[string]*core.Route
	current string
	params  map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		routes: make(map[string]*core.Route),
	}
}

// Add registers a route descriptor, replacing any previous descriptor
// with the same path. The registry keeps its own copy.
func (r *Registry) Add(route *core.Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *route
	r.routes[route.Path] = &clone
}

// Route returns a snapshot of the descriptor; writes go through
// SetPermissions and SetDeniedRoute.
func (r *Registry) Route(path string) (*core.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	route, ok := r.routes[path]
	if !ok {
		return nil, core.NewErrorRouteNotFound(path)
	}
	clone := *route
	return &clone, nil
}

// Current returns a snapshot of the active route descriptor and its bound
// parameters, or nil when no navigation has happened yet.
func (r *Registry) Current() (*core.Route, map[string]string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	route, ok := r.routes[r.current]
	if !ok {
		return nil, nil
	}
	clone := *route
	return &clone, r.params
}

// SetPermissions replaces the permissions value of a registered route.
func (r *Registry) SetPermissions(path string, permissions core.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	route, ok := r.routes[path]
	if !ok {
		return core.NewErrorRouteNotFound(path)
	}
	route.Permissions = permissions
	return nil
}

// SetDeniedRoute replaces the denial redirect target of a registered route.
func (r *Registry) SetDeniedRoute(path string, target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	route, ok := r.routes[path]
	if !ok {
		return core.NewErrorRouteNotFound(path)
	}
	route.DeniedRoute = target
	return nil
}

// SetCurrent marks a registered route as active with its parameter
// bindings. The routing collaborator calls this on every transition.
func (r *Registry) SetCurrent(path string, params map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.routes[path]; !ok {
		return core.NewErrorRouteNotFound(path)
	}
	r.current = path
	r.params = params
	return nil
}

// All returns a snapshot of every registered route descriptor.
func (r *Registry) All() []*core.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]*core.Route, 0, len(r.routes))
	for _, route := range r.routes {
		clone := *route
		routes = append(routes, &clone)
	}
	return routes
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}
