// Package routegate is a client-side authorization decision engine: it
// resolves permission documents for routes (statically or from a remote
// source), runs a priority-ordered decision chain over them, and gates
// navigation transitions. It is a UX layer, not a security boundary; real
// enforcement stays on the backend.
package routegate

import (
	"context"

	"github.com/totegamma/routegate/core"
	"github.com/totegamma/routegate/x/matcher"
)

// Engine is the public surface consumed by controllers and UI code.
type Engine struct {
	router   core.Router
	defaults *core.Defaults
	resolver core.ResolverService
	decision core.DecisionService
	gate     core.GateService
}

func NewEngine(
	router core.Router,
	defaults *core.Defaults,
	resolverService core.ResolverService,
	decisionService core.DecisionService,
	gateService core.GateService,
) *Engine {
	return &Engine{
		router:   router,
		defaults: defaults,
		resolver: resolverService,
		decision: decisionService,
		gate:     gateService,
	}
}

// AuthorizeOrRedirect runs the pre-navigation check for the currently
// active route; on denial the navigation collaborator is redirected and
// core.ErrorPermissionDenied is returned.
func (e *Engine) AuthorizeOrRedirect(ctx context.Context) (bool, error) {
	return e.gate.AuthorizeOrRedirect(ctx)
}

// IsAuthorized decides a query against a route's cached or static
// permissions. An empty path means the currently active route. The query
// may be a string, a callable predicate, or nil to consult the default
// access policy.
func (e *Engine) IsAuthorized(ctx context.Context, query any, path string) (bool, error) {
	return e.decision.IsAuthorized(ctx, query, path)
}

// GetPermissions resolves a route's permissions, fetching the remote
// document when necessary.
func (e *Engine) GetPermissions(ctx context.Context, path string) (core.Document, error) {
	return e.resolver.Resolve(ctx, path)
}

// GetPermissionsSync resolves a route's permissions without touching the
// network; cache misses surface as core.ErrorNotFound.
func (e *Engine) GetPermissionsSync(ctx context.Context, path string) (core.Document, error) {
	return e.resolver.ResolveSync(ctx, path)
}

// GetPermissionsFromRoute returns the raw permissions value attached to a
// route (or the default), which may be a source identifier.
func (e *Engine) GetPermissionsFromRoute(ctx context.Context, path string) (core.Document, error) {
	return e.resolver.PermissionsFor(ctx, path)
}

// SetPermissions attaches a permissions value to a route descriptor.
func (e *Engine) SetPermissions(ctx context.Context, document core.Document, path string) error {
	return e.resolver.SetPermissions(ctx, path, document)
}

// SetDefaultPermissions installs the process-wide default permissions
// value: a static document or a source identifier.
func (e *Engine) SetDefaultPermissions(document core.Document) {
	e.defaults.SetPermissions(document)
}

// SetCustomAuthorization installs the global override strategy. Passing
// nil clears it.
func (e *Engine) SetCustomAuthorization(fn core.OverrideFunc) {
	e.defaults.SetOverride(fn)
}

// SetDefaultAccess sets the default access policy applied when no query,
// no override and no structural match decide the outcome.
func (e *Engine) SetDefaultAccess(allow bool) {
	e.defaults.SetAccess(allow)
}

// SetAccessDeniedRouteFor sets the denial redirect target of a route. An
// empty path means the currently active route.
func (e *Engine) SetAccessDeniedRouteFor(target string, path string) error {
	var route *core.Route
	var err error
	if path == "" {
		route, _ = e.router.Current()
		if route == nil {
			return core.NewErrorRouteNotFound(path)
		}
	} else {
		route, err = e.router.Route(path)
		if err != nil {
			return err
		}
	}

	return e.router.SetDeniedRoute(route.Path, target)
}

// ClearPermissionsCache drops every cached permissions document.
func (e *Engine) ClearPermissionsCache(ctx context.Context) error {
	return e.resolver.ClearCache(ctx)
}

// FindIn performs a hierarchical match of a query inside a document.
// An empty delimiter means "/".
func (e *Engine) FindIn(query string, document core.Document, delimiter string) bool {
	return matcher.FindIn(query, document, delimiter)
}

// SetDebug toggles decision debug logging.
func (e *Engine) SetDebug(enable bool) {
	e.defaults.SetDebug(enable)
}
