//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=mock/services.go
package core

import (
	"context"
)

// Router is the routing collaborator. It owns the route table and knows
// which route is currently active together with its bound parameters.
// Returned descriptors are snapshots; mutations go through SetPermissions
// and SetDeniedRoute so concurrent readers never observe a partial write.
type Router interface {
	Route(path string) (*Route, error)
	Current() (*Route, map[string]string)
	SetPermissions(path string, permissions Document) error
	SetDeniedRoute(path string, target string) error
}

// Navigator is the navigation collaborator, invoked on denial.
// SetPath triggers a navigation; Replace does the same while replacing
// the current history entry.
type Navigator interface {
	SetPath(path string)
	Replace(path string)
}

// ResolverService supplies permission documents for routes.
type ResolverService interface {
	PermissionsFor(ctx context.Context, path string) (Document, error)
	ResolveSync(ctx context.Context, path string) (Document, error)
	Resolve(ctx context.Context, path string) (Document, error)
	SetPermissions(ctx context.Context, path string, document Document) error
	ClearCache(ctx context.Context) error
}

// DecisionService runs the priority chain for a query against a route.
type DecisionService interface {
	IsAuthorized(ctx context.Context, query any, path string) (bool, error)
}

// GateService guards navigation transitions.
type GateService interface {
	AuthorizeOrRedirect(ctx context.Context) (bool, error)
}
