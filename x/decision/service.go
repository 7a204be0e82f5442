// Package decision implements the priority-ordered authorization chain:
// per-route override, global override, array membership, hierarchical
// match, function query, default access policy.
package decision

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/totegamma/routegate/core"
	"github.com/totegamma/routegate/x/matcher"
)

var tracer = otel.Tracer("decision")

type service struct {
	router   core.Router
	resolver core.ResolverService
	defaults *core.Defaults
}

func NewService(router core.Router, resolverService core.ResolverService, defaults *core.Defaults) core.DecisionService {
	return &service{
		router:   router,
		resolver: resolverService,
		defaults: defaults,
	}
}

// IsAuthorized decides a query against a route's permissions. It only
// consults cached or static data and never initiates a fetch; warm the
// cache with the resolver first when the route points at a remote source.
// An empty path means the currently active route.
func (s *service) IsAuthorized(ctx context.Context, query any, path string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Decision.Service.IsAuthorized")
	defer span.End()

	var route *core.Route
	var err error
	if path == "" {
		route, _ = s.router.Current()
		if route == nil {
			return false, core.NewErrorRouteNotFound(path)
		}
	} else {
		route, err = s.router.Route(path)
		if err != nil {
			span.RecordError(err)
			return false, err
		}
	}

	_, params := s.router.Current()

	permissions, err := s.resolver.ResolveSync(ctx, route.Path)
	if err != nil || permissions == nil {
		// unresolved permissions are an empty mapping, never nil
		permissions = core.EmptyMapping()
	}

	result := s.decide(query, permissions, route, params)

	if s.defaults.Debug() {
		slog.DebugContext(ctx, "authorization decision",
			slog.String("module", "decision"),
			slog.String("route", route.Path),
			slog.Bool("authorized", result),
		)
	}

	return result, nil
}

func (s *service) decide(query any, permissions core.Document, route *core.Route, params map[string]string) bool {
	if route.Authorization != nil {
		return route.Authorization(query, permissions, route, params)
	}

	if override, err := s.defaults.Override(); err == nil {
		return override(query, permissions, route, params)
	}

	if q, ok := query.(string); ok {
		if sequence, ok := permissions.([]any); ok {
			return contains(sequence, q)
		}
		return matcher.FindIn(q, permissions, matcher.DefaultDelimiter)
	}

	// a callable query is evaluated like an override, receiving itself
	// as the query argument
	switch fn := query.(type) {
	case core.OverrideFunc:
		return fn(query, permissions, route, params)
	case func(any, core.Document, *core.Route, map[string]string) bool:
		return fn(query, permissions, route, params)
	}

	return s.defaults.Access()
}

// contains checks exact membership, without the token coercion the
// hierarchical matcher applies.
func contains(sequence []any, query string) bool {
	for _, element := range sequence {
		if s, ok := element.(string); ok && s == query {
			return true
		}
	}
	return false
}
