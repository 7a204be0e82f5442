// Package resolver supplies the decision chain with permission documents,
// synchronously from cache or via a fetch-and-cache round trip.
package resolver

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/totegamma/routegate/client"
	"github.com/totegamma/routegate/core"
	"github.com/totegamma/routegate/x/cache"
)

var tracer = otel.Tracer("resolver")

type service struct {
	router   core.Router
	cache    cache.Repository
	client   client.Client
	defaults *core.Defaults
}

func NewService(router core.Router, cacheRepo cache.Repository, httpClient client.Client, defaults *core.Defaults) core.ResolverService {
	return &service{
		router:   router,
		cache:    cacheRepo,
		client:   httpClient,
		defaults: defaults,
	}
}

func (s *service) route(path string) (*core.Route, error) {
	if path == "" {
		route, _ := s.router.Current()
		if route == nil {
			return nil, core.NewErrorRouteNotFound(path)
		}
		return route, nil
	}
	return s.router.Route(path)
}

// PermissionsFor returns the route's own permissions value if present and
// truthy, falling back to the process-wide default. The result may be a
// static document, a source identifier, or nil when neither is set.
func (s *service) PermissionsFor(ctx context.Context, path string) (core.Document, error) {
	_, span := tracer.Start(ctx, "Resolver.Service.PermissionsFor")
	defer span.End()

	route, err := s.route(path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if core.Truthy(route.Permissions) {
		return route.Permissions, nil
	}

	return s.defaults.Permissions(), nil
}

// ResolveSync resolves without ever touching the network: source
// identifiers are looked up in the cache (ErrorNotFound on miss), static
// values are returned as-is.
func (s *service) ResolveSync(ctx context.Context, path string) (core.Document, error) {
	ctx, span := tracer.Start(ctx, "Resolver.Service.ResolveSync")
	defer span.End()

	permissions, err := s.PermissionsFor(ctx, path)
	if err != nil {
		return nil, err
	}

	if source, ok := core.IsSourceIdentifier(permissions); ok {
		return s.cache.Get(ctx, source)
	}

	return permissions, nil
}

// Resolve resolves a route's permissions, fetching and caching the
// document when they point at a remote source. Overlapping fetches of the
// same source are not deduplicated; the last write wins.
func (s *service) Resolve(ctx context.Context, path string) (core.Document, error) {
	ctx, span := tracer.Start(ctx, "Resolver.Service.Resolve")
	defer span.End()

	permissions, err := s.PermissionsFor(ctx, path)
	if err != nil {
		return nil, err
	}

	source, ok := core.IsSourceIdentifier(permissions)
	if !ok {
		return permissions, nil
	}

	if cached, err := s.cache.Get(ctx, source); err == nil {
		return cached, nil
	}

	document, err := s.client.Get(ctx, source)
	if err != nil {
		span.RecordError(err)
		return nil, core.NewErrorRetrieval(source, err)
	}

	err = s.cache.Set(ctx, source, document)
	if err != nil {
		span.RecordError(err)
		slog.WarnContext(ctx, "failed to cache permissions",
			slog.String("module", "resolver"),
			slog.String("source", source),
			slog.String("error", err.Error()),
		)
	}

	return document, nil
}

// SetPermissions attaches a permissions value to a route descriptor.
func (s *service) SetPermissions(ctx context.Context, path string, document core.Document) error {
	_, span := tracer.Start(ctx, "Resolver.Service.SetPermissions")
	defer span.End()

	route, err := s.route(path)
	if err != nil {
		span.RecordError(err)
		return err
	}

	err = s.router.SetPermissions(route.Path, document)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

func (s *service) ClearCache(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Resolver.Service.ClearCache")
	defer span.End()

	return s.cache.Clear(ctx)
}
