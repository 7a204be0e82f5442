package decision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/totegamma/routegate/core"
	"github.com/totegamma/routegate/x/cache"
	"github.com/totegamma/routegate/x/resolver"
	"github.com/totegamma/routegate/x/router"
)

var ctx = context.Background()

func setup(t *testing.T) (*router.Registry, *core.Defaults, core.DecisionService) {
	t.Helper()

	registry := router.NewRegistry()
	defaults := core.NewDefaults()
	resolverService := resolver.NewService(registry, cache.NewRepository(), nil, defaults)
	service := NewService(registry, resolverService, defaults)

	return registry, defaults, service
}

func TestPerRouteOverrideBeatsGlobal(t *testing.T) {
	registry, defaults, service := setup(t)

	registry.Add(&core.Route{
		Path: "/item/:id",
		Authorization: func(query any, permissions core.Document, route *core.Route, params map[string]string) bool {
			return false
		},
	})
	defaults.SetOverride(func(query any, permissions core.Document, route *core.Route, params map[string]string) bool {
		return true
	})

	authorized, err := service.IsAuthorized(ctx, "anything", "/item/:id")
	assert.NoError(t, err)
	assert.False(t, authorized)
}

func TestGlobalOverrideApplies(t *testing.T) {
	registry, defaults, service := setup(t)

	registry.Add(&core.Route{Path: "/item/:id"})
	defaults.SetOverride(func(query any, permissions core.Document, route *core.Route, params map[string]string) bool {
		return query == "please"
	})

	authorized, err := service.IsAuthorized(ctx, "please", "/item/:id")
	assert.NoError(t, err)
	assert.True(t, authorized)

	authorized, err = service.IsAuthorized(ctx, "nope", "/item/:id")
	assert.NoError(t, err)
	assert.False(t, authorized)
}

func TestOverrideReceivesResolvedPermissions(t *testing.T) {
	registry, _, service := setup(t)

	var seenPermissions core.Document
	var seenRoute *core.Route
	var seenParams map[string]string

	route := &core.Route{
		Path:        "/item/:id",
		Permissions: map[string]any{"canEdit": []any{float64(1)}},
		Authorization: func(query any, permissions core.Document, r *core.Route, params map[string]string) bool {
			seenPermissions = permissions
			seenRoute = r
			seenParams = params
			return true
		},
	}
	registry.Add(route)
	assert.NoError(t, registry.SetCurrent("/item/:id", map[string]string{"id": "42"}))

	authorized, err := service.IsAuthorized(ctx, "canEdit", "/item/:id")
	assert.NoError(t, err)
	assert.True(t, authorized)
	assert.Equal(t, map[string]any{"canEdit": []any{float64(1)}}, seenPermissions)
	assert.Equal(t, "/item/:id", seenRoute.Path)
	assert.Equal(t, map[string]string{"id": "42"}, seenParams)
}

func TestArrayMembership(t *testing.T) {
	registry, _, service := setup(t)

	registry.Add(&core.Route{Path: "/a", Permissions: []any{"/a", "/b"}})

	authorized, err := service.IsAuthorized(ctx, "/a", "/a")
	assert.NoError(t, err)
	assert.True(t, authorized)

	authorized, err = service.IsAuthorized(ctx, "/c", "/a")
	assert.NoError(t, err)
	assert.False(t, authorized)
}

func TestHierarchicalMatch(t *testing.T) {
	registry, _, service := setup(t)

	registry.Add(&core.Route{
		Path:        "/item/:id",
		Permissions: map[string]any{"canEdit": []any{float64(1), float64(2)}},
	})

	authorized, err := service.IsAuthorized(ctx, "canEdit/2", "/item/:id")
	assert.NoError(t, err)
	assert.True(t, authorized)

	authorized, err = service.IsAuthorized(ctx, "canEdit/5", "/item/:id")
	assert.NoError(t, err)
	assert.False(t, authorized)
}

func TestFunctionQueryReceivesItself(t *testing.T) {
	registry, _, service := setup(t)

	registry.Add(&core.Route{Path: "/item/:id"})

	var seenQuery any
	var predicate core.OverrideFunc
	predicate = func(query any, permissions core.Document, route *core.Route, params map[string]string) bool {
		seenQuery = query
		return true
	}

	authorized, err := service.IsAuthorized(ctx, predicate, "/item/:id")
	assert.NoError(t, err)
	assert.True(t, authorized)
	assert.NotNil(t, seenQuery)
}

func TestDefaultAccessToggling(t *testing.T) {
	registry, defaults, service := setup(t)

	registry.Add(&core.Route{Path: "/item/:id"})

	authorized, err := service.IsAuthorized(ctx, nil, "/item/:id")
	assert.NoError(t, err)
	assert.False(t, authorized)

	defaults.SetAccess(true)

	authorized, err = service.IsAuthorized(ctx, nil, "/item/:id")
	assert.NoError(t, err)
	assert.True(t, authorized)
}

func TestUnresolvedPermissionsAreEmptyMapping(t *testing.T) {
	registry, _, service := setup(t)

	var seenPermissions core.Document
	registry.Add(&core.Route{
		Path:        "/remote",
		Permissions: "https://example.com/permissions.json",
		Authorization: func(query any, permissions core.Document, route *core.Route, params map[string]string) bool {
			seenPermissions = permissions
			return false
		},
	})

	// nothing cached, so the override sees an empty mapping
	authorized, err := service.IsAuthorized(ctx, "whatever", "/remote")
	assert.NoError(t, err)
	assert.False(t, authorized)
	assert.Equal(t, map[string]any{}, seenPermissions)
}

func TestUnknownRoute(t *testing.T) {
	_, _, service := setup(t)

	_, err := service.IsAuthorized(ctx, "query", "/nope")
	assert.Error(t, err)
	assert.IsType(t, core.ErrorRouteNotFound{}, err)
}

func TestCurrentRouteWhenPathOmitted(t *testing.T) {
	registry, _, service := setup(t)

	registry.Add(&core.Route{Path: "/a", Permissions: []any{"/a"}})
	assert.NoError(t, registry.SetCurrent("/a", nil))

	authorized, err := service.IsAuthorized(ctx, "/a", "")
	assert.NoError(t, err)
	assert.True(t, authorized)
}
