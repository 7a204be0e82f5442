package router

import (
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/totegamma/routegate/core"
	"github.com/totegamma/routegate/internal/testutil"
)

var ctx = context.Background()
var repo Repository
var db *gorm.DB

func TestMain(m *testing.M) {
	log.Println("Test Start")

	var cleanup_db func()
	db, cleanup_db = testutil.CreateDB()
	defer cleanup_db()

	repo = NewRepository(db)

	m.Run()

	log.Println("Test End")
}

func TestRepository(t *testing.T) {

	route := &core.Route{
		Path:        "/item/:id",
		Permissions: map[string]any{"canEdit": []any{float64(1), float64(2)}},
		DeniedRoute: "/login",
	}

	err := repo.Upsert(ctx, route)
	assert.NoError(t, err)

	fetched, err := repo.Get(ctx, "/item/:id")
	assert.NoError(t, err)
	assert.Equal(t, route.Path, fetched.Path)
	assert.Equal(t, route.DeniedRoute, fetched.DeniedRoute)
	assert.Equal(t, route.Permissions, fetched.Permissions)

	// a source identifier round-trips as a string
	err = repo.Upsert(ctx, &core.Route{Path: "/remote", Permissions: "https://example.com/permissions.json"})
	assert.NoError(t, err)

	fetched, err = repo.Get(ctx, "/remote")
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/permissions.json", fetched.Permissions)

	routes, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, routes, 2)

	err = repo.Delete(ctx, "/remote")
	assert.NoError(t, err)

	_, err = repo.Get(ctx, "/remote")
	assert.IsType(t, core.ErrorRouteNotFound{}, err)
}

func TestServiceLoad(t *testing.T) {

	registry := NewRegistry()
	service := NewService(registry, repo)

	err := service.Upsert(ctx, "/loaded", []any{"/loaded"}, "")
	assert.NoError(t, err)

	fresh := NewRegistry()
	err = NewService(fresh, repo).Load(ctx)
	assert.NoError(t, err)

	route, err := fresh.Route("/loaded")
	assert.NoError(t, err)
	assert.Equal(t, []any{"/loaded"}, route.Permissions)
}
