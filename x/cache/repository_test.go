package cache

import (
	"context"
	"log"
	"strings"
	"testing"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/totegamma/routegate/core"
	"github.com/totegamma/routegate/internal/testutil"
)

var ctx = context.Background()
var rdb *redis.Client
var mc *memcache.Client

func TestMain(m *testing.M) {
	log.Println("Test Start")

	var cleanup_rdb func()
	rdb, cleanup_rdb = testutil.CreateRDB()
	defer cleanup_rdb()

	var cleanup_mc func()
	mc, cleanup_mc = testutil.CreateMC()
	defer cleanup_mc()

	m.Run()

	log.Println("Test End")
}

func testRepository(t *testing.T, repo Repository) {
	_, err := repo.Get(ctx, "https://example.com/permissions.json")
	assert.Error(t, err)
	assert.IsType(t, core.ErrorNotFound{}, err)

	document := map[string]any{
		"GET": map[string]any{
			"page": []any{float64(1), float64(2)},
		},
	}

	err = repo.Set(ctx, "https://example.com/permissions.json", document)
	assert.NoError(t, err)

	fetched, err := repo.Get(ctx, "https://example.com/permissions.json")
	assert.NoError(t, err)
	assert.Equal(t, document, fetched)

	// same key maps to at most one document
	err = repo.Set(ctx, "https://example.com/permissions.json", []any{"/a"})
	assert.NoError(t, err)

	fetched, err = repo.Get(ctx, "https://example.com/permissions.json")
	assert.NoError(t, err)
	assert.Equal(t, []any{"/a"}, fetched)

	err = repo.Set(ctx, "https://example.com/other.json", []any{"/b"})
	assert.NoError(t, err)

	// clear removes all entries, not a subset
	err = repo.Clear(ctx)
	assert.NoError(t, err)

	_, err = repo.Get(ctx, "https://example.com/permissions.json")
	assert.IsType(t, core.ErrorNotFound{}, err)

	_, err = repo.Get(ctx, "https://example.com/other.json")
	assert.IsType(t, core.ErrorNotFound{}, err)

	// source identifiers are arbitrary: long URLs with query strings and
	// spaces must round-trip on every backend
	longKey := "https://example.com/perms?scope=" + strings.Repeat("abcdefgh", 40) + "&label=a b"
	err = repo.Set(ctx, longKey, []any{"/long"})
	assert.NoError(t, err)

	fetched, err = repo.Get(ctx, longKey)
	assert.NoError(t, err)
	assert.Equal(t, []any{"/long"}, fetched)
}

func TestMemoryRepository(t *testing.T) {
	testRepository(t, NewRepository())
}

func TestRedisRepository(t *testing.T) {
	testRepository(t, NewRedisRepository(rdb))
}

func TestMemcachedRepository(t *testing.T) {
	testRepository(t, NewMemcachedRepository(mc))
}
