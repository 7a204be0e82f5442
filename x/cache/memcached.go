package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/totegamma/routegate/core"
)

const memcachedNamespaceKey = "permissions_namespace"

type memcachedRepository struct {
	mc *memcache.Client
}

// NewMemcachedRepository creates a memcached-backed cache. Keys are
// prefixed with a namespace generation; Clear bumps the generation so
// every existing entry becomes unreachable without a key scan.
func NewMemcachedRepository(mc *memcache.Client) Repository {
	return &memcachedRepository{mc}
}

func (r *memcachedRepository) namespace() (uint64, error) {
	item, err := r.mc.Get(memcachedNamespaceKey)
	if err == memcache.ErrCacheMiss {
		err = r.mc.Add(&memcache.Item{Key: memcachedNamespaceKey, Value: []byte("1")})
		if err != nil && err != memcache.ErrNotStored {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}

	var generation uint64
	_, err = fmt.Sscanf(string(item.Value), "%d", &generation)
	if err != nil {
		return 0, err
	}
	return generation, nil
}

// entryKey hashes the source identifier so arbitrary URLs stay within
// memcached's 250-byte printable key limit.
func (r *memcachedRepository) entryKey(key string) (string, error) {
	generation, err := r.namespace()
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256([]byte(key))
	return fmt.Sprintf("permissions_%d_%s", generation, hex.EncodeToString(digest[:])), nil
}

func (r *memcachedRepository) Get(ctx context.Context, key string) (core.Document, error) {
	_, span := tracer.Start(ctx, "Cache.Repository.Get")
	defer span.End()

	entryKey, err := r.entryKey(key)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	item, err := r.mc.Get(entryKey)
	if err != nil {
		if err == memcache.ErrCacheMiss {
			return nil, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return nil, err
	}

	var document core.Document
	err = json.Unmarshal(item.Value, &document)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return document, nil
}

func (r *memcachedRepository) Set(ctx context.Context, key string, document core.Document) error {
	_, span := tracer.Start(ctx, "Cache.Repository.Set")
	defer span.End()

	entryKey, err := r.entryKey(key)
	if err != nil {
		span.RecordError(err)
		return err
	}

	encoded, err := json.Marshal(document)
	if err != nil {
		span.RecordError(err)
		return err
	}

	err = r.mc.Set(&memcache.Item{Key: entryKey, Value: encoded})
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

func (r *memcachedRepository) Clear(ctx context.Context) error {
	_, span := tracer.Start(ctx, "Cache.Repository.Clear")
	defer span.End()

	_, err := r.mc.Increment(memcachedNamespaceKey, 1)
	if err == memcache.ErrCacheMiss {
		// nothing was ever cached under the current generation
		return nil
	}
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}
