package cache

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"

	"github.com/totegamma/routegate/core"
)

const (
	redisKeyPrefix = "permissions:"
	redisKeySet    = "permissions:keys"
)

type redisRepository struct {
	rdb *redis.Client
}

// NewRedisRepository creates a redis-backed cache. Entries are stored
// without expiry; the key set tracks them so Clear can remove all of them
// at once.
func NewRedisRepository(rdb *redis.Client) Repository {
	return &redisRepository{rdb}
}

func (r *redisRepository) Get(ctx context.Context, key string) (core.Document, error) {
	ctx, span := tracer.Start(ctx, "Cache.Repository.Get")
	defer span.End()

	val, err := r.rdb.Get(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, core.NewErrorNotFound()
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var document core.Document
	err = json.Unmarshal([]byte(val), &document)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return document, nil
}

func (r *redisRepository) Set(ctx context.Context, key string, document core.Document) error {
	ctx, span := tracer.Start(ctx, "Cache.Repository.Set")
	defer span.End()

	encoded, err := json.Marshal(document)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = r.rdb.Set(ctx, redisKeyPrefix+key, encoded, 0).Err()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = r.rdb.SAdd(ctx, redisKeySet, key).Err()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (r *redisRepository) Clear(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Cache.Repository.Clear")
	defer span.End()

	keys, err := r.rdb.SMembers(ctx, redisKeySet).Result()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	for _, key := range keys {
		err = r.rdb.Del(ctx, redisKeyPrefix+key).Err()
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	err = r.rdb.Del(ctx, redisKeySet).Err()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
