// Package cache stores fetched permission documents keyed by their source
// identifier. Entries persist until an explicit Clear; there is no TTL.
//
//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package cache

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"

	"github.com/totegamma/routegate/core"
)

var tracer = otel.Tracer("cache")

// Repository is the permissions cache. Get returns ErrorNotFound on miss.
type Repository interface {
	Get(ctx context.Context, key string) (core.Document, error)
	Set(ctx context.Context, key string, document core.Document) error
	Clear(ctx context.Context) error
}

type memoryRepository struct {
	mu      sync.RWMutex
	entries map[string]core.Document
}

// NewRepository creates the in-process cache backend.
func NewRepository() Repository {
	return &memoryRepository{
		entries: make(map[string]core.Document),
	}
}

func (r *memoryRepository) Get(ctx context.Context, key string) (core.Document, error) {
	_, span := tracer.Start(ctx, "Cache.Repository.Get")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	document, ok := r.entries[key]
	if !ok {
		return nil, core.NewErrorNotFound()
	}
	return document, nil
}

func (r *memoryRepository) Set(ctx context.Context, key string, document core.Document) error {
	_, span := tracer.Start(ctx, "Cache.Repository.Set")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[key] = document
	return nil
}

func (r *memoryRepository) Clear(ctx context.Context) error {
	_, span := tracer.Start(ctx, "Cache.Repository.Clear")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]core.Document)
	return nil
}
