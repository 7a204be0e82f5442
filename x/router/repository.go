//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package router

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/totegamma/routegate/core"
)

var tracer = otel.Tracer("router")

// Repository persists route descriptors.
type Repository interface {
	Upsert(ctx context.Context, route *core.Route) error
	Get(ctx context.Context, path string) (*core.Route, error)
	List(ctx context.Context) ([]*core.Route, error)
	Delete(ctx context.Context, path string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func toEntry(route *core.Route) (*core.RouteEntry, error) {
	entry := &core.RouteEntry{
		Path:        route.Path,
		DeniedRoute: route.DeniedRoute,
	}

	if route.Permissions != nil {
		encoded, err := json.Marshal(route.Permissions)
		if err != nil {
			return nil, err
		}
		permissions := string(encoded)
		entry.Permissions = &permissions
	}

	return entry, nil
}

func fromEntry(entry *core.RouteEntry) (*core.Route, error) {
	route := &core.Route{
		Path:        entry.Path,
		DeniedRoute: entry.DeniedRoute,
	}

	if entry.Permissions != nil {
		err := json.Unmarshal([]byte(*entry.Permissions), &route.Permissions)
		if err != nil {
			return nil, err
		}
	}

	return route, nil
}

func (r *repository) Upsert(ctx context.Context, route *core.Route) error {
	ctx, span := tracer.Start(ctx, "Router.Repository.Upsert")
	defer span.End()

	entry, err := toEntry(route)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *repository) Get(ctx context.Context, path string) (*core.Route, error) {
	ctx, span := tracer.Start(ctx, "Router.Repository.Get")
	defer span.End()

	var entry core.RouteEntry
	err := r.db.WithContext(ctx).Where("path = ?", path).First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, core.NewErrorRouteNotFound(path)
		}
		span.RecordError(err)
		return nil, err
	}

	return fromEntry(&entry)
}

func (r *repository) List(ctx context.Context) ([]*core.Route, error) {
	ctx, span := tracer.Start(ctx, "Router.Repository.List")
	defer span.End()

	var entries []core.RouteEntry
	err := r.db.WithContext(ctx).Find(&entries).Error
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	routes := make([]*core.Route, 0, len(entries))
	for i := range entries {
		route, err := fromEntry(&entries[i])
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		routes = append(routes, route)
	}

	return routes, nil
}

func (r *repository) Delete(ctx context.Context, path string) error {
	ctx, span := tracer.Start(ctx, "Router.Repository.Delete")
	defer span.End()

	return r.db.WithContext(ctx).Where("path = ?", path).Delete(&core.RouteEntry{}).Error
}
