package router

import (
	"context"

	"github.com/totegamma/routegate/core"
)

// Service keeps the registry and the persisted route table in sync.
type Service interface {
	Load(ctx context.Context) error
	Upsert(ctx context.Context, path string, permissions any, deniedRoute string) error
	Delete(ctx context.Context, path string) error
}

type service struct {
	registry   *Registry
	repository Repository
}

func NewService(registry *Registry, repository Repository) Service {
	return &service{
		registry:   registry,
		repository: repository,
	}
}

// Load replaces the registry contents with the persisted route table.
func (s *service) Load(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Router.Service.Load")
	defer span.End()

	routes, err := s.repository.List(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}

	for _, route := range routes {
		s.registry.Add(route)
	}

	return nil
}

func (s *service) Upsert(ctx context.Context, path string, permissions any, deniedRoute string) error {
	ctx, span := tracer.Start(ctx, "Router.Service.Upsert")
	defer span.End()

	route, err := s.registry.Route(path)
	if err != nil {
		route = &core.Route{Path: path}
	}

	route.Permissions = permissions
	route.DeniedRoute = deniedRoute

	err = s.repository.Upsert(ctx, route)
	if err != nil {
		span.RecordError(err)
		return err
	}

	s.registry.Add(route)
	return nil
}

func (s *service) Delete(ctx context.Context, path string) error {
	ctx, span := tracer.Start(ctx, "Router.Service.Delete")
	defer span.End()

	return s.repository.Delete(ctx, path)
}
