package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/routegate/core"
)

// Handler is the route-table handler
type Handler struct {
	service  Service
	registry *Registry
}

func NewHandler(service Service, registry *Registry) *Handler {
	return &Handler{service, registry}
}

type upsertRequest struct {
	Path        string `json:"path"`
	Permissions any    `json:"permissions"`
	DeniedRoute string `json:"deniedRoute"`
}

// Upsert registers or updates a route descriptor.
func (h Handler) Upsert(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Router.Handler.Upsert")
	defer span.End()

	var request upsertRequest
	err := c.Bind(&request)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": err.Error()})
	}

	if request.Path == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "path is required"})
	}

	err = h.service.Upsert(ctx, request.Path, request.Permissions, request.DeniedRoute)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// List returns every registered route descriptor.
func (h Handler) List(c echo.Context) error {
	_, span := tracer.Start(c.Request().Context(), "Router.Handler.List")
	defer span.End()

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": h.registry.All()})
}

// Get returns a single route descriptor.
func (h Handler) Get(c echo.Context) error {
	_, span := tracer.Start(c.Request().Context(), "Router.Handler.Get")
	defer span.End()

	path := c.QueryParam("route")

	route, err := h.registry.Route(path)
	if err != nil {
		if _, ok := err.(core.ErrorRouteNotFound); ok {
			return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "message": err.Error()})
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": route})
}

// SetCurrent marks the active route, emulating the navigation event the
// routing collaborator would deliver in-process.
func (h Handler) SetCurrent(c echo.Context) error {
	_, span := tracer.Start(c.Request().Context(), "Router.Handler.SetCurrent")
	defer span.End()

	var request struct {
		Path   string            `json:"path"`
		Params map[string]string `json:"params"`
	}
	err := c.Bind(&request)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": err.Error()})
	}

	err = h.registry.SetCurrent(request.Path, request.Params)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "message": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
