package resolver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/routegate/core"
)

// Handler is the resolver handler
type Handler struct {
	service core.ResolverService
}

func NewHandler(service core.ResolverService) *Handler {
	return &Handler{service}
}

// Get resolves the permissions for a route, fetching remote documents
// when needed. The route path is given as a query parameter since route
// templates contain slashes.
func (h Handler) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Resolver.Handler.Get")
	defer span.End()

	path := c.QueryParam("route")

	document, err := h.service.Resolve(ctx, path)
	if err != nil {
		span.RecordError(err)
		switch err.(type) {
		case core.ErrorRouteNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "message": err.Error()})
		case core.ErrorRetrieval:
			return c.JSON(http.StatusBadGateway, echo.Map{"status": "error", "message": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": err.Error()})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": document})
}

// Put attaches a permissions value to a route descriptor.
func (h Handler) Put(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Resolver.Handler.Put")
	defer span.End()

	path := c.QueryParam("route")

	var document core.Document
	err := c.Bind(&document)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": err.Error()})
	}

	err = h.service.SetPermissions(ctx, path, document)
	if err != nil {
		span.RecordError(err)
		if _, ok := err.(core.ErrorRouteNotFound); ok {
			return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "message": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// ClearCache drops every cached permissions document.
func (h Handler) ClearCache(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Resolver.Handler.ClearCache")
	defer span.End()

	err := h.service.ClearCache(ctx)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
