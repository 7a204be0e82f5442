package decision

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/routegate/core"
)

// Handler is the decision handler
type Handler struct {
	service core.DecisionService
}

func NewHandler(service core.DecisionService) *Handler {
	return &Handler{service}
}

type decideRequest struct {
	Query string `json:"query"`
	Route string `json:"route"`
}

// Decide evaluates a query against a route over HTTP. Only string
// queries can cross the wire; function queries are in-process only.
func (h Handler) Decide(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Decision.Handler.Decide")
	defer span.End()

	var request decideRequest
	err := c.Bind(&request)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": err.Error()})
	}

	var query any
	if request.Query != "" {
		query = request.Query
	}

	authorized, err := h.service.IsAuthorized(ctx, query, request.Route)
	if err != nil {
		span.RecordError(err)
		if _, ok := err.(core.ErrorRouteNotFound); ok {
			return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "message": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": echo.Map{"authorized": authorized}})
}
