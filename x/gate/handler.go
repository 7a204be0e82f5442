package gate

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/totegamma/routegate/core"
)

var decisionMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "routegate_gate_decisions",
		Help: "gate decisions by outcome",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(decisionMetrics)
}

// Handler is the gate handler
type Handler struct {
	service core.GateService
}

func NewHandler(service core.GateService) *Handler {
	return &Handler{service}
}

// Check runs the pre-navigation check for the currently active route.
func (h Handler) Check(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Gate.Handler.Check")
	defer span.End()

	authorized, err := h.service.AuthorizeOrRedirect(ctx)
	if err != nil {
		switch err.(type) {
		case core.ErrorPermissionDenied:
			decisionMetrics.WithLabelValues("denied").Inc()
			return c.JSON(http.StatusForbidden, echo.Map{"status": "denied"})
		case core.ErrorRouteNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "message": err.Error()})
		default:
			span.RecordError(err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": err.Error()})
		}
	}

	decisionMetrics.WithLabelValues("allowed").Inc()
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": echo.Map{"authorized": authorized}})
}
