// Package gate runs the pre-navigation check: warm the permissions cache
// for the target route, decide, and redirect on denial.
package gate

import (
	"context"
	"log/slog"

	"github.com/rs/xid"
	"go.opentelemetry.io/otel"

	"github.com/totegamma/routegate/core"
)

var tracer = otel.Tracer("gate")

type service struct {
	router    core.Router
	navigator core.Navigator
	resolver  core.ResolverService
	decision  core.DecisionService
	defaults  *core.Defaults
}

func NewService(
	router core.Router,
	navigator core.Navigator,
	resolverService core.ResolverService,
	decisionService core.DecisionService,
	defaults *core.Defaults,
) core.GateService {
	return &service{
		router:    router,
		navigator: navigator,
		resolver:  resolverService,
		decision:  decisionService,
		defaults:  defaults,
	}
}

// AuthorizeOrRedirect decides whether the currently active route may be
// entered. Remote permissions are fetched first so the decision never runs
// against a partially resolved document; a failed fetch is absorbed and
// the chain falls through to overrides or the default access policy. On
// denial the navigator is told to replace the current location with the
// route's denial target and ErrorPermissionDenied is returned.
func (s *service) AuthorizeOrRedirect(ctx context.Context) (bool, error) {
	ctx, span := tracer.Start(ctx, "Gate.Service.AuthorizeOrRedirect")
	defer span.End()

	route, _ := s.router.Current()
	if route == nil {
		return false, core.NewErrorRouteNotFound("")
	}

	decisionID := xid.New().String()

	_, err := s.resolver.Resolve(ctx, route.Path)
	if err != nil {
		span.RecordError(err)
		slog.WarnContext(ctx, "permissions preload failed",
			slog.String("module", "gate"),
			slog.String("decision", decisionID),
			slog.String("route", route.Path),
			slog.String("error", err.Error()),
		)
	}

	authorized, err := s.decision.IsAuthorized(ctx, route.Path, route.Path)
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	if s.defaults.Debug() {
		slog.DebugContext(ctx, "gate decision",
			slog.String("module", "gate"),
			slog.String("decision", decisionID),
			slog.String("route", route.Path),
			slog.Bool("authorized", authorized),
		)
	}

	if authorized {
		return true, nil
	}

	target := route.DeniedRoute
	if target == "" {
		target = s.defaults.DeniedRoute()
	}
	s.navigator.Replace(target)

	return false, core.NewErrorPermissionDenied()
}
