//go:build wireinject

package routegate

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/totegamma/routegate/client"
	"github.com/totegamma/routegate/core"
	"github.com/totegamma/routegate/x/cache"
	"github.com/totegamma/routegate/x/decision"
	"github.com/totegamma/routegate/x/gate"
	"github.com/totegamma/routegate/x/resolver"
	"github.com/totegamma/routegate/x/router"
)

// Lv0
var routerServiceProvider = wire.NewSet(router.NewService, router.NewRepository)

// Lv1
var resolverServiceProvider = wire.NewSet(resolver.NewService)

// Lv2
var decisionServiceProvider = wire.NewSet(decision.NewService, SetupResolverService)

// Lv3
var gateServiceProvider = wire.NewSet(gate.NewService, SetupResolverService, SetupDecisionService)

func SetupRouterService(registry *router.Registry, db *gorm.DB) router.Service {
	wire.Build(routerServiceProvider)
	return nil
}

func SetupResolverService(routerBackend core.Router, cacheRepo cache.Repository, httpClient client.Client, defaults *core.Defaults) core.ResolverService {
	wire.Build(resolverServiceProvider)
	return nil
}

func SetupDecisionService(routerBackend core.Router, cacheRepo cache.Repository, httpClient client.Client, defaults *core.Defaults) core.DecisionService {
	wire.Build(decisionServiceProvider)
	return nil
}

func SetupGateService(routerBackend core.Router, navigator core.Navigator, cacheRepo cache.Repository, httpClient client.Client, defaults *core.Defaults) core.GateService {
	wire.Build(gateServiceProvider)
	return nil
}

func SetupEngine(routerBackend core.Router, navigator core.Navigator, cacheRepo cache.Repository, httpClient client.Client, defaults *core.Defaults) *Engine {
	wire.Build(NewEngine, SetupResolverService, SetupDecisionService, SetupGateService)
	return nil
}
