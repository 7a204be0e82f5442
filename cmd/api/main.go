package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/totegamma/routegate"
	"github.com/totegamma/routegate/client"
	"github.com/totegamma/routegate/core"
	"github.com/totegamma/routegate/x/cache"
	"github.com/totegamma/routegate/x/decision"
	"github.com/totegamma/routegate/x/gate"
	"github.com/totegamma/routegate/x/resolver"
	"github.com/totegamma/routegate/x/router"
	"github.com/totegamma/routegate/x/util"
)

type CustomHandler struct {
	slog.Handler
}

func (h *CustomHandler) Handle(ctx context.Context, r slog.Record) error {

	r.AddAttrs(slog.String("type", "app"))

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		r.AddAttrs(slog.String("traceID", span.SpanContext().TraceID().String()))
		r.AddAttrs(slog.String("spanID", span.SpanContext().SpanID().String()))
	}

	return h.Handler.Handle(ctx, r)
}

var (
	version      = "unknown"
	buildMachine = "unknown"
	buildTime    = "unknown"
	goVersion    = "unknown"
)

func main() {

	handler := &CustomHandler{Handler: slog.NewJSONHandler(os.Stdout, nil)}
	slogger := slog.New(handler)
	slog.SetDefault(slogger)

	slog.Info(fmt.Sprintf("Routegate %s starting...", version))

	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	config := util.Config{}
	configPath := os.Getenv("ROUTEGATE_CONFIG")
	if configPath == "" {
		configPath = "/etc/routegate/config.yaml"
	}

	err := config.Load(configPath)
	if err != nil {
		slog.Error(fmt.Sprintf("Failed to load config: %v", err))
	}

	if config.Server.EnableTrace {
		cleanup, err := setupTraceProvider(config.Server.TraceEndpoint, "routegate/api", version)
		if err != nil {
			panic(err)
		}
		defer cleanup()

		skipper := otelecho.WithSkipper(
			func(c echo.Context) bool {
				return c.Path() == "/metrics" || c.Path() == "/health"
			},
		)
		e.Use(otelecho.Middleware("api", skipper))
	}

	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace: "routegate",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
	}))

	e.Use(middleware.Recover())

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             300 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(config.Server.Dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		panic("failed to connect database")
	}
	sqlDB, err := db.DB() // for pinging
	if err != nil {
		panic("failed to connect database")
	}
	defer sqlDB.Close()

	err = db.Use(tracing.NewPlugin(
		tracing.WithDBName("postgres"),
	))
	if err != nil {
		panic("failed to setup tracing plugin")
	}

	slog.Info("start migrate")
	db.AutoMigrate(
		&core.RouteEntry{},
	)

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Server.RedisAddr,
		Password: "",
		DB:       0,
	})
	err = redisotel.InstrumentTracing(
		rdb,
		redisotel.WithAttributes(
			attribute.KeyValue{
				Key:   "db.name",
				Value: attribute.StringValue("redis"),
			},
		),
	)
	if err != nil {
		panic("failed to setup tracing plugin")
	}

	mc := memcache.New(config.Server.MemcachedAddr)
	defer mc.Close()

	var cacheRepo cache.Repository
	switch config.Server.CacheBackend {
	case "redis":
		cacheRepo = cache.NewRedisRepository(rdb)
	case "memcached":
		cacheRepo = cache.NewMemcachedRepository(mc)
	default:
		cacheRepo = cache.NewRepository()
	}

	registry := router.NewRegistry()
	navigator := router.NewNavigator()
	httpClient := client.NewClient()

	defaults := core.NewDefaults()
	defaults.SetAccess(config.Engine.DefaultAccess)
	defaults.SetDeniedRoute(config.Engine.DeniedRoute)
	defaults.SetDebug(config.Engine.Debug)
	if config.Engine.DefaultPermissions != "" {
		defaults.SetPermissions(config.Engine.DefaultPermissions)
	}

	routerService := routegate.SetupRouterService(registry, db)
	err = routerService.Load(context.Background())
	if err != nil {
		slog.Error(fmt.Sprintf("failed to load route table: %v", err))
	}
	routerHandler := router.NewHandler(routerService, registry)

	resolverService := routegate.SetupResolverService(registry, cacheRepo, httpClient, defaults)
	resolverHandler := resolver.NewHandler(resolverService)

	decisionService := routegate.SetupDecisionService(registry, cacheRepo, httpClient, defaults)
	decisionHandler := decision.NewHandler(decisionService)

	gateService := routegate.SetupGateService(registry, navigator, cacheRepo, httpClient, defaults)
	gateHandler := gate.NewHandler(gateService)

	apiV1 := e.Group("/api/v1")

	// routes
	apiV1.GET("/routes", routerHandler.List)
	apiV1.GET("/route", routerHandler.Get)
	apiV1.PUT("/route", routerHandler.Upsert)
	apiV1.POST("/route/current", routerHandler.SetCurrent)

	// permissions
	apiV1.GET("/permissions", resolverHandler.Get)
	apiV1.PUT("/permissions", resolverHandler.Put)
	apiV1.DELETE("/cache", resolverHandler.ClearCache)

	// decisions
	apiV1.POST("/decide", decisionHandler.Decide)
	apiV1.POST("/gate", gateHandler.Check)

	e.GET("/health", func(c echo.Context) (err error) {
		ctx := c.Request().Context()

		err = sqlDB.Ping()
		if err != nil {
			return c.String(http.StatusInternalServerError, "db error")
		}

		// only the configured cache backend participates in health
		switch config.Server.CacheBackend {
		case "redis":
			err = rdb.Ping(ctx).Err()
			if err != nil {
				return c.String(http.StatusInternalServerError, "redis error")
			}
		case "memcached":
			err = mc.Ping()
			if err != nil {
				return c.String(http.StatusInternalServerError, "memcached error")
			}
		}

		return c.String(http.StatusOK, "ok")
	})

	var routeCountMetrics = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "routegate_routes",
			Help: "registered routes",
		},
	)
	prometheus.MustRegister(routeCountMetrics)

	go func() {
		for {
			time.Sleep(15 * time.Second)
			routeCountMetrics.Set(float64(registry.Count()))
		}
	}()

	e.GET("/metrics", echoprometheus.NewHandler())

	addr := config.Server.Addr
	if addr == "" {
		addr = ":8000"
	}
	e.Logger.Fatal(e.Start(addr))
}

func setupTraceProvider(endpoint string, serviceName string, serviceVersion string) (func(), error) {

	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)

	if err != nil {
		return nil, err
	}

	resource := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(serviceVersion),
	)

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(resource),
	)
	otel.SetTracerProvider(tracerProvider)

	propagator := propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
	otel.SetTextMapPropagator(propagator)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			slog.Error(fmt.Sprintf("Failed to shutdown tracer provider: %v", err))
		}
	}

	return cleanup, nil
}
