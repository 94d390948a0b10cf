package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-cloud/custodia"
	"github.com/custodia-cloud/custodia/core"
	"github.com/custodia-cloud/custodia/util"
	"github.com/custodia-cloud/custodia/x/auth"
	"github.com/custodia-cloud/custodia/x/permission"
	"github.com/custodia-cloud/custodia/x/request"
	"github.com/custodia-cloud/custodia/x/socket"

	"github.com/bradfitz/gomemcache/memcache"

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

	fmt.Fprint(os.Stderr, custodiaBanner)

	handler := &CustomHandler{Handler: slog.NewJSONHandler(os.Stdout, nil)}
	slogger := slog.New(handler)
	slog.SetDefault(slogger)

	slog.Info(fmt.Sprintf("Custodia %s starting...", version))

	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	config := util.Config{}
	configPath := os.Getenv("CUSTODIA_CONFIG")
	if configPath == "" {
		configPath = "/etc/custodia/config.yaml"
	}

	err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
	}

	slog.Info(fmt.Sprintf("Config loaded! I am: %s", config.Custodia.FQDN))

	if config.Server.EnableTrace {
		cleanup, err := setupTraceProvider(config.Server.TraceEndpoint, config.Custodia.FQDN+"/cuapi", version)
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
		Namespace: "cuapi",
		LabelFuncs: map[string]echoprometheus.LabelValueFunc{
			"url": func(c echo.Context, err error) string {
				return "REDACTED"
			},
		},
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
		Logger:         gormLogger,
		TranslateError: true,
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
		&core.Actor{},
		&core.Credential{},
		&core.Group{},
		&core.Allow{},
		&core.Policy{},
		&core.Request{},
		&core.Approval{},
	)

	err = custodia.Bootstrap(context.Background(), db, config)
	if err != nil {
		panic("failed to seed default permissions and policies")
	}

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

	permissionService := custodia.SetupPermissionService(db, rdb)
	authService := custodia.SetupAuthService(db, mc, config)

	requestService := custodia.SetupRequestService(db, rdb, mc, config)
	requestHandler := request.NewHandler(requestService)

	permissionHandler := permission.NewHandler(permissionService)
	policyHandler := custodia.SetupPolicyHandler(db, rdb, mc)
	actorHandler := custodia.SetupActorHandler(db, mc)

	socketManager := custodia.SetupSocketManager(rdb)
	socketHandler := socket.NewHandler(socketManager)

	reactor := custodia.SetupDispatchService(db, rdb, mc, config)

	apiV1 := e.Group("", auth.ReceiveGatewayAuthPropagation, authService.IdentifyRequester)

	// request
	apiV1.POST("/request", requestHandler.Create, authService.Restrict(auth.ISKNOWN))
	apiV1.GET("/request/:id", requestHandler.Get)
	apiV1.DELETE("/request/:id", requestHandler.Cancel, authService.Restrict(auth.ISKNOWN))
	apiV1.POST("/request/:id/approve", requestHandler.Approve, authService.Restrict(auth.ISKNOWN))
	apiV1.POST("/request/:id/completion", requestHandler.Complete, authService.Restrict(auth.ISSYSTEM))
	apiV1.GET("/requests", requestHandler.List)

	// permission
	apiV1.GET("/permission/:shape", permissionHandler.Get)
	apiV1.PUT("/permission/:shape", permissionHandler.Edit,
		authService.Restrict(auth.ISKNOWN),
		auth.Authorize(permissionService, func(c echo.Context) core.Resource {
			return core.NewResource(core.ResourcePermission, core.ActionUpdate, c.Param("shape"))
		}),
	)
	apiV1.GET("/permissions", permissionHandler.List)

	// policy
	apiV1.POST("/policy", policyHandler.Add,
		authService.Restrict(auth.ISKNOWN),
		auth.Authorize(permissionService, func(c echo.Context) core.Resource {
			return core.NewResource(core.ResourcePolicy, core.ActionCreate, "")
		}),
	)
	apiV1.PUT("/policy/:id", policyHandler.Edit,
		authService.Restrict(auth.ISKNOWN),
		auth.Authorize(permissionService, func(c echo.Context) core.Resource {
			return core.NewResource(core.ResourcePolicy, core.ActionUpdate, c.Param("id"))
		}),
	)
	apiV1.DELETE("/policy/:id", policyHandler.Remove,
		authService.Restrict(auth.ISKNOWN),
		auth.Authorize(permissionService, func(c echo.Context) core.Resource {
			return core.NewResource(core.ResourcePolicy, core.ActionDelete, c.Param("id"))
		}),
	)
	apiV1.GET("/policy/:id", policyHandler.Get)
	apiV1.GET("/policies", policyHandler.List)

	// actor
	apiV1.GET("/actor/:id", actorHandler.Get)
	apiV1.GET("/actors", actorHandler.List)
	apiV1.GET("/group/:id", actorHandler.GetGroup)
	apiV1.GET("/groups", actorHandler.ListGroups)

	// socket
	apiV1.GET("/socket", socketHandler.Connect)

	// misc
	apiV1.GET("/profile", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"fqdn":    config.Custodia.FQDN,
			"version": version,
			"buildInfo": util.BuildInfo{
				BuildTime:    buildTime,
				BuildMachine: buildMachine,
				GoVersion:    goVersion,
			},
		})
	})
	e.GET("/health", func(c echo.Context) (err error) {
		ctx := c.Request().Context()

		err = sqlDB.Ping()
		if err != nil {
			return c.String(http.StatusInternalServerError, "db error")
		}

		err = rdb.Ping(ctx).Err()
		if err != nil {
			return c.String(http.StatusInternalServerError, "redis error")
		}

		return c.String(http.StatusOK, "ok")
	})

	var requestCountMetrics = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cu_requests_count",
			Help: "requests per status",
		},
		[]string{"status"},
	)
	prometheus.MustRegister(requestCountMetrics)

	var resourceCountMetrics = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cu_resources_count",
			Help: "resources count",
		},
		[]string{"type"},
	)
	prometheus.MustRegister(resourceCountMetrics)

	actorService := custodia.SetupActorService(db, mc)

	go func() {
		for {
			time.Sleep(15 * time.Second)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

			counts, err := requestService.CountByStatus(ctx)
			if err != nil {
				slog.Error(fmt.Sprintf("failed to count requests: %v", err))
				cancel()
				continue
			}
			for status, count := range counts {
				requestCountMetrics.WithLabelValues(string(status)).Set(float64(count))
			}

			count, err := actorService.Count(ctx)
			if err != nil {
				slog.Error(fmt.Sprintf("failed to count actors: %v", err))
				cancel()
				continue
			}
			resourceCountMetrics.WithLabelValues("actor").Set(float64(count))

			cancel()
		}
	}()

	e.GET("/metrics", echoprometheus.NewHandler())

	reactor.Boot()

	listenAddr := config.Server.ListenAddr
	if listenAddr == "" {
		listenAddr = ":8000"
	}
	e.Logger.Fatal(e.Start(listenAddr))
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
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			slog.Error(fmt.Sprintf("Failed to shutdown tracer provider: %v", err))
		}
	}
	return cleanup, nil
}
