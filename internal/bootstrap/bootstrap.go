package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	appControllers "github.com/yigit/coursecatalog/internal/app/controllers"
	appRepos "github.com/yigit/coursecatalog/internal/app/repositories"
	appRoutes "github.com/yigit/coursecatalog/internal/app/routes"
	appServices "github.com/yigit/coursecatalog/internal/app/services"
	"github.com/yigit/coursecatalog/internal/app/views"
	"github.com/yigit/coursecatalog/internal/config"
	appMiddleware "github.com/yigit/coursecatalog/internal/middleware"
	"github.com/yigit/coursecatalog/internal/pkg/flash"
	"github.com/yigit/coursecatalog/internal/pkg/logger"
	"github.com/yigit/coursecatalog/internal/pkg/metrics"
	"github.com/yigit/coursecatalog/internal/pkg/tracing"
)

// DefaultConfigPath is read unless CONFIG_PATH points elsewhere
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos            *appRepos.Repositories
	CourseService    appServices.CourseService // Interface type
	CourseController *appControllers.CourseController
	Notices          *flash.Store
	Metrics          *metrics.Metrics // nil when metrics are disabled
	Tracing          *tracing.Provider
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", DefaultConfigPath)
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupTracing creates the tracer provider. It must be shut down on exit to
// flush pending spans.
func SetupTracing(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*tracing.Provider, error) {
	provider, err := tracing.Init(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		ServiceName: cfg.Tracing.ServiceName,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize tracing")
		return nil, err
	}

	if cfg.Tracing.Enabled {
		lgr.Info().
			Str("exporter", cfg.Tracing.Exporter).
			Str("service", cfg.Tracing.ServiceName).
			Msg("Tracing enabled")
	}
	return provider, nil
}

// BuildDependencies initializes the store, service and controller.
func BuildDependencies(cfg *config.Config, provider *tracing.Provider, lgr zerolog.Logger) (*Dependencies, error) {
	if provider == nil {
		return nil, fmt.Errorf("tracing provider is required")
	}
	deps := &Dependencies{Logger: lgr, Tracing: provider}

	var storeTracer trace.Tracer
	if cfg.Tracing.Enabled {
		storeTracer = provider.Tracer()
	}
	deps.Repos = appRepos.NewRepositories(cfg.Storage.CatalogPath, storeTracer)
	lgr.Info().Str("path", deps.Repos.Catalog.Path()).Msg("Using course catalog document")

	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.New()
	}

	deps.Notices = flash.NewStore([]byte(cfg.Session.Secret), cfg.IsProduction())
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseStore, deps.Metrics, lgr)
	deps.CourseController = appControllers.NewCourseController(
		deps.CourseService,
		deps.Notices,
		provider.Tracer(),
		lgr,
	)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestID(), appMiddleware.RequestLogger(lgr))

	if cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(cfg.Tracing.ServiceName,
			otelgin.WithTracerProvider(deps.Tracing.TracerProvider()),
		))
	}

	if deps.Metrics != nil {
		router.Use(appMiddleware.Metrics(deps.Metrics))
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
	}

	templates, err := views.Load()
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to parse templates")
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(templates)

	var mutationMiddleware []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		mutationMiddleware = append(mutationMiddleware, appMiddleware.RateLimit(appMiddleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	appRoutes.SetupRouter(router, deps.CourseController, mutationMiddleware...)

	// Health endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router, nil
}
