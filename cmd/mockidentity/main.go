// Package main is the entrypoint for the mock identity server.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/fcci/mockidentity/internal/config"
	"github.com/fcci/mockidentity/internal/fixture"
	"github.com/fcci/mockidentity/internal/handler"
	"github.com/fcci/mockidentity/internal/metrics"
	"github.com/fcci/mockidentity/internal/middleware"
	"github.com/fcci/mockidentity/internal/server"
	"github.com/fcci/mockidentity/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	fixtures, err := fixture.Load(cfg.FixturesPath)
	if err != nil {
		logger.Error("failed to load fixtures", "error", err, "path", cfg.FixturesPath)
		os.Exit(1)
	}
	logger.Info("fixtures loaded", "name", fixtures.Name, "version", fixtures.Version)

	recorder := metrics.NewInMemory()
	r := setupRouter(cfg, fixtures, recorder, logger)

	srv := server.New(
		r,
		cfg.Addr(),
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting mock identity server",
		"addr", cfg.Addr(),
		"env", cfg.AppEnv,
	)

	if err := srv.Run(context.Background()); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	cfg *config.Config,
	fixtures *fixture.Set,
	recorder *metrics.InMemoryRecorder,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(recorder))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.CORS(cfg.GetCORSAllowedOrigins()))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
	r.Use(chimiddleware.GetHead)

	// Identity routes and the echo fallback. Registered first so the
	// fallback also covers unmatched paths under /_mock.
	identityHandler := handler.NewIdentityHandler(service.NewIdentityService(fixtures), recorder, logger)
	identityHandler.Routes(r)

	// Mock introspection
	h := handler.New(fixtures)
	healthHandler := handler.NewHealthHandler(map[string]handler.HealthChecker{
		"fixtures": fixtures,
	})
	metricsHandler := handler.NewMetricsHandler(recorder)

	r.Route("/_mock", func(r chi.Router) {
		r.Get("/", h.Info)
		r.Get("/fixtures", h.Fixtures)
		r.Get("/healthz", healthHandler.Healthz)
		r.Get("/readyz", healthHandler.Readyz)
		r.Get("/metrics", metricsHandler.Metrics)
	})

	return r
}
