package main

import (
	"context"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/duynhne/marketplace-service/config"
	database "github.com/duynhne/marketplace-service/internal/core"
	logicv1 "github.com/duynhne/marketplace-service/internal/logic/v1"
	v1 "github.com/duynhne/marketplace-service/internal/web/v1"
	"github.com/duynhne/marketplace-service/middleware"
	"github.com/duynhne/marketplace-service/pkg/logger/zerolog"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		panic("Configuration validation failed: " + err.Error())
	}

	if cfg.Service.Env == "development" {
		zerolog.SetupConsole(cfg.Logging.Level)
	} else {
		zerolog.Setup(cfg.Logging.Level)
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().
		Str("service", cfg.Service.Name).
		Str("version", cfg.Service.Version).
		Str("env", cfg.Service.Env).
		Str("port", cfg.Service.Port).
		Str("database_driver", cfg.Database.Driver).
		Msg("Service starting")

	// Initialize OpenTelemetry tracing
	var tp interface{ Shutdown(context.Context) error }
	if cfg.Tracing.Enabled {
		provider, err := middleware.InitTracing(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize tracing")
		} else {
			tp = provider
			log.Info().
				Str("endpoint", cfg.Tracing.Endpoint).
				Float64("sample_rate", cfg.Tracing.SampleRate).
				Msg("Tracing initialized")
		}
	} else {
		log.Info().Msg("Tracing disabled (TRACING_ENABLED=false)")
	}

	// Initialize Pyroscope profiling
	if cfg.Profiling.Enabled {
		if err := middleware.InitProfiling(cfg); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize profiling")
		} else {
			log.Info().
				Str("endpoint", cfg.Profiling.Endpoint).
				Msg("Profiling initialized")
			defer middleware.StopProfiling()
		}
	} else {
		log.Info().Msg("Profiling disabled (PROFILING_ENABLED=false)")
	}

	// Open the document store. An unreachable store does not stop the service;
	// /test reports it until the store answers.
	store, err := database.Connect(context.Background(), cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid database configuration")
	}
	if err := store.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Database did not answer ping; /test will report it")
	} else {
		log.Info().Str("database", store.Inspector.Name()).Msg("Database connection established")
	}

	passwords, err := logicv1.NewPasswordStorage(cfg.Auth.PasswordStorage)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid password storage")
	}

	handler := v1.NewHandler(
		logicv1.NewAuthService(store.Users, passwords),
		logicv1.NewListingService(store.Users, store.Listings),
		logicv1.NewDiagnosticsService(store.Inspector, cfg.Database.URL != "", cfg.Database.Name != ""),
	)

	r := gin.Default()

	var isShuttingDown atomic.Bool

	// Tracing middleware
	r.Use(middleware.TracingMiddleware(cfg.Service.Name))

	// Logging middleware
	r.Use(middleware.LoggingMiddleware())

	// Prometheus middleware
	r.Use(middleware.PrometheusMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness check
	// Returns 503 once shutdown has started, to drain traffic before HTTP shutdown.
	r.GET("/ready", func(c *gin.Context) {
		if isShuttingDown.Load() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "shutting_down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.RegisterRootRoutes(r)
	handler.RegisterRoutes(r.Group("/api"))

	srv := &http.Server{
		Addr:              ":" + cfg.Service.Port,
		Handler:           middleware.CORS(cfg.CORS.AllowedOrigins).Handler(r),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Service.Port).Msg("Starting marketplace service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	// Fail readiness first and wait for propagation.
	isShuttingDown.Store(true)
	drainDelay := cfg.GetReadinessDrainDelayDuration()
	if drainDelay > 0 {
		log.Info().Dur("delay", drainDelay).Msg("Readiness drain delay started")
		time.Sleep(drainDelay)
		log.Info().Dur("delay", drainDelay).Msg("Readiness drain delay completed")
	}

	shutdownTimeout := cfg.GetShutdownTimeoutDuration()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info().Dur("timeout", shutdownTimeout).Msg("Shutting down server...")

	// 1. Shutdown HTTP server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		log.Info().Msg("HTTP server shutdown complete")
	}

	// 2. Close database connections
	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Database close error")
	} else {
		log.Info().Msg("Database connection closed")
	}

	// 3. Shutdown tracer
	if tp != nil {
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Tracer shutdown error")
		} else {
			log.Info().Msg("Tracer shutdown complete")
		}
	}

	log.Info().Msg("Graceful shutdown complete")
}
