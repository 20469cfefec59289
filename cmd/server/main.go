// Package main provides the entry point for the PulseCheck server, an
// employee feedback sentiment and attrition risk analysis service.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lvonguyen/pulsecheck/internal/analyzer"
	"github.com/lvonguyen/pulsecheck/internal/api/gateway"
	"github.com/lvonguyen/pulsecheck/internal/config"
	"github.com/lvonguyen/pulsecheck/internal/insights"
	"github.com/lvonguyen/pulsecheck/internal/observability"
	"github.com/lvonguyen/pulsecheck/internal/oracle"
)

// Version information (injected at build time via ldflags)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("PulseCheck %s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	cfg.Telemetry.ServiceVersion = Version

	telemetry, err := observability.New(cfg.Telemetry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry init failed: %v\n", err)
		os.Exit(1)
	}
	logger := telemetry.Logger()
	logger.Info("starting pulsecheck",
		zap.String("version", Version),
		zap.String("config", *configPath),
	)

	classifier, err := oracle.New(cfg.Oracle)
	if err != nil {
		logger.Warn("classifier init failed, falling back to lexicon", zap.Error(err))
		classifier = oracle.NewLexiconClassifier()
	}
	logger.Info("classification backend ready", zap.String("provider", classifier.Name()))

	eng := analyzer.New(classifier, logger,
		analyzer.WithLevels(cfg.Scoring.LevelTable()),
		analyzer.WithMetrics(telemetry.Metrics()),
		analyzer.WithBatchWorkers(cfg.Scoring.BatchWorkers),
	)

	app := &app{
		analyzer: eng,
		insights: insights.NewEngine(
			insights.WithTopConcerns(cfg.Scoring.TopConcerns),
			insights.WithLevelTable(cfg.Scoring.LevelTable()),
		),
		telemetry: telemetry,
		cfg:       cfg,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	telemetry.StartSystemMetricsCollector(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestTelemetry(logger, telemetry.Metrics()))
	r.Use(middleware.Timeout(cfg.Server.WriteTimeout))

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: os.Getenv(cfg.Redis.PasswordEnv),
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		limiter := gateway.NewRateLimiter(rdb, cfg.RateLimit, logger)
		r.Use(limiter.Middleware(
			func(*http.Request) string { return "basic" },
			func(r *http.Request) string { return r.Header.Get("X-API-Key") },
		))
		logger.Info("rate limiting enabled", zap.String("redis", cfg.Redis.Addr))
	}

	r.Get("/health", app.handleHealth)
	r.Get("/ready", app.handleReady)
	r.Method(http.MethodGet, "/metrics", telemetry.MetricsHandler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/assess", app.handleAssess)
		r.Post("/assess/batch", app.handleAssessBatch)
		r.Post("/insights", app.handleInsights)
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	sig := <-sigChan
	logger.Info("shutting down", zap.String("signal", sig.String()))
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	telemetry.Shutdown(shutdownCtx)

	logger.Info("server stopped")
}
