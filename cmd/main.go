package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/reflekt/repute/internal/adapters/http/api"
	"github.com/reflekt/repute/internal/adapters/inspector"
	"github.com/reflekt/repute/internal/adapters/pinning"
	"github.com/reflekt/repute/internal/adapters/repository"
	app "github.com/reflekt/repute/internal/app"
	"github.com/reflekt/repute/internal/config"
	"github.com/reflekt/repute/internal/domain/cache"
	"github.com/reflekt/repute/pkg/logger"
	"github.com/reflekt/repute/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 30 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	systemMetricsInterval  = 10 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := newStore(cfg)
	if err != nil {
		loggerInstance.Error(ctx, "failed to open leaderboard store", logger.Error(err))
		return
	}
	loggerInstance.Info(ctx, "leaderboard store ready",
		logger.String("backend", cfg.StoreBackend),
	)

	nodeInspector := inspector.New(cfg.RPCURL,
		inspector.WithTimeout(time.Duration(cfg.RPCTimeoutMS)*time.Millisecond),
	)
	pinner := pinning.NewPinata(cfg.PinataJWT,
		pinning.WithBaseURL(cfg.PinataBaseURL),
	)
	analysisCache := cache.NewInMemoryCache(
		cache.WithTTL(time.Duration(cfg.CacheTTLSeconds)*time.Second),
		cache.WithMaxEntries(cfg.CacheMaxEntries),
	)

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithInspector(nodeInspector),
		app.WithStore(store),
		app.WithPinner(pinner),
		app.WithCache(analysisCache),
		app.WithQueueSize(cfg.UpdateQueueSize),
		app.WithBadgeOutputDir(cfg.BadgeOutputDir),
	)
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	// Start background metrics updaters
	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Prometheus metrics from the custom registry.
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc, cfg.MaxLeaderboardLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// newStore opens the configured leaderboard backend.
func newStore(cfg *config.Config) (repository.Store, error) {
	if cfg.StoreBackend == "sqlite" {
		return repository.NewSQLStore(cfg.SQLitePath,
			repository.WithMaxSize(cfg.LeaderboardMaxSize),
		)
	}
	return repository.NewMemStore(
		repository.WithMaxSize(cfg.LeaderboardMaxSize),
	), nil
}

// startSystemMetricsUpdater periodically refreshes system-level metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater periodically refreshes service-level metrics.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// GetStats refreshes queue and leaderboard gauges as a side effect.
			_ = svc.GetStats()
		}
	}
}

// updateSystemMetrics updates memory and goroutine gauges.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
