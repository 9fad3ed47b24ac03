// Command server runs the analysis engine's HTTP API, adapted from
// cmd/server/main_reference.go's startup/graceful-shutdown skeleton:
// load config, wire dependencies, mount Gin with Sentry tracing and
// recovery, serve with hardened timeouts, then drain on SIGINT/SIGTERM.
// Every domain-specific service the reference file wired (Postgres/
// SQLite, CCXT, Telegram, quests, trading) has no counterpart here.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/vantage-quant/taengine/internal/cache"
	"github.com/vantage-quant/taengine/internal/config"
	"github.com/vantage-quant/taengine/internal/engine"
	"github.com/vantage-quant/taengine/internal/health"
	"github.com/vantage-quant/taengine/internal/httpapi"
	"github.com/vantage-quant/taengine/internal/logging"
	"github.com/vantage-quant/taengine/internal/marketdata"
	"github.com/vantage-quant/taengine/internal/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "application failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.Default()
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn, Environment: cfg.Environment}); err != nil {
			logger.WithError(err).Warn("failed to initialize sentry, continuing without it")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	runtimeOptimizer := health.NewRuntimeOptimizer(health.DefaultRuntimeConfig())
	runtimeOptimizer.Apply()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	intervalCache := cache.NewIntervalCache(redisClient)

	// A connection pool sized from CPU/heap headroom, the way the
	// teacher sizes its own worker pools — bounds outbound connection
	// concurrency to each provider since multi-symbol scans are
	// deliberately sequential (internal/health.RecommendedWorkerCount).
	poolSize := health.RecommendedWorkerCount()
	cryptoProvider := marketdata.NewCryptoProvider(cfg.Providers.CryptoBaseURL)
	cryptoProvider.HTTPClient.Transport = &http.Transport{MaxIdleConnsPerHost: poolSize, MaxConnsPerHost: poolSize}
	generalProvider := marketdata.NewGeneralMarketsProvider(cfg.Providers.GeneralBaseURL)
	generalProvider.HTTPClient.Transport = &http.Transport{MaxIdleConnsPerHost: poolSize, MaxConnsPerHost: poolSize}

	registry := marketdata.Registry{Crypto: cryptoProvider, General: generalProvider}

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	eng := engine.New(registry, intervalCache, logger, m)

	healthHandler := health.NewHandler(intervalCache, map[string]health.ProviderHealthChecker{
		"crypto_provider":  cryptoProvider,
		"general_provider": generalProvider,
	}, "1.0.0")

	server := httpapi.NewServer(eng, healthHandler, logger)

	router := gin.New()
	router.Use(gin.Logger())
	if os.Getenv("SENTRY_DSN") != "" {
		router.Use(sentrygin.New(sentrygin.Options{
			Repanic:         true,
			WaitForDelivery: false,
			Timeout:         2 * time.Second,
		}))
	}
	router.Use(gin.Recovery())
	server.SetupRoutes(router)

	metricsServer := metrics.NewServer(fmt.Sprintf(":%d", cfg.Server.Port+1), reg)
	go func() {
		if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("metrics server failed")
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       15 * time.Second,
	}

	go func() {
		logger.WithFields(logging.Fields{"port": cfg.Server.Port, "environment": cfg.Environment}).Info("analysis engine listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("server forced to shutdown")
	}
	if err := metricsServer.Stop(ctx); err != nil {
		logger.WithError(err).Warn("metrics server forced to shutdown")
	}
	logger.Info("server exited gracefully")
	return nil
}
