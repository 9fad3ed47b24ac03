package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/vantage-quant/taengine/internal/cache"
	"github.com/vantage-quant/taengine/internal/config"
	"github.com/vantage-quant/taengine/internal/engine"
	"github.com/vantage-quant/taengine/internal/health"
	"github.com/vantage-quant/taengine/internal/httpapi"
	"github.com/vantage-quant/taengine/internal/logging"
	"github.com/vantage-quant/taengine/internal/marketdata"
	"github.com/vantage-quant/taengine/internal/metrics"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API in the foreground (equivalent to running the server binary directly)",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "override server.port from config (0 uses config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	logger := logging.Default()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	intervalCache := cache.NewIntervalCache(redisClient)

	cryptoProvider := marketdata.NewCryptoProvider(cfg.Providers.CryptoBaseURL)
	generalProvider := marketdata.NewGeneralMarketsProvider(cfg.Providers.GeneralBaseURL)
	registry := marketdata.Registry{Crypto: cryptoProvider, General: generalProvider}

	m := metrics.NewMetrics(prometheus.NewRegistry())
	eng := engine.New(registry, intervalCache, logger, m)
	healthHandler := health.NewHandler(intervalCache, map[string]health.ProviderHealthChecker{
		"crypto_provider":  cryptoProvider,
		"general_provider": generalProvider,
	}, "1.0.0")

	server := httpapi.NewServer(eng, healthHandler, logger)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	server.SetupRoutes(router)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       15 * time.Second,
	}

	go func() {
		fmt.Printf("taenginectl serve listening on :%d\n", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
