// Package httpapi wires the analysis engine onto Gin, adapted from
// internal/api/routes.go's SetupRoutes: route groups under /api/v1,
// Sentry request tracing per group, and health endpoints wrapped with
// gin.WrapF over internal/health.Handler's net/http methods. Every
// domain-irrelevant route group the teacher registers (arbitrage,
// telegram, trading, AI, exchanges, quests, wallets, budget) has no
// counterpart here — this engine has one job, fetch and analyze candles.
package httpapi

import (
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/vantage-quant/taengine/internal/apierr"
	"github.com/vantage-quant/taengine/internal/engine"
	"github.com/vantage-quant/taengine/internal/health"
	"github.com/vantage-quant/taengine/internal/indicators"
	"github.com/vantage-quant/taengine/internal/logging"
	"github.com/vantage-quant/taengine/internal/params"
)

// Server holds the dependencies every route handler needs.
type Server struct {
	Engine *engine.Engine
	Health *health.Handler
	Logger *logging.Logger
}

// NewServer builds a Server; logger defaults to logging.Default() when nil.
func NewServer(eng *engine.Engine, healthHandler *health.Handler, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	return &Server{Engine: eng, Health: healthHandler, Logger: logger}
}

// SetupRoutes registers every route this engine serves on router,
// following the teacher's group-then-register shape: health endpoints
// first with no auth and no telemetry wrapper beyond tracing, then the
// versioned API surface under /api/v1 with Sentry request tracing.
func (s *Server) SetupRoutes(router *gin.Engine) {
	healthGroup := router.Group("/")
	{
		healthGroup.GET("/health", gin.WrapF(s.Health.HealthCheck))
		healthGroup.HEAD("/health", gin.WrapF(s.Health.HealthCheck))
		healthGroup.GET("/ready", gin.WrapF(s.Health.ReadinessCheck))
		healthGroup.GET("/live", gin.WrapF(s.Health.LivenessCheck))
	}

	v1 := router.Group("/api/v1")
	v1.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	{
		v1.POST("/analyze", s.Analyze)
		v1.POST("/watchlist", s.Watchlist)
		v1.POST("/multi-symbol", s.MultiSymbol)
		v1.GET("/fundamentals", s.Fundamentals)
		v1.GET("/indicators", s.ListIndicators)
	}
}

// Analyze handles POST /api/v1/analyze: the full single-symbol pipeline.
func (s *Server) Analyze(c *gin.Context) {
	var req params.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid request body", err))
		return
	}
	if req.Symbol == "" {
		c.JSON(http.StatusBadRequest, errorBody("symbol is required", nil))
		return
	}

	resp, err := s.Engine.FetchAnalysis(c.Request.Context(), req)
	if err != nil {
		s.Logger.WithSymbol(req.Symbol).WithError(err).Error("analyze failed")
		c.JSON(statusFor(err), errorBody("analyze failed", err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Watchlist handles POST /api/v1/watchlist: lightweight per-symbol
// snapshots (last price, change, sparkline), capped at
// engine.MaxWatchlistItems and processed sequentially.
func (s *Server) Watchlist(c *gin.Context) {
	var req params.WatchlistSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid request body", err))
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, errorBody("items must not be empty", nil))
		return
	}
	if req.Interval == "" {
		req.Interval = params.DefaultWatchlistInterval
	}
	if req.Limit == 0 {
		req.Limit = params.DefaultWatchlistLimit
	}

	snapshots, err := s.Engine.FetchWatchlistSnapshots(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), errorBody("watchlist fetch failed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

// MultiSymbol handles POST /api/v1/multi-symbol: full analysis for up to
// engine.MaxMultiSymbolItems symbols, per-symbol errors accumulated
// rather than aborting the whole request.
func (s *Server) MultiSymbol(c *gin.Context) {
	var req params.MultiSymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid request body", err))
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, errorBody("items must not be empty", nil))
		return
	}

	result, err := s.Engine.FetchMultiSymbolAnalysis(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), errorBody("multi-symbol fetch failed", err))
		return
	}
	c.JSON(http.StatusOK, result)
}

// Fundamentals handles GET /api/v1/fundamentals?symbol=...&market=....
func (s *Server) Fundamentals(c *gin.Context) {
	req := params.FundamentalsRequest{
		Symbol: c.Query("symbol"),
		Market: params.MarketType(c.Query("market")),
	}
	if req.Symbol == "" {
		c.JSON(http.StatusBadRequest, errorBody("symbol is required", nil))
		return
	}

	resp, err := s.Engine.FetchFundamentals(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), errorBody("fundamentals fetch failed", err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListIndicators handles GET /api/v1/indicators: the static kernel
// catalog, for client-side discovery of what fields an analyze request
// can opt into.
func (s *Server) ListIndicators(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"indicators": indicators.Catalog()})
}

func errorBody(message string, err error) gin.H {
	body := gin.H{"error": message, "timestamp": time.Now().UTC()}
	if err != nil {
		body["detail"] = err.Error()
	}
	return body
}

// statusFor maps an engine error to an HTTP status, using apierr's
// taxonomy when the error crossed a marketdata/cache boundary and
// falling back to 502 for anything else (candle.ValidateSeries
// failures, interval-plan failures, and similar pipeline errors that
// are the upstream data's fault, not the caller's).
func statusFor(err error) int {
	switch {
	case apierr.Is(err, apierr.CategoryDomainReject):
		return http.StatusBadRequest
	case apierr.Is(err, apierr.CategoryNetwork), apierr.Is(err, apierr.CategoryUpstream):
		return http.StatusBadGateway
	case apierr.Is(err, apierr.CategoryParse), apierr.Is(err, apierr.CategoryEmptyResult):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
