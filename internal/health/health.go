// Package health implements the HTTP health/readiness/liveness endpoints,
// adapted from internal/api/handlers/health.go. The teacher's checks
// covered database, Redis, a CCXT sidecar, and Telegram bot
// configuration; this engine has no persistence layer and no bot, so
// only the Redis-backed interval cache and the two upstream marketdata
// providers are checked, in their place.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

// RedisHealthChecker verifies the interval cache's Redis connection.
type RedisHealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ProviderHealthChecker verifies an upstream marketdata provider is
// reachable, without actually fetching candles.
type ProviderHealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler serves /health, /ready, and /live.
type Handler struct {
	redis     RedisHealthChecker
	providers map[string]ProviderHealthChecker
	startedAt time.Time
	version   string
}

func NewHandler(redis RedisHealthChecker, providers map[string]ProviderHealthChecker, version string) *Handler {
	return &Handler{
		redis:     redis,
		providers: providers,
		startedAt: time.Now(),
		version:   version,
	}
}

// Response is the /health payload.
type Response struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	span := sentry.StartSpan(ctx, "health_check")
	defer span.Finish()
	ctx = span.Context()

	services := make(map[string]string)
	criticalUnhealthy := false

	if h.redis != nil {
		if err := h.redis.HealthCheck(ctx); err != nil {
			services["redis"] = "unhealthy: " + err.Error()
			span.SetTag("redis.status", "unhealthy")
			sentry.CaptureException(err)
			criticalUnhealthy = true
		} else {
			services["redis"] = "healthy"
			span.SetTag("redis.status", "healthy")
		}
	} else {
		services["redis"] = "unhealthy: not configured"
		span.SetTag("redis.status", "not_configured")
	}

	for name, provider := range h.providers {
		if err := provider.HealthCheck(ctx); err != nil {
			services[name] = "unhealthy: " + err.Error()
			span.SetTag(name+".status", "unhealthy")
			sentry.CaptureException(err)
		} else {
			services[name] = "healthy"
			span.SetTag(name+".status", "healthy")
		}
	}

	status := "healthy"
	for _, s := range services {
		if s != "healthy" {
			status = "degraded"
		}
	}
	span.SetTag("overall.status", status)

	response := Response{
		Status:    status,
		Timestamp: time.Now(),
		Services:  services,
		Version:   h.version,
		Uptime:    time.Since(h.startedAt).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if criticalUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
		span.Status = sentry.SpanStatusUnavailable
	} else {
		w.WriteHeader(http.StatusOK)
		span.Status = sentry.SpanStatusOK
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// ReadinessCheck reports whether the engine can accept analysis
// requests right now: the interval cache must be reachable. Provider
// outages degrade individual markets but don't flip readiness, since
// an outage in one provider shouldn't take the whole engine out of the
// load-balancer pool.
func (h *Handler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	span := sentry.StartSpan(r.Context(), "readiness_check")
	defer span.Finish()
	ctx := span.Context()

	services := make(map[string]string)
	ready := true

	if h.redis != nil {
		if err := h.redis.HealthCheck(ctx); err == nil {
			services["redis"] = "ready"
			span.SetTag("redis.readiness", "ready")
		} else {
			services["redis"] = "not ready"
			span.SetTag("redis.readiness", "not_ready")
			sentry.CaptureException(err)
			ready = false
		}
	} else {
		services["redis"] = "not configured"
		ready = false
	}

	for name, provider := range h.providers {
		if err := provider.HealthCheck(ctx); err != nil {
			services[name] = "degraded"
			span.SetTag(name+".readiness", "degraded")
			sentry.CaptureException(err)
		} else {
			services[name] = "ready"
			span.SetTag(name+".readiness", "ready")
		}
	}

	if ready {
		span.Status = sentry.SpanStatusOK
		w.WriteHeader(http.StatusOK)
	} else {
		span.Status = sentry.SpanStatusUnavailable
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":    ready,
		"services": services,
	}); err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	span := sentry.StartSpan(r.Context(), "liveness_check")
	defer span.Finish()

	span.Status = sentry.SpanStatusOK
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":    "alive",
		"timestamp": time.Now().Format(time.RFC3339),
	}); err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
