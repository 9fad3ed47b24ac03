package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeChecker struct{ err error }

func (f fakeChecker) HealthCheck(ctx context.Context) error { return f.err }

func TestHealthCheckHealthyWhenRedisUp(t *testing.T) {
	h := NewHandler(fakeChecker{}, map[string]ProviderHealthChecker{"crypto": fakeChecker{}}, "test")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Fatalf("status = %q, want healthy", resp.Status)
	}
}

func TestHealthCheckUnavailableWhenRedisDown(t *testing.T) {
	h := NewHandler(fakeChecker{err: errors.New("connection refused")}, nil, "test")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.HealthCheck(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestReadinessDegradedProviderStillReady(t *testing.T) {
	h := NewHandler(fakeChecker{}, map[string]ProviderHealthChecker{
		"crypto":  fakeChecker{err: errors.New("timeout")},
		"general": fakeChecker{},
	}, "test")
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.ReadinessCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (provider outage degrades, does not block readiness)", rec.Code)
	}
}

func TestLivenessAlwaysOK(t *testing.T) {
	h := NewHandler(nil, nil, "test")
	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	rec := httptest.NewRecorder()

	h.LivenessCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
