package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewMetricsRegistersEveryCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.FetchTotal.WithLabelValues("crypto", "binance").Inc()
	m.CacheHits.WithLabelValues("crypto").Inc()
	m.AnalysisRequests.WithLabelValues("crypto", "ok").Inc()
	m.AnalysisDuration.Observe(0.01)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if len(families) == 0 {
		t.Fatal("Gather() returned no metric families, want at least one")
	}
}

func TestFetchErrorsTrackedByCategory(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.FetchErrors.WithLabelValues("crypto", "binance", "upstream").Inc()
	m.FetchErrors.WithLabelValues("crypto", "binance", "upstream").Inc()

	var metric dto.Metric
	if err := m.FetchErrors.WithLabelValues("crypto", "binance", "upstream").Write(&metric); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Fatalf("counter value = %v, want 2", got)
	}
}
