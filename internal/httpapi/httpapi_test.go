package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantage-quant/taengine/internal/candle"
	"github.com/vantage-quant/taengine/internal/engine"
	"github.com/vantage-quant/taengine/internal/health"
	"github.com/vantage-quant/taengine/internal/marketdata"
	"github.com/vantage-quant/taengine/internal/params"
)

type fakeSource struct {
	native  []string
	candles []candle.Candle
	err     error
}

func (f *fakeSource) NativeIntervals() []string { return f.native }

func (f *fakeSource) FetchCandles(ctx context.Context, symbol, nativeInterval string, limit int) ([]candle.Candle, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && limit < len(f.candles) {
		return f.candles[len(f.candles)-limit:], nil
	}
	return f.candles, nil
}

func rampCandles(n int) []candle.Candle {
	candles := make([]candle.Candle, n)
	for i := 0; i < n; i++ {
		price := decimal.NewFromInt(int64(100 + i))
		candles[i] = candle.Candle{
			Time: int64(i) * 3600, Open: price, High: price.Add(decimal.NewFromInt(1)),
			Low: price.Sub(decimal.NewFromInt(1)), Close: price, Volume: decimal.NewFromInt(10),
		}
	}
	return candles
}

func newTestServer(t *testing.T) (*gin.Engine, *Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	source := &fakeSource{native: []string{"1h", "1d"}, candles: rampCandles(60)}
	eng := engine.New(marketdata.Registry{Crypto: source}, nil, nil, nil)
	healthHandler := health.NewHandler(nil, nil, "test")
	srv := NewServer(eng, healthHandler, nil)

	router := gin.New()
	srv.SetupRoutes(router)
	return router, srv
}

func TestAnalyzeReturns200ForValidRequest(t *testing.T) {
	router, _ := newTestServer(t)

	body, _ := json.Marshal(params.AnalysisRequest{
		Symbol: "BTCUSDT", Interval: "1h", Market: params.MarketCrypto, Limit: 60,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp engine.AnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "BTCUSDT", resp.Symbol)
	assert.NotEmpty(t, resp.RSI)
}

func TestAnalyzeRejectsMissingSymbol(t *testing.T) {
	router, _ := newTestServer(t)

	body, _ := json.Marshal(params.AnalysisRequest{Interval: "1h", Market: params.MarketCrypto})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeMapsSourceErrorTo502(t *testing.T) {
	gin.SetMode(gin.TestMode)
	source := &fakeSource{native: []string{"1h"}, err: assert.AnError}
	eng := engine.New(marketdata.Registry{Crypto: source}, nil, nil, nil)
	srv := NewServer(eng, health.NewHandler(nil, nil, "test"), nil)
	router := gin.New()
	srv.SetupRoutes(router)

	body, _ := json.Marshal(params.AnalysisRequest{Symbol: "BTCUSDT", Interval: "1h", Market: params.MarketCrypto})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestWatchlistAppliesDefaultsAndReturnsSnapshots(t *testing.T) {
	router, _ := newTestServer(t)

	body, _ := json.Marshal(params.WatchlistSnapshotRequest{
		Items: []params.WatchlistItem{{Symbol: "BTCUSDT", Market: params.MarketCrypto}},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/watchlist", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Snapshots []params.WatchlistSnapshot `json:"snapshots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Snapshots, 1)
	assert.Equal(t, "BTCUSDT", out.Snapshots[0].Symbol)
}

func TestWatchlistRejectsEmptyItems(t *testing.T) {
	router, _ := newTestServer(t)

	body, _ := json.Marshal(params.WatchlistSnapshotRequest{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/watchlist", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFundamentalsRejectsCryptoViaQueryParams(t *testing.T) {
	router, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/fundamentals?symbol=BTCUSDT&market=crypto", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestListIndicatorsReturnsCatalog(t *testing.T) {
	router, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/indicators", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"sma\"")
}

func TestLivenessEndpointReportsAlive(t *testing.T) {
	router, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
