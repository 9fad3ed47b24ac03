package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vantage-quant/taengine/internal/apierr"
	"github.com/vantage-quant/taengine/internal/candle"
)

// cryptoNativeIntervals is the klines granularity set this provider can
// fetch directly — the same set exchange-style kline endpoints expose.
var cryptoNativeIntervals = []string{
	"1m", "3m", "5m", "15m", "30m", "1h", "2h", "4h", "6h", "8h", "12h", "1d", "3d", "1w", "1M",
}

// CryptoProvider fetches OHLCV klines from an exchange-compatible REST
// endpoint (the request/response shape mirrors Binance's public klines
// API, the de facto wire format most crypto data providers in this
// domain converge on).
type CryptoProvider struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewCryptoProvider builds a CryptoProvider against baseURL with a
// bounded-timeout client.
func NewCryptoProvider(baseURL string) *CryptoProvider {
	return &CryptoProvider{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *CryptoProvider) NativeIntervals() []string { return cryptoNativeIntervals }

// HealthCheck verifies the provider's base URL is reachable, without
// fetching any candles — satisfies internal/health.ProviderHealthChecker.
func (p *CryptoProvider) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/api/v3/ping", nil)
	if err != nil {
		return apierr.Network("crypto", err)
	}
	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return apierr.Network("crypto", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return apierr.Upstream("crypto", resp.StatusCode, "")
	}
	return nil
}

// klineRow is one row of a klines response: [openTime, open, high, low,
// close, volume, closeTime, ...].
type klineRow []json.RawMessage

func (p *CryptoProvider) FetchCandles(ctx context.Context, symbol, nativeInterval string, limit int) ([]candle.Candle, error) {
	url := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d", p.BaseURL, symbol, nativeInterval, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apierr.Network("crypto", err)
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, apierr.Network("crypto", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apierr.Upstream("crypto", resp.StatusCode, "")
	}

	var rows []klineRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, apierr.Parse("crypto", err)
	}
	if len(rows) == 0 {
		return nil, apierr.EmptyResult("crypto")
	}

	candles := make([]candle.Candle, 0, len(rows))
	for _, row := range rows {
		c, err := parseKlineRow(row)
		if err != nil {
			return nil, apierr.Parse("crypto", err)
		}
		candles = append(candles, c)
	}
	return candles, nil
}

func parseKlineRow(row klineRow) (candle.Candle, error) {
	if len(row) < 6 {
		return candle.Candle{}, fmt.Errorf("kline row has %d fields, want at least 6", len(row))
	}
	var openTimeMS int64
	if err := json.Unmarshal(row[0], &openTimeMS); err != nil {
		return candle.Candle{}, err
	}
	open, err := decodeDecimal(row[1])
	if err != nil {
		return candle.Candle{}, err
	}
	high, err := decodeDecimal(row[2])
	if err != nil {
		return candle.Candle{}, err
	}
	low, err := decodeDecimal(row[3])
	if err != nil {
		return candle.Candle{}, err
	}
	closePrice, err := decodeDecimal(row[4])
	if err != nil {
		return candle.Candle{}, err
	}
	volume, err := decodeDecimal(row[5])
	if err != nil {
		return candle.Candle{}, err
	}
	return candle.Candle{
		Time:   openTimeMS / 1000,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}, nil
}

// decodeDecimal handles both string-encoded and numeric JSON fields,
// since different exchange APIs encode kline prices either way.
func decodeDecimal(raw json.RawMessage) (decimal.Decimal, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return decimal.NewFromString(s)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromFloat(f), nil
}
