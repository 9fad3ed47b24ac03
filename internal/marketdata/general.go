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
	"github.com/vantage-quant/taengine/internal/params"
)

// generalNativeIntervals is the chart-granularity set forex/US-stock/KR-stock
// tickers expose — the conventional chart-API interval set (minute
// through monthly, no sub-minute granularity, a 1d/1w/1M ladder above
// the intraday tiers).
var generalNativeIntervals = []string{
	"1m", "2m", "5m", "15m", "30m", "1h", "1d", "1w", "1M",
}

// GeneralMarketsProvider fetches OHLCV bars and fundamentals for forex,
// US-stock, and KR-stock symbols from a chart-API-compatible REST
// endpoint.
type GeneralMarketsProvider struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewGeneralMarketsProvider(baseURL string) *GeneralMarketsProvider {
	return &GeneralMarketsProvider{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *GeneralMarketsProvider) NativeIntervals() []string { return generalNativeIntervals }

// HealthCheck verifies the provider's base URL is reachable, without
// fetching any candles — satisfies internal/health.ProviderHealthChecker.
func (p *GeneralMarketsProvider) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/v8/finance/chart/%5EGSPC?range=1d&interval=1d", nil)
	if err != nil {
		return apierr.Network("general", err)
	}
	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return apierr.Network("general", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return apierr.Upstream("general", resp.StatusCode, "")
	}
	return nil
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (p *GeneralMarketsProvider) FetchCandles(ctx context.Context, symbol, nativeInterval string, limit int) ([]candle.Candle, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%dmo", p.BaseURL, symbol, nativeInterval, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apierr.Network("general", err)
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, apierr.Network("general", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apierr.Upstream("general", resp.StatusCode, "")
	}

	var body chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apierr.Parse("general", err)
	}
	if body.Chart.Error != nil {
		return nil, apierr.Upstream("general", http.StatusOK, body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 || len(body.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, apierr.EmptyResult("general")
	}

	result := body.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	n := len(result.Timestamp)
	candles := make([]candle.Candle, 0, n)
	for i := 0; i < n; i++ {
		if i >= len(quote.Close) {
			break
		}
		candles = append(candles, candle.Candle{
			Time:   result.Timestamp[i],
			Open:   decimal.NewFromFloat(quote.Open[i]),
			High:   decimal.NewFromFloat(quote.High[i]),
			Low:    decimal.NewFromFloat(quote.Low[i]),
			Close:  decimal.NewFromFloat(quote.Close[i]),
			Volume: decimal.NewFromFloat(quote.Volume[i]),
		})
	}
	if len(candles) == 0 {
		return nil, apierr.EmptyResult("general")
	}
	if limit > 0 && len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	return candles, nil
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price         map[string]json.RawMessage `json:"price"`
			SummaryDetail map[string]json.RawMessage `json:"summaryDetail"`
			KeyStatistics map[string]json.RawMessage `json:"defaultKeyStatistics"`
			FinancialData map[string]json.RawMessage `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// rawValue is the {"raw": 1.23, "fmt": "1.23"} shape every numeric
// quote-summary field uses.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

// moduleFloat reads field's "raw" number from module. String-valued
// fields (shortName, currency) have no "raw"/"fmt" wrapper and are read
// directly by moduleString.
func moduleFloat(module map[string]json.RawMessage, field string) *float64 {
	raw, ok := module[field]
	if !ok {
		return nil
	}
	var v rawValue
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v.Raw
}

func moduleString(module map[string]json.RawMessage, field string) *string {
	raw, ok := module[field]
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// FetchFundamentals fetches a fundamentals snapshot for symbol, filling
// whatever fields the upstream quote-summary response carries — every
// field is optional, matching models/fundamental.rs's FundamentalsResponse.
func (p *GeneralMarketsProvider) FetchFundamentals(ctx context.Context, symbol string) (*params.FundamentalsResponse, error) {
	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=price,summaryDetail,defaultKeyStatistics,financialData", p.BaseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apierr.Network("general", err)
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, apierr.Network("general", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apierr.Upstream("general", resp.StatusCode, "")
	}

	var body quoteSummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apierr.Parse("general", err)
	}
	if body.QuoteSummary.Error != nil {
		return nil, apierr.Upstream("general", http.StatusOK, body.QuoteSummary.Error.Description)
	}
	if len(body.QuoteSummary.Result) == 0 {
		return nil, apierr.EmptyResult("general")
	}

	r := body.QuoteSummary.Result[0]
	return &params.FundamentalsResponse{
		Symbol:           symbol,
		ShortName:        moduleString(r.Price, "shortName"),
		Currency:         moduleString(r.Price, "currency"),
		MarketCap:        moduleFloat(r.Price, "marketCap"),
		TrailingPE:       moduleFloat(r.SummaryDetail, "trailingPE"),
		ForwardPE:        moduleFloat(r.SummaryDetail, "forwardPE"),
		PriceToBook:      moduleFloat(r.KeyStatistics, "priceToBook"),
		TrailingEPS:      moduleFloat(r.KeyStatistics, "trailingEps"),
		ForwardEPS:       moduleFloat(r.KeyStatistics, "forwardEps"),
		DividendYield:    moduleFloat(r.SummaryDetail, "dividendYield"),
		ReturnOnEquity:   moduleFloat(r.FinancialData, "returnOnEquity"),
		DebtToEquity:     moduleFloat(r.FinancialData, "debtToEquity"),
		RevenueGrowth:    moduleFloat(r.FinancialData, "revenueGrowth"),
		GrossMargins:     moduleFloat(r.FinancialData, "grossMargins"),
		OperatingMargins: moduleFloat(r.FinancialData, "operatingMargins"),
		ProfitMargins:    moduleFloat(r.FinancialData, "profitMargins"),
		FiftyTwoWeekHigh: moduleFloat(r.SummaryDetail, "fiftyTwoWeekHigh"),
		FiftyTwoWeekLow:  moduleFloat(r.SummaryDetail, "fiftyTwoWeekLow"),
		AverageVolume:    moduleFloat(r.SummaryDetail, "averageVolume"),
	}, nil
}
