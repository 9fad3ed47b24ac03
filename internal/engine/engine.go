// Package engine orchestrates the pipeline every analysis request runs
// through: plan the native interval to fetch, hit the interval cache,
// fall back to the upstream provider, resample to the requested
// interval, run every opted-in indicator kernel, detect signals, run the
// quant filter, and assemble the response.
//
// The kernel fan-out is grounded on pkg/indicators/stack.go's
// MultiIndicatorStack.Analyze: one goroutine per indicator, a
// sync.WaitGroup, and a mutex-guarded result accumulation, generalized
// here from a fixed indicator set to whichever indicators the caller
// opted into via internal/params.AnalysisRequest.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vantage-quant/taengine/internal/apierr"
	"github.com/vantage-quant/taengine/internal/cache"
	"github.com/vantage-quant/taengine/internal/candle"
	"github.com/vantage-quant/taengine/internal/filter"
	"github.com/vantage-quant/taengine/internal/indicators"
	"github.com/vantage-quant/taengine/internal/interval"
	"github.com/vantage-quant/taengine/internal/logging"
	"github.com/vantage-quant/taengine/internal/marketdata"
	"github.com/vantage-quant/taengine/internal/metrics"
	"github.com/vantage-quant/taengine/internal/params"
	"github.com/vantage-quant/taengine/internal/signals"
)

// Engine wires every pure/impure component the analysis pipeline needs.
type Engine struct {
	Registry marketdata.Registry
	Cache    *cache.IntervalCache
	Logger   *logging.Logger
	Metrics  *metrics.Metrics
}

func New(registry marketdata.Registry, intervalCache *cache.IntervalCache, logger *logging.Logger, m *metrics.Metrics) *Engine {
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{Registry: registry, Cache: intervalCache, Logger: logger, Metrics: m}
}

// AnalysisResponse carries every series the caller opted into, plus the
// filtered, time-merged signal feed.
type AnalysisResponse struct {
	Symbol   string            `json:"symbol"`
	Market   params.MarketType `json:"market"`
	Interval string            `json:"interval"`

	Candles []candle.Candle `json:"candles"`

	SMA map[int][]indicators.Point `json:"sma,omitempty"`
	EMA map[int][]indicators.Point `json:"ema,omitempty"`
	HMA map[int][]indicators.Point `json:"hma,omitempty"`

	Bollinger    []indicators.BollingerPoint `json:"bollinger,omitempty"`
	RSI          []indicators.Point          `json:"rsi,omitempty"`
	MACD         []indicators.MacdPoint      `json:"macd,omitempty"`
	Stochastic   []indicators.StochasticPoint `json:"stochastic,omitempty"`
	OBV          []indicators.Point          `json:"obv,omitempty"`
	CVD          []indicators.Point          `json:"cvd,omitempty"`
	Donchian     []indicators.DonchianPoint  `json:"donchian,omitempty"`
	Keltner      []indicators.KeltnerPoint   `json:"keltner,omitempty"`
	MFI          []indicators.Point          `json:"mfi,omitempty"`
	CMF          []indicators.Point          `json:"cmf,omitempty"`
	Choppiness   []indicators.Point          `json:"choppiness,omitempty"`
	WilliamsR    []indicators.Point          `json:"williamsR,omitempty"`
	ADX          []indicators.AdxPoint       `json:"adx,omitempty"`
	STC          []indicators.Point          `json:"stc,omitempty"`
	SMC          []indicators.SmcEvent       `json:"smc,omitempty"`
	AnchoredVWAP []indicators.Point          `json:"anchoredVwap,omitempty"`
	AutoFib      *indicators.AutoFibResult   `json:"autoFib,omitempty"`
	Supertrend   []indicators.SupertrendPoint `json:"supertrend,omitempty"`
	VWAP         []indicators.Point          `json:"vwap,omitempty"`
	ParabolicSAR []indicators.Point          `json:"parabolicSar,omitempty"`
	Ichimoku     []indicators.IchimokuPoint  `json:"ichimoku,omitempty"`

	Signals []signals.Point `json:"signals"`
}

// FetchAnalysis runs the full pipeline for one symbol.
func (e *Engine) FetchAnalysis(ctx context.Context, req params.AnalysisRequest) (*AnalysisResponse, error) {
	start := time.Now()
	req.ApplyDefaults()

	candles, err := e.fetchCandles(ctx, req.Market, req.Symbol, req.Interval, req.Limit)
	if err != nil {
		e.recordOutcome(req.Market, "error", start)
		return nil, err
	}
	if err := candle.ValidateSeries(candles); err != nil {
		e.recordOutcome(req.Market, "error", start)
		return nil, fmt.Errorf("validate candle series: %w", err)
	}

	resp := e.computeIndicators(candles, req)
	resp.Symbol = req.Symbol
	resp.Market = req.Market
	resp.Interval = req.Interval
	resp.Candles = candles

	resp.Signals = e.detectSignals(candles, resp, req)
	resp.Signals = filter.Apply(resp.Signals, candles, req.SignalFilter.Resolve())

	e.recordOutcome(req.Market, "ok", start)
	return resp, nil
}

func (e *Engine) recordOutcome(market params.MarketType, outcome string, start time.Time) {
	if e.Metrics == nil {
		return
	}
	e.Metrics.AnalysisRequests.WithLabelValues(string(market), outcome).Inc()
	e.Metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
}

// fetchCandles resolves the native interval to fetch, serves from the
// interval cache when possible, and resamples to the requested
// interval otherwise (§4.5/§4.2 of the pipeline this mirrors).
func (e *Engine) fetchCandles(ctx context.Context, market params.MarketType, symbol, requestedInterval string, limit int) ([]candle.Candle, error) {
	source := e.Registry.Resolve(market)
	if source == nil {
		return nil, fmt.Errorf("no marketdata source configured for market %q", market)
	}

	plan, err := interval.PlanFor(requestedInterval, source.NativeIntervals())
	if err != nil {
		return nil, fmt.Errorf("plan interval: %w", err)
	}
	marketPrefix := string(market)

	fetchLimit := limit * plan.Factor
	if fetchLimit <= 0 {
		fetchLimit = limit
	}

	var native []candle.Candle
	if e.Cache != nil {
		if cached, ok := e.Cache.Get(ctx, marketPrefix, symbol, plan.Native); ok {
			e.recordCache(market, true)
			native = cached
		}
	}

	if native == nil {
		e.recordCache(market, false)
		fetchStart := time.Now()
		fetched, err := source.FetchCandles(ctx, symbol, plan.Native, fetchLimit)
		e.recordFetch(market, fetchStart, err)
		if err != nil {
			return nil, err
		}
		native = fetched
		if e.Cache != nil {
			if err := e.Cache.Set(ctx, marketPrefix, symbol, plan.Native, native); err != nil {
				e.Logger.WithError(err).Warn("failed to populate interval cache")
			}
		}
	}

	resampled := native
	if plan.Factor > 1 {
		resampled = interval.Resample(native, plan.Factor)
	}

	if limit > 0 && len(resampled) > limit {
		resampled = resampled[len(resampled)-limit:]
	}
	return resampled, nil
}

func (e *Engine) recordCache(market params.MarketType, hit bool) {
	if e.Metrics == nil {
		return
	}
	if hit {
		e.Metrics.CacheHits.WithLabelValues(string(market)).Inc()
	} else {
		e.Metrics.CacheMisses.WithLabelValues(string(market)).Inc()
	}
}

func (e *Engine) recordFetch(market params.MarketType, start time.Time, err error) {
	if e.Metrics == nil {
		return
	}
	e.Metrics.FetchTotal.WithLabelValues(string(market), "default").Inc()
	e.Metrics.FetchDuration.WithLabelValues(string(market), "default").Observe(time.Since(start).Seconds())
	if err != nil {
		category := "unknown"
		var ae *apierr.Error
		if errors.As(err, &ae) {
			category = string(ae.Category)
		}
		e.Metrics.FetchErrors.WithLabelValues(string(market), "default", category).Inc()
	}
}

// computeIndicators runs every opted-in kernel on its own goroutine, the
// same fan-out/mutex-accumulate shape as MultiIndicatorStack.Analyze. The
// shared mutex is held for the whole of each kernel call, so the kernels
// themselves execute one at a time.
func (e *Engine) computeIndicators(candles []candle.Candle, req params.AnalysisRequest) *AnalysisResponse {
	times := candle.Times(candles)
	closes := candle.Closes(candles)
	highs := candle.Highs(candles)
	lows := candle.Lows(candles)
	opens := candle.Opens(candles)
	volumes := candle.Volumes(candles)

	resp := &AnalysisResponse{
		SMA: make(map[int][]indicators.Point),
		EMA: make(map[int][]indicators.Point),
		HMA: make(map[int][]indicators.Point),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	run := func(name string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			mu.Lock()
			fn()
			mu.Unlock()
			if e.Metrics != nil {
				e.Metrics.IndicatorComputeDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
			}
		}()
	}

	for _, p := range req.SMAPeriods {
		period := p
		run(fmt.Sprintf("sma_%d", period), func() { resp.SMA[period] = indicators.SMA(times, closes, period) })
	}
	for _, p := range req.EMAPeriods {
		period := p
		run(fmt.Sprintf("ema_%d", period), func() { resp.EMA[period] = indicators.EMA(times, closes, period) })
	}
	for _, p := range req.HMAPeriods {
		period := p
		run(fmt.Sprintf("hma_%d", period), func() { resp.HMA[period] = indicators.HMA(times, closes, period) })
	}

	run("bollinger", func() { resp.Bollinger = indicators.Bollinger(times, closes, req.BBPeriod, req.BBMultiplier) })
	run("rsi", func() { resp.RSI = indicators.RSI(times, closes, req.RSIPeriod) })

	if req.MACD != nil {
		run("macd", func() {
			resp.MACD = indicators.MACD(times, closes, req.MACD.FastPeriod, req.MACD.SlowPeriod, req.MACD.SignalPeriod)
		})
	}
	if req.Stochastic != nil {
		run("stochastic", func() {
			resp.Stochastic = indicators.Stochastic(times, highs, lows, closes, req.Stochastic.KPeriod, req.Stochastic.DPeriod, req.Stochastic.Smooth)
		})
	}
	if req.ShowOBV {
		run("obv", func() { resp.OBV = indicators.OBV(times, closes, volumes) })
	}
	if req.ShowCVD {
		run("cvd", func() { resp.CVD = indicators.CVD(times, opens, closes, volumes) })
	}
	if req.Donchian != nil {
		run("donchian", func() { resp.Donchian = indicators.Donchian(times, highs, lows, req.Donchian.Period) })
	}
	if req.Keltner != nil {
		run("keltner", func() {
			resp.Keltner = indicators.Keltner(times, highs, lows, closes, req.Keltner.EMAPeriod, req.Keltner.ATRPeriod, req.Keltner.ATRMultiplier)
		})
	}
	if req.MFI != nil {
		run("mfi", func() { resp.MFI = indicators.MFI(times, highs, lows, closes, volumes, req.MFI.Period) })
	}
	if req.CMF != nil {
		run("cmf", func() { resp.CMF = indicators.CMF(times, highs, lows, closes, volumes, req.CMF.Period) })
	}
	if req.Choppiness != nil {
		run("choppiness", func() { resp.Choppiness = indicators.Choppiness(times, highs, lows, closes, req.Choppiness.Period) })
	}
	if req.WilliamsR != nil {
		run("williams_r", func() { resp.WilliamsR = indicators.WilliamsR(times, highs, lows, closes, req.WilliamsR.Period) })
	}
	if req.ADX != nil {
		run("adx", func() { resp.ADX = indicators.ADX(times, highs, lows, closes, req.ADX.Period) })
	}
	if req.STC != nil {
		run("stc", func() { resp.STC = indicators.STC(times, closes, req.STC.TCLen, req.STC.FastMA, req.STC.SlowMA) })
	}
	if req.SMC != nil {
		run("smc", func() { resp.SMC = indicators.SMC(times, highs, lows, req.SMC.SwingLength) })
	}
	if req.AnchoredVWAP != nil {
		run("anchored_vwap", func() {
			resp.AnchoredVWAP = indicators.AnchoredVWAP(times, highs, lows, closes, volumes, req.AnchoredVWAP.AnchorTime)
		})
	}
	if req.AutoFib != nil {
		run("auto_fib", func() {
			resp.AutoFib = indicators.AutoFib(times, highs, lows, req.AutoFib.Lookback, req.AutoFib.SwingLength)
		})
	}

	// Supertrend, VWAP, Ichimoku, and Parabolic SAR feed the quant
	// strategies below regardless of whether the caller asked for them
	// as standalone series, so they're always computed.
	run("supertrend", func() { resp.Supertrend = indicators.Supertrend(times, highs, lows, closes, 10, 3.0) })
	run("vwap", func() { resp.VWAP = indicators.VWAP(times, highs, lows, closes, volumes) })
	run("parabolic_sar", func() { resp.ParabolicSAR = indicators.ParabolicSAR(times, highs, lows, closes, 0.02, 0.2) })
	run("ichimoku", func() { resp.Ichimoku = indicators.Ichimoku(times, highs, lows, closes, 9, 26, 52, 26) })

	adxForStrategy := req.ADX != nil
	if !adxForStrategy {
		run("adx_internal", func() { resp.ADX = indicators.ADX(times, highs, lows, closes, params.DefaultADX) })
	}

	wg.Wait()
	return resp
}

// detectSignals runs the base detector, the crossover detectors, every
// quant strategy, and the structural (SMC/AutoFib) detectors, then
// merges everything into one time-ordered feed.
func (e *Engine) detectSignals(candles []candle.Candle, resp *AnalysisResponse, req params.AnalysisRequest) []signals.Point {
	closesByTime := make(map[int64]float64, len(candles))
	for _, c := range candles {
		closeF, _ := c.Close.Float64()
		closesByTime[c.Time] = closeF
	}

	var groups [][]signals.Point

	if len(resp.Bollinger) > 0 && len(resp.RSI) > 0 {
		groups = append(groups, signals.DetectBBRSI(closesByTime, resp.Bollinger, resp.RSI))
	}
	if len(resp.MACD) > 0 {
		groups = append(groups, signals.DetectMACDCross(resp.MACD, closesByTime))
		groups = append(groups, signals.StrategyMACDHistogramReversal(resp.MACD))
	}
	if len(resp.Stochastic) > 0 {
		groups = append(groups, signals.DetectStochasticCross(resp.Stochastic, closesByTime))
		if len(resp.RSI) > 0 {
			groups = append(groups, signals.StrategyStochRSI(resp.Stochastic, resp.RSI))
		}
	}
	if len(resp.Supertrend) > 0 && len(resp.ADX) > 0 {
		groups = append(groups, signals.StrategySupertrendADX(resp.Supertrend, resp.ADX))
	}
	if len(resp.EMA) >= 2 {
		fast, slow := fastestSlowestEMA(resp.EMA)
		if fast != nil && slow != nil {
			groups = append(groups, signals.StrategyEMACrossover(fast, slow))
		}
	}
	if len(resp.CMF) > 0 && len(resp.OBV) > 0 {
		groups = append(groups, signals.StrategyCMFOBV(resp.CMF, resp.OBV))
	}
	if len(resp.Bollinger) > 0 && len(resp.Keltner) > 0 {
		groups = append(groups, signals.StrategyTTMSqueeze(resp.Bollinger, resp.Keltner, closesByTime))
	}
	if len(resp.VWAP) > 0 {
		groups = append(groups, signals.StrategyVWAPBreakout(resp.VWAP, closesByTime))
	}
	if len(resp.ParabolicSAR) > 0 {
		groups = append(groups, signals.StrategyPSARReversal(resp.ParabolicSAR, closesByTime))
	}
	groups = append(groups, signals.StrategyIBSMeanReversion(candles))
	if len(resp.RSI) > 0 {
		groups = append(groups, signals.StrategyRSIDivergence(candle.Times(candles), candle.Closes(candles), resp.RSI))
	}
	if len(resp.SMC) > 0 {
		groups = append(groups, signals.FromSMC(resp.SMC))
	}
	if resp.AutoFib != nil && len(candles) > 0 {
		last := candles[len(candles)-1]
		lastClose, _ := last.Close.Float64()
		groups = append(groups, signals.FromAutoFib(resp.AutoFib, last.Time, lastClose))
	}

	return signals.MergeSorted(groups...)
}

func fastestSlowestEMA(ema map[int][]indicators.Point) ([]indicators.Point, []indicators.Point) {
	var fastPeriod, slowPeriod int
	for period := range ema {
		if fastPeriod == 0 || period < fastPeriod {
			fastPeriod = period
		}
		if period > slowPeriod {
			slowPeriod = period
		}
	}
	if fastPeriod == 0 || slowPeriod == 0 || fastPeriod == slowPeriod {
		return nil, nil
	}
	return ema[fastPeriod], ema[slowPeriod]
}

// MaxWatchlistItems caps a watchlist snapshot request; items beyond the
// cap are silently ignored (§5 — this is a deliberate rate-limit against
// upstream providers, not an error condition).
const MaxWatchlistItems = 24

// MaxMultiSymbolItems caps a multi-symbol analysis request.
const MaxMultiSymbolItems = 30

// FetchWatchlistSnapshots fetches a lightweight last-price/change/
// sparkline summary for up to MaxWatchlistItems items, processed in
// order, one at a time — a deliberate rate-limit against upstream
// providers (§5), not a goroutine fan-out. A single item's fetch
// failure is skipped rather than aborting the whole request.
func (e *Engine) FetchWatchlistSnapshots(ctx context.Context, req params.WatchlistSnapshotRequest) ([]params.WatchlistSnapshot, error) {
	items := req.Items
	if len(items) > MaxWatchlistItems {
		items = items[:MaxWatchlistItems]
	}

	snapshots := make([]params.WatchlistSnapshot, 0, len(items))
	for _, item := range items {
		candles, err := e.fetchCandles(ctx, item.Market, item.Symbol, req.Interval, req.Limit)
		if err != nil {
			e.Logger.WithSymbol(item.Symbol).WithError(err).Warn("skipping watchlist item after fetch failure")
			continue
		}
		snapshots = append(snapshots, snapshotFromCandles(item, candles))
	}
	return snapshots, nil
}

func snapshotFromCandles(item params.WatchlistItem, candles []candle.Candle) params.WatchlistSnapshot {
	snap := params.WatchlistSnapshot{Symbol: item.Symbol, Market: item.Market}
	if len(candles) == 0 {
		return snap
	}
	closes := candle.Closes(candles)
	highs := candle.Highs(candles)
	lows := candle.Lows(candles)

	last := closes[len(closes)-1]
	first := closes[0]
	snap.LastPrice = last
	snap.Change = last - first
	if first != 0 {
		snap.ChangePct = (last - first) / first * 100
	}
	snap.High = highs[0]
	snap.Low = lows[0]
	for _, h := range highs {
		if h > snap.High {
			snap.High = h
		}
	}
	for _, l := range lows {
		if l < snap.Low {
			snap.Low = l
		}
	}
	snap.Sparkline = closes
	return snap
}

// MultiSymbolAnalysisResult is fetchMultiSymbolAnalysis's accumulator:
// a per-symbol result map alongside a per-symbol error map, so one
// symbol's failure never discards the others' results (§4.6).
type MultiSymbolAnalysisResult struct {
	Results map[string]*AnalysisResponse `json:"results"`
	Errors  map[string]string            `json:"errors"`
}

// FetchMultiSymbolAnalysis runs FetchAnalysis for up to MaxMultiSymbolItems
// items from req.Items, sharing req.Analysis as the parameter template,
// processed sequentially in order (§4.6/§5 — the same deliberate
// rate-limit as FetchWatchlistSnapshots). A symbol's failure is recorded
// in Errors and does not stop the scan.
func (e *Engine) FetchMultiSymbolAnalysis(ctx context.Context, req params.MultiSymbolRequest) (*MultiSymbolAnalysisResult, error) {
	items := req.Items
	if len(items) > MaxMultiSymbolItems {
		items = items[:MaxMultiSymbolItems]
	}

	out := &MultiSymbolAnalysisResult{
		Results: make(map[string]*AnalysisResponse, len(items)),
		Errors:  make(map[string]string),
	}
	for _, item := range items {
		symbolReq := req.Analysis
		symbolReq.Symbol = item.Symbol
		symbolReq.Market = item.Market
		if req.Interval != "" {
			symbolReq.Interval = req.Interval
		}

		resp, err := e.FetchAnalysis(ctx, symbolReq)
		if err != nil {
			out.Errors[item.Symbol] = err.Error()
			continue
		}
		out.Results[item.Symbol] = resp
	}
	return out, nil
}

// FetchFundamentals fetches a fundamentals snapshot for one symbol; only
// general-markets symbols (forex/US stock/KR stock) carry fundamentals.
func (e *Engine) FetchFundamentals(ctx context.Context, req params.FundamentalsRequest) (*params.FundamentalsResponse, error) {
	if req.Market == params.MarketCrypto {
		return nil, fmt.Errorf("crypto symbols have no fundamentals")
	}
	source := e.Registry.Resolve(req.Market)
	fundamentalsSource, ok := source.(marketdata.FundamentalsSource)
	if !ok {
		return nil, fmt.Errorf("no fundamentals source configured for market %q", req.Market)
	}
	return fundamentalsSource.FetchFundamentals(ctx, req.Symbol)
}
