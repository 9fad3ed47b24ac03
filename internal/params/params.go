// Package params defines the request/response envelope types for the
// analysis engine's command surface — field names and defaults are
// grounded verbatim on
// original_source/src-tauri/src/models/{params,mod,watchlist,strategy,fundamental}.rs.
package params

import "github.com/vantage-quant/taengine/internal/filter"

// MarketType is a closed enum of the markets this engine understands.
type MarketType string

const (
	MarketCrypto  MarketType = "crypto"
	MarketForex   MarketType = "forex"
	MarketUSStock MarketType = "usStock"
	MarketKRStock MarketType = "krStock"
)

// MacdParams overrides MACD's three periods; zero values mean "use the
// engine default" (12/26/9).
type MacdParams struct {
	FastPeriod   int `json:"fastPeriod"`
	SlowPeriod   int `json:"slowPeriod"`
	SignalPeriod int `json:"signalPeriod"`
}

// StochasticParams overrides the Stochastic Oscillator's periods.
type StochasticParams struct {
	KPeriod int `json:"kPeriod"`
	DPeriod int `json:"dPeriod"`
	Smooth  int `json:"smooth"`
}

// DonchianParams overrides the Donchian Channel period.
type DonchianParams struct {
	Period int `json:"period"`
}

// KeltnerParams overrides the Keltner Channel's EMA/ATR periods and
// multiplier.
type KeltnerParams struct {
	EMAPeriod     int     `json:"emaPeriod"`
	ATRPeriod     int     `json:"atrPeriod"`
	ATRMultiplier float64 `json:"atrMultiplier"`
}

// MfiParams overrides the Money Flow Index period.
type MfiParams struct {
	Period int `json:"period"`
}

// CmfParams overrides the Chaikin Money Flow period.
type CmfParams struct {
	Period int `json:"period"`
}

// ChoppinessParams overrides the Choppiness Index period.
type ChoppinessParams struct {
	Period int `json:"period"`
}

// WillrParams overrides the Williams %R period.
type WillrParams struct {
	Period int `json:"period"`
}

// AdxParams overrides the ADX period.
type AdxParams struct {
	Period int `json:"period"`
}

// StcParams overrides the Schaff Trend Cycle's three periods.
type StcParams struct {
	TCLen   int `json:"tcLen"`
	FastMA  int `json:"fastMa"`
	SlowMA  int `json:"slowMa"`
}

// SmcParams overrides the Smart Money Concepts swing-detection length.
type SmcParams struct {
	SwingLength int `json:"swingLength"`
}

// AnchoredVwapParams carries the required anchor timestamp for Anchored
// VWAP (there is no meaningful default — it must be supplied).
type AnchoredVwapParams struct {
	AnchorTime int64 `json:"anchorTime"`
}

// AutoFibParams overrides Auto Fibonacci's lookback window and swing
// length.
type AutoFibParams struct {
	Lookback    int `json:"lookback"`
	SwingLength int `json:"swingLength"`
}

// SignalFilterParams is the wire-level mirror of filter.Params; Resolve
// fills in every default from filter.DefaultParams() for zero-valued
// fields left unset by the caller.
type SignalFilterParams struct {
	Enabled                *bool    `json:"enabled,omitempty"`
	ApplyRegimeFilter       *bool    `json:"applyRegimeFilter,omitempty"`
	ApplyMomentumFilter     *bool    `json:"applyMomentumFilter,omitempty"`
	ApplyVolatilityFilter   *bool    `json:"applyVolatilityFilter,omitempty"`
	RegimePeriod            int      `json:"regimePeriod,omitempty"`
	RegimeBuffer            float64  `json:"regimeBuffer,omitempty"`
	MomentumPeriod          int      `json:"momentumPeriod,omitempty"`
	MinMomentumForBuy       *float64 `json:"minMomentumForBuy,omitempty"`
	MaxMomentumForSell      *float64 `json:"maxMomentumForSell,omitempty"`
	VolatilityPeriod        int      `json:"volatilityPeriod,omitempty"`
	VolatilityRankPeriod    int      `json:"volatilityRankPeriod,omitempty"`
	HighVolPercentile       float64  `json:"highVolPercentile,omitempty"`
	KeepStrongCounterTrend  *bool    `json:"keepStrongCounterTrend,omitempty"`
	KeepStrongInHighVol     *bool    `json:"keepStrongInHighVol,omitempty"`
}

// Resolve merges s over filter.DefaultParams(), the same default-filling
// convention as the original engine's #[serde(default = "...")] fields.
func (s SignalFilterParams) Resolve() filter.Params {
	d := filter.DefaultParams()
	if s.Enabled != nil {
		d.Enabled = *s.Enabled
	}
	if s.ApplyRegimeFilter != nil {
		d.ApplyRegimeFilter = *s.ApplyRegimeFilter
	}
	if s.ApplyMomentumFilter != nil {
		d.ApplyMomentumFilter = *s.ApplyMomentumFilter
	}
	if s.ApplyVolatilityFilter != nil {
		d.ApplyVolatilityFilter = *s.ApplyVolatilityFilter
	}
	if s.RegimePeriod != 0 {
		d.RegimePeriod = s.RegimePeriod
	}
	if s.RegimeBuffer != 0 {
		d.RegimeBuffer = s.RegimeBuffer
	}
	if s.MomentumPeriod != 0 {
		d.MomentumPeriod = s.MomentumPeriod
	}
	if s.MinMomentumForBuy != nil {
		d.MinMomentumForBuy = *s.MinMomentumForBuy
	}
	if s.MaxMomentumForSell != nil {
		d.MaxMomentumForSell = *s.MaxMomentumForSell
	}
	if s.VolatilityPeriod != 0 {
		d.VolatilityPeriod = s.VolatilityPeriod
	}
	if s.VolatilityRankPeriod != 0 {
		d.VolatilityRankPeriod = s.VolatilityRankPeriod
	}
	if s.HighVolPercentile != 0 {
		d.HighVolPercentile = s.HighVolPercentile
	}
	if s.KeepStrongCounterTrend != nil {
		d.KeepStrongCounterTrend = *s.KeepStrongCounterTrend
	}
	if s.KeepStrongInHighVol != nil {
		d.KeepStrongInHighVol = *s.KeepStrongInHighVol
	}
	return d
}

// AnalysisRequest is the full opt-in parameter set for fetchAnalysis.
type AnalysisRequest struct {
	Symbol       string             `json:"symbol"`
	Interval     string             `json:"interval"`
	Market       MarketType         `json:"market,omitempty"`
	Limit        int                `json:"limit,omitempty"`
	BBPeriod     int                `json:"bbPeriod,omitempty"`
	BBMultiplier float64            `json:"bbMultiplier,omitempty"`
	RSIPeriod    int                `json:"rsiPeriod,omitempty"`
	SMAPeriods   []int              `json:"smaPeriods,omitempty"`
	EMAPeriods   []int              `json:"emaPeriods,omitempty"`
	HMAPeriods   []int              `json:"hmaPeriods,omitempty"`
	MACD         *MacdParams        `json:"macd,omitempty"`
	Stochastic   *StochasticParams  `json:"stochastic,omitempty"`
	ShowOBV      bool               `json:"showObv,omitempty"`
	ShowCVD      bool               `json:"showCvd,omitempty"`
	Donchian     *DonchianParams    `json:"donchian,omitempty"`
	Keltner      *KeltnerParams     `json:"keltner,omitempty"`
	MFI          *MfiParams         `json:"mfi,omitempty"`
	CMF          *CmfParams         `json:"cmf,omitempty"`
	Choppiness   *ChoppinessParams  `json:"choppiness,omitempty"`
	WilliamsR    *WillrParams       `json:"williamsR,omitempty"`
	ADX          *AdxParams         `json:"adx,omitempty"`
	STC          *StcParams         `json:"stc,omitempty"`
	SMC          *SmcParams         `json:"smc,omitempty"`
	AnchoredVWAP *AnchoredVwapParams `json:"anchoredVwap,omitempty"`
	AutoFib      *AutoFibParams     `json:"autoFib,omitempty"`
	SignalFilter SignalFilterParams `json:"signalFilter,omitempty"`
}

// Defaults matching the original engine's #[serde(default = ...)] values.
const (
	DefaultBBPeriod     = 20
	DefaultBBMultiplier = 2.0
	DefaultRSIPeriod    = 14
	DefaultMacdFast     = 12
	DefaultMacdSlow     = 26
	DefaultMacdSignal   = 9
	DefaultStochK       = 14
	DefaultStochD       = 3
	DefaultStochSmooth  = 3
	DefaultDonchian     = 20
	DefaultKeltnerEMA   = 20
	DefaultKeltnerATR   = 10
	DefaultKeltnerMult  = 2.0
	DefaultMFI          = 14
	DefaultCMF          = 20
	DefaultChoppiness   = 14
	DefaultWillr        = 14
	DefaultADX          = 14
	DefaultSTCTCLen     = 10
	DefaultSTCFastMA    = 23
	DefaultSTCSlowMA    = 50
	DefaultSMCSwing     = 5
	DefaultAutoFibLook  = 120
	DefaultAutoFibSwing = 5
	DefaultLimit        = 300
	DefaultInterval     = "1d"
	DefaultWatchlistLimit    = 96
	DefaultWatchlistInterval = "1d"
)

// ApplyDefaults fills the zero-valued BBPeriod, BBMultiplier, RSIPeriod,
// Market and Limit fields, and the zero-valued fields of a non-nil MACD or
// Stochastic block, with the original engine's default, the Go equivalent
// of Rust's #[serde(default = "fn")] field annotations. The other optional
// blocks (Donchian, Keltner, MFI, CMF, Choppiness, WilliamsR, ADX, STC,
// SMC, AutoFib) are not filled in; their zero fields reach the kernels as
// zero.
func (r *AnalysisRequest) ApplyDefaults() {
	if r.BBPeriod == 0 {
		r.BBPeriod = DefaultBBPeriod
	}
	if r.BBMultiplier == 0 {
		r.BBMultiplier = DefaultBBMultiplier
	}
	if r.RSIPeriod == 0 {
		r.RSIPeriod = DefaultRSIPeriod
	}
	if r.Market == "" {
		r.Market = MarketUSStock
	}
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	if r.MACD != nil {
		if r.MACD.FastPeriod == 0 {
			r.MACD.FastPeriod = DefaultMacdFast
		}
		if r.MACD.SlowPeriod == 0 {
			r.MACD.SlowPeriod = DefaultMacdSlow
		}
		if r.MACD.SignalPeriod == 0 {
			r.MACD.SignalPeriod = DefaultMacdSignal
		}
	}
	if r.Stochastic != nil {
		if r.Stochastic.KPeriod == 0 {
			r.Stochastic.KPeriod = DefaultStochK
		}
		if r.Stochastic.DPeriod == 0 {
			r.Stochastic.DPeriod = DefaultStochD
		}
		if r.Stochastic.Smooth == 0 {
			r.Stochastic.Smooth = DefaultStochSmooth
		}
	}
}

// WatchlistItem names one symbol/market pair in a watchlist request.
type WatchlistItem struct {
	Symbol string     `json:"symbol"`
	Market MarketType `json:"market"`
}

// WatchlistSnapshotRequest is the input to fetchWatchlistSnapshots.
type WatchlistSnapshotRequest struct {
	Items    []WatchlistItem `json:"items"`
	Interval string          `json:"interval"`
	Limit    int             `json:"limit"`
}

// WatchlistSnapshot is one lightweight per-symbol summary (no indicators).
type WatchlistSnapshot struct {
	Symbol     string     `json:"symbol"`
	Market     MarketType `json:"market"`
	LastPrice  float64    `json:"lastPrice"`
	Change     float64    `json:"change"`
	ChangePct  float64    `json:"changePct"`
	High       float64    `json:"high"`
	Low        float64    `json:"low"`
	Sparkline  []float64  `json:"sparkline"`
}

// FundamentalsRequest is the input to fetchFundamentals.
type FundamentalsRequest struct {
	Symbol string     `json:"symbol"`
	Market MarketType `json:"market"`
}

// FundamentalsResponse mirrors models/fundamental.rs's FundamentalsResponse
// field-for-field.
type FundamentalsResponse struct {
	Symbol             string     `json:"symbol"`
	Market             MarketType `json:"market"`
	ShortName          *string    `json:"shortName,omitempty"`
	Currency           *string    `json:"currency,omitempty"`
	MarketCap          *float64   `json:"marketCap,omitempty"`
	TrailingPE         *float64   `json:"trailingPe,omitempty"`
	ForwardPE          *float64   `json:"forwardPe,omitempty"`
	PriceToBook        *float64   `json:"priceToBook,omitempty"`
	TrailingEPS        *float64   `json:"trailingEps,omitempty"`
	ForwardEPS         *float64   `json:"forwardEps,omitempty"`
	DividendYield      *float64   `json:"dividendYield,omitempty"`
	ReturnOnEquity     *float64   `json:"returnOnEquity,omitempty"`
	DebtToEquity       *float64   `json:"debtToEquity,omitempty"`
	RevenueGrowth      *float64   `json:"revenueGrowth,omitempty"`
	GrossMargins       *float64   `json:"grossMargins,omitempty"`
	OperatingMargins   *float64   `json:"operatingMargins,omitempty"`
	ProfitMargins      *float64   `json:"profitMargins,omitempty"`
	FiftyTwoWeekHigh   *float64   `json:"fiftyTwoWeekHigh,omitempty"`
	FiftyTwoWeekLow    *float64   `json:"fiftyTwoWeekLow,omitempty"`
	AverageVolume      *float64   `json:"averageVolume,omitempty"`
}

// MultiSymbolRequest is the input to fetchMultiSymbolAnalysis (SPEC_FULL
// §4.6 supplement).
type MultiSymbolRequest struct {
	Items    []WatchlistItem `json:"items"`
	Interval string          `json:"interval"`
	Analysis AnalysisRequest `json:"analysisParams"`
}
