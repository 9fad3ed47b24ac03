// Package indicators implements the engine's ~25 pure indicator kernels.
// Every kernel takes float64 slices (candle.Closes/.Highs/.Lows/.Volumes)
// plus the int64 Time column and returns one of the point types below;
// a kernel never does I/O, never returns an error, and never looks at a
// clock — the same inputs always produce the same outputs. Time-aligned
// composition (§3/§4 of the spec this engine implements) means every
// point's Time is one of the input candles' Time values; warm-up points
// before a kernel has enough history are simply omitted rather than
// padded with zeros or NaNs.
package indicators

// Point is the common single-value series point shared by SMA, EMA, WMA,
// HMA, RSI, OBV, VWAP, AnchoredVWAP, ATR, ParabolicSAR, MFI, CMF,
// Choppiness, WilliamsR, CVD, and STC.
type Point struct {
	Time  int64   `json:"time"`
	Value float64 `json:"value"`
}

// BollingerPoint is one Bollinger Bands bar.
type BollingerPoint struct {
	Time  int64   `json:"time"`
	Upper float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower float64 `json:"lower"`
}

// MacdPoint is one MACD bar.
type MacdPoint struct {
	Time      int64   `json:"time"`
	Macd      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// StochasticPoint is one Stochastic Oscillator bar.
type StochasticPoint struct {
	Time int64   `json:"time"`
	K    float64 `json:"k"`
	D    float64 `json:"d"`
}

// IchimokuPoint is one Ichimoku Cloud bar. Fields are pointers because the
// conversion/base lines, the two spans, and the lagging line each have
// their own warm-up and future-shift rules and are frequently absent.
type IchimokuPoint struct {
	Time       int64    `json:"time"`
	Conversion *float64 `json:"conversion,omitempty"`
	Base       *float64 `json:"base,omitempty"`
	SpanA      *float64 `json:"spanA,omitempty"`
	SpanB      *float64 `json:"spanB,omitempty"`
	Lagging    *float64 `json:"lagging,omitempty"`
}

// SupertrendPoint is one Supertrend bar; Direction is +1 (bullish) or -1
// (bearish).
type SupertrendPoint struct {
	Time      int64   `json:"time"`
	Value     float64 `json:"value"`
	Direction int8    `json:"direction"`
}

// DonchianPoint is one Donchian Channel bar.
type DonchianPoint struct {
	Time   int64   `json:"time"`
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// KeltnerPoint is one Keltner Channel bar.
type KeltnerPoint struct {
	Time   int64   `json:"time"`
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// AdxPoint is one ADX/+DI/-DI bar.
type AdxPoint struct {
	Time    int64   `json:"time"`
	Adx     float64 `json:"adx"`
	PlusDI  float64 `json:"plusDi"`
	MinusDI float64 `json:"minusDi"`
}

// SmcEventType names one Smart-Money-Concepts structural event.
type SmcEventType string

const (
	SmcBosBull   SmcEventType = "bos_bull"
	SmcBosBear   SmcEventType = "bos_bear"
	SmcChochBull SmcEventType = "choch_bull"
	SmcChochBear SmcEventType = "choch_bear"
)

// SmcEvent is one break-of-structure or change-of-character event.
type SmcEvent struct {
	Time       int64        `json:"time"`
	EventType  SmcEventType `json:"eventType"`
	Price      float64      `json:"price"`
	SwingTime  int64        `json:"swingTime"`
	SwingPrice float64      `json:"swingPrice"`
}

// AutoFibLevel is one Fibonacci retracement ratio/price pair.
type AutoFibLevel struct {
	Ratio float64 `json:"ratio"`
	Price float64 `json:"price"`
}

// AutoFibResult is the whole Auto-Fibonacci retracement computation.
type AutoFibResult struct {
	HighTime  int64          `json:"highTime"`
	HighPrice float64        `json:"highPrice"`
	LowTime   int64          `json:"lowTime"`
	LowPrice  float64        `json:"lowPrice"`
	IsUptrend bool           `json:"isUptrend"`
	Levels    []AutoFibLevel `json:"levels"`
}

// Metadata describes one kernel for introspection (Catalog, below) —
// purely descriptive, no bearing on any kernel's numeric output.
type Metadata struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Parameters  []string `json:"parameters"`
}

// autoFibRatios are the standard retracement levels emitted by AutoFib.
var autoFibRatios = []float64{0.0, 0.236, 0.382, 0.5, 0.618, 0.786, 1.0}
