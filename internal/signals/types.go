// Package signals turns indicator output into discrete trade signals:
// the BB+RSI base detector, MACD/Stochastic crossovers, ten quant
// strategies, SMC structure events, and AutoFib levels. Every detector is
// pure — same indicator series in, same signal slice out — matching the
// no-I/O rule the kernels in internal/indicators already follow.
package signals

// Type is one of the four discrete signal strengths/directions.
type Type string

const (
	StrongBuy  Type = "strong_buy"
	WeakBuy    Type = "weak_buy"
	StrongSell Type = "strong_sell"
	WeakSell   Type = "weak_sell"
)

// Point is one emitted signal: a time, a strength/direction, the price at
// that time, and the RSI value that contributed to it (0 for detectors
// that don't consult RSI).
type Point struct {
	Time      int64   `json:"time"`
	SignalType Type   `json:"signalType"`
	Price     float64 `json:"price"`
	RSI       float64 `json:"rsi"`
	Source    string  `json:"source"`
}
