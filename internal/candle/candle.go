// Package candle defines the OHLCV type shared by every stage of the
// analysis pipeline and the decimal/float64 boundary convention: values
// cross package boundaries as decimal.Decimal (the teacher's
// pkg/indicators.OHLCVData convention) and are converted to float64 only
// once, at the entry of a kernel's internal math.
package candle

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Candle is one OHLCV bar. Time is a Unix timestamp in seconds, matching
// the wire shape of every provider in internal/marketdata.
type Candle struct {
	Time   int64
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

// ValidateSeries enforces the one invariant the engine actually requires:
// candles are strictly ascending by Time. low<=open,close<=high is expected
// upstream but deliberately not enforced here (see spec data model notes) —
// a provider returning a malformed bar should not abort the whole series.
func ValidateSeries(candles []Candle) error {
	for i := 1; i < len(candles); i++ {
		if candles[i].Time <= candles[i-1].Time {
			return fmt.Errorf("candle series not strictly ascending at index %d: %d <= %d", i, candles[i].Time, candles[i-1].Time)
		}
	}
	return nil
}

// Closes extracts the Close column as float64, the shape every indicator
// kernel consumes internally.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i], _ = c.Close.Float64()
	}
	return out
}

// Highs extracts the High column as float64.
func Highs(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i], _ = c.High.Float64()
	}
	return out
}

// Lows extracts the Low column as float64.
func Lows(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i], _ = c.Low.Float64()
	}
	return out
}

// Opens extracts the Open column as float64.
func Opens(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i], _ = c.Open.Float64()
	}
	return out
}

// Volumes extracts the Volume column as float64.
func Volumes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i], _ = c.Volume.Float64()
	}
	return out
}

// Times extracts the Time column.
func Times(candles []Candle) []int64 {
	out := make([]int64, len(candles))
	for i, c := range candles {
		out[i] = c.Time
	}
	return out
}
