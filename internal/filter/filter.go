// Package filter implements the quant signal filter: regime, momentum,
// and volatility gates that suppress signals fighting the prevailing
// trend, conditions, or market calm — with explicit bypass rules for
// Strong-tier signals. Field names and every numeric default below are
// grounded on original_source/src-tauri/src/models/params.rs's
// SignalFilterParams.
package filter

import (
	"math"
	"sort"

	"github.com/vantage-quant/taengine/internal/candle"
	"github.com/vantage-quant/taengine/internal/signals"
)

// Params mirrors SignalFilterParams exactly, including every default.
type Params struct {
	Enabled                bool
	ApplyRegimeFilter      bool
	ApplyMomentumFilter    bool
	ApplyVolatilityFilter  bool
	RegimePeriod           int
	RegimeBuffer           float64
	MomentumPeriod         int
	MinMomentumForBuy      float64
	MaxMomentumForSell     float64
	VolatilityPeriod       int
	VolatilityRankPeriod   int
	HighVolPercentile      float64
	KeepStrongCounterTrend bool
	KeepStrongInHighVol    bool
}

// DefaultParams returns the original engine's default SignalFilterParams.
func DefaultParams() Params {
	return Params{
		Enabled:                true,
		ApplyRegimeFilter:      true,
		ApplyMomentumFilter:    true,
		ApplyVolatilityFilter:  true,
		RegimePeriod:           200,
		RegimeBuffer:           0.002,
		MomentumPeriod:         63,
		MinMomentumForBuy:      -0.05,
		MaxMomentumForSell:     0.05,
		VolatilityPeriod:       20,
		VolatilityRankPeriod:   120,
		HighVolPercentile:      0.90,
		KeepStrongCounterTrend: true,
		KeepStrongInHighVol:    true,
	}
}

func isBuy(t signals.Type) bool  { return t == signals.StrongBuy || t == signals.WeakBuy }
func isSell(t signals.Type) bool { return t == signals.StrongSell || t == signals.WeakSell }
func isStrong(t signals.Type) bool {
	return t == signals.StrongBuy || t == signals.StrongSell
}

// Apply filters sig against the regime/momentum/volatility gates computed
// from candles. When Params.Enabled is false, sig passes through
// unchanged.
func Apply(sig []signals.Point, candles []candle.Candle, p Params) []signals.Point {
	if !p.Enabled || len(sig) == 0 {
		return sig
	}

	closes := candle.Closes(candles)
	times := candle.Times(candles)
	indexByTime := make(map[int64]int, len(times))
	for i, t := range times {
		indexByTime[t] = i
	}

	regimeSMA := simpleMovingAverage(closes, p.RegimePeriod)
	volPercentile := volatilityPercentiles(closes, p.VolatilityPeriod, p.VolatilityRankPeriod)

	out := make([]signals.Point, 0, len(sig))
	for _, s := range sig {
		idx, ok := indexByTime[s.Time]
		if !ok {
			out = append(out, s)
			continue
		}

		strong := isStrong(s.SignalType)

		if p.ApplyRegimeFilter {
			if sma, ok := regimeSMA[idx]; ok {
				passes := regimePasses(s.SignalType, closes[idx], sma, p.RegimeBuffer)
				if !passes && !(strong && p.KeepStrongCounterTrend) {
					continue
				}
			}
		}

		if p.ApplyMomentumFilter {
			if mom, ok := momentumAt(closes, idx, p.MomentumPeriod); ok {
				passes := momentumPasses(s.SignalType, mom, p.MinMomentumForBuy, p.MaxMomentumForSell)
				// The strong-signal momentum bypass reuses
				// KeepStrongCounterTrend rather than a dedicated flag —
				// preserved verbatim, SignalFilterParams has no separate
				// momentum-bypass field.
				if !passes && !(strong && p.KeepStrongCounterTrend) {
					continue
				}
			}
		}

		if p.ApplyVolatilityFilter {
			if pct, ok := volPercentile[idx]; ok && pct >= p.HighVolPercentile {
				if strong {
					if !p.KeepStrongInHighVol {
						continue
					}
				} else {
					continue
				}
			}
		}

		out = append(out, s)
	}
	return out
}

func regimePasses(t signals.Type, close, sma, buffer float64) bool {
	upperBand := sma * (1 + buffer)
	lowerBand := sma * (1 - buffer)
	switch {
	case isBuy(t):
		return close >= lowerBand
	case isSell(t):
		return close <= upperBand
	default:
		return true
	}
}

func momentumPasses(t signals.Type, momentum, minForBuy, maxForSell float64) bool {
	switch {
	case isBuy(t):
		return momentum >= minForBuy
	case isSell(t):
		return momentum <= maxForSell
	default:
		return true
	}
}

func momentumAt(closes []float64, idx, period int) (float64, bool) {
	if idx-period < 0 {
		return 0, false
	}
	base := closes[idx-period]
	if base == 0 {
		return 0, false
	}
	return (closes[idx] - base) / base, true
}

func simpleMovingAverage(closes []float64, period int) map[int]float64 {
	out := make(map[int]float64)
	if period <= 0 || len(closes) < period {
		return out
	}
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += closes[i]
	}
	out[period-1] = sum / float64(period)
	for i := period; i < len(closes); i++ {
		sum += closes[i] - closes[i-period]
		out[i] = sum / float64(period)
	}
	return out
}

// volatilityPercentiles computes, for each index with enough history, the
// rolling stddev-of-returns over volPeriod bars and its percentile rank
// among the trailing rankPeriod such readings.
func volatilityPercentiles(closes []float64, volPeriod, rankPeriod int) map[int]float64 {
	out := make(map[int]float64)
	if volPeriod <= 1 || len(closes) < volPeriod+1 {
		return out
	}
	returns := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		if closes[i-1] != 0 {
			returns[i] = (closes[i] - closes[i-1]) / closes[i-1]
		}
	}

	vol := make(map[int]float64)
	for i := volPeriod; i < len(closes); i++ {
		window := returns[i-volPeriod+1 : i+1]
		mean := 0.0
		for _, r := range window {
			mean += r
		}
		mean /= float64(len(window))
		variance := 0.0
		for _, r := range window {
			d := r - mean
			variance += d * d
		}
		variance /= float64(len(window))
		vol[i] = math.Sqrt(variance)
	}

	volIndices := make([]int, 0, len(vol))
	for i := range vol {
		volIndices = append(volIndices, i)
	}
	sort.Ints(volIndices)

	for _, i := range volIndices {
		start := i - rankPeriod + 1
		if start < volPeriod {
			start = volPeriod
		}
		var window []float64
		for j := start; j <= i; j++ {
			if v, ok := vol[j]; ok {
				window = append(window, v)
			}
		}
		if len(window) < 10 {
			continue
		}
		below := 0
		for _, v := range window {
			if v <= vol[i] {
				below++
			}
		}
		out[i] = float64(below) / float64(len(window))
	}
	return out
}
