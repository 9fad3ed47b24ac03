package signals

import (
	"sort"

	"github.com/vantage-quant/taengine/internal/indicators"
)

// FromSMC turns Smart-Money-Concepts structural events into signals: a
// bullish BOS/CHoCH is a StrongBuy, a bearish one a StrongSell — these are
// structure-confirmed breaks, not momentum guesses, so they carry the
// strong tier directly.
func FromSMC(events []indicators.SmcEvent) []Point {
	var out []Point
	for _, e := range events {
		switch e.EventType {
		case indicators.SmcBosBull, indicators.SmcChochBull:
			out = append(out, Point{Time: e.Time, SignalType: StrongBuy, Price: e.Price, Source: "smc_" + string(e.EventType)})
		case indicators.SmcBosBear, indicators.SmcChochBear:
			out = append(out, Point{Time: e.Time, SignalType: StrongSell, Price: e.Price, Source: "smc_" + string(e.EventType)})
		}
	}
	return out
}

// FromAutoFib emits a WeakBuy when the latest close sits at or below the
// 0.618 retracement level of an uptrend (a common "golden pocket" buy
// zone) and the mirrored WeakSell for a downtrend's 0.618 level.
func FromAutoFib(fib *indicators.AutoFibResult, lastTime int64, lastClose float64) []Point {
	if fib == nil {
		return nil
	}
	for _, lvl := range fib.Levels {
		if lvl.Ratio != 0.618 {
			continue
		}
		if fib.IsUptrend && lastClose <= lvl.Price {
			return []Point{{Time: lastTime, SignalType: WeakBuy, Price: lastClose, Source: "auto_fib"}}
		}
		if !fib.IsUptrend && lastClose >= lvl.Price {
			return []Point{{Time: lastTime, SignalType: WeakSell, Price: lastClose, Source: "auto_fib"}}
		}
	}
	return nil
}

// MergeSorted combines signal slices from every detector/strategy into one
// time-ordered slice, the shape the assembler hands to the quant filter.
func MergeSorted(groups ...[]Point) []Point {
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	out := make([]Point, 0, total)
	for _, g := range groups {
		out = append(out, g...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}
