package signals

import "github.com/vantage-quant/taengine/internal/indicators"

// DetectMACDCross emits a WeakBuy when the MACD line crosses above its
// signal line and a WeakSell when it crosses below — a histogram sign
// flip between consecutive bars.
func DetectMACDCross(macd []indicators.MacdPoint, closesByTime map[int64]float64) []Point {
	var out []Point
	for i := 1; i < len(macd); i++ {
		prev, cur := macd[i-1], macd[i]
		if prev.Histogram <= 0 && cur.Histogram > 0 {
			out = append(out, Point{Time: cur.Time, SignalType: WeakBuy, Price: closesByTime[cur.Time], Source: "macd_cross"})
		} else if prev.Histogram >= 0 && cur.Histogram < 0 {
			out = append(out, Point{Time: cur.Time, SignalType: WeakSell, Price: closesByTime[cur.Time], Source: "macd_cross"})
		}
	}
	return out
}

// DetectStochasticCross emits a WeakBuy when %K crosses above %D while
// %K is below 20 (oversold crossover), and the mirrored WeakSell when
// %K crosses below %D while %K is above 80 (overbought crossover).
func DetectStochasticCross(stoch []indicators.StochasticPoint, closesByTime map[int64]float64) []Point {
	var out []Point
	for i := 1; i < len(stoch); i++ {
		prev, cur := stoch[i-1], stoch[i]
		crossedUp := prev.K <= prev.D && cur.K > cur.D
		crossedDown := prev.K >= prev.D && cur.K < cur.D
		switch {
		case crossedUp && cur.K < 20:
			out = append(out, Point{Time: cur.Time, SignalType: WeakBuy, Price: closesByTime[cur.Time], Source: "stochastic_cross"})
		case crossedDown && cur.K > 80:
			out = append(out, Point{Time: cur.Time, SignalType: WeakSell, Price: closesByTime[cur.Time], Source: "stochastic_cross"})
		}
	}
	return out
}
