package signals

import (
	"github.com/vantage-quant/taengine/internal/candle"
	"github.com/vantage-quant/taengine/internal/indicators"
)

// StrategySupertrendADX: a Supertrend direction flip confirmed by a
// strong ADX reading (>25) is a StrongBuy/StrongSell; the same flip with
// ADX<=25 (a weak or absent trend) is downgraded to a WeakBuy/WeakSell.
func StrategySupertrendADX(st []indicators.SupertrendPoint, adx []indicators.AdxPoint) []Point {
	adxByTime := make(map[int64]float64, len(adx))
	for _, p := range adx {
		adxByTime[p.Time] = p.Adx
	}
	var out []Point
	for i := 1; i < len(st); i++ {
		prev, cur := st[i-1], st[i]
		if prev.Direction == cur.Direction {
			continue
		}
		adxVal := adxByTime[cur.Time]
		if cur.Direction == 1 {
			t := WeakBuy
			if adxVal > 25 {
				t = StrongBuy
			}
			out = append(out, Point{Time: cur.Time, SignalType: t, Price: cur.Value, Source: "supertrend_adx"})
		} else {
			t := WeakSell
			if adxVal > 25 {
				t = StrongSell
			}
			out = append(out, Point{Time: cur.Time, SignalType: t, Price: cur.Value, Source: "supertrend_adx"})
		}
	}
	return out
}

// StrategyEMACrossover: the fast EMA crossing above the slow EMA is a
// WeakBuy, crossing below is a WeakSell.
func StrategyEMACrossover(fast, slow []indicators.Point) []Point {
	slowByTime := make(map[int64]float64, len(slow))
	for _, p := range slow {
		slowByTime[p.Time] = p.Value
	}
	var out []Point
	var prevFast, prevSlow float64
	havePrev := false
	for _, f := range fast {
		s, ok := slowByTime[f.Time]
		if !ok {
			continue
		}
		if havePrev {
			if prevFast <= prevSlow && f.Value > s {
				out = append(out, Point{Time: f.Time, SignalType: WeakBuy, Price: f.Value, Source: "ema_crossover"})
			} else if prevFast >= prevSlow && f.Value < s {
				out = append(out, Point{Time: f.Time, SignalType: WeakSell, Price: f.Value, Source: "ema_crossover"})
			}
		}
		prevFast, prevSlow, havePrev = f.Value, s, true
	}
	return out
}

// StrategyStochRSI: both the Stochastic %K and RSI simultaneously
// oversold (<20/<30) is a StrongBuy; both simultaneously overbought
// (>80/>70) is a StrongSell.
func StrategyStochRSI(stoch []indicators.StochasticPoint, rsi []indicators.Point) []Point {
	rsiByTime := make(map[int64]float64, len(rsi))
	for _, p := range rsi {
		rsiByTime[p.Time] = p.Value
	}
	var out []Point
	for _, s := range stoch {
		r, ok := rsiByTime[s.Time]
		if !ok {
			continue
		}
		if s.K < 20 && r < 30 {
			out = append(out, Point{Time: s.Time, SignalType: StrongBuy, RSI: r, Source: "stoch_rsi"})
		} else if s.K > 80 && r > 70 {
			out = append(out, Point{Time: s.Time, SignalType: StrongSell, RSI: r, Source: "stoch_rsi"})
		}
	}
	return out
}

// StrategyCMFOBV: a positive Chaikin Money Flow paired with a rising OBV
// is a WeakBuy (accumulation); the mirrored negative/falling case is a
// WeakSell (distribution).
func StrategyCMFOBV(cmf, obv []indicators.Point) []Point {
	obvByTime := make(map[int64]float64, len(obv))
	obvOrder := make([]int64, 0, len(obv))
	for _, p := range obv {
		obvByTime[p.Time] = p.Value
		obvOrder = append(obvOrder, p.Time)
	}
	var out []Point
	var prevOBV float64
	havePrev := false
	obvIdx := map[int64]int{}
	for i, t := range obvOrder {
		obvIdx[t] = i
	}
	for _, c := range cmf {
		idx, ok := obvIdx[c.Time]
		if !ok || idx == 0 {
			continue
		}
		cur := obvByTime[c.Time]
		prevOBV = obvByTime[obvOrder[idx-1]]
		havePrev = true
		if !havePrev {
			continue
		}
		rising := cur > prevOBV
		if c.Value > 0 && rising {
			out = append(out, Point{Time: c.Time, SignalType: WeakBuy, Source: "cmf_obv"})
		} else if c.Value < 0 && !rising {
			out = append(out, Point{Time: c.Time, SignalType: WeakSell, Source: "cmf_obv"})
		}
	}
	return out
}

// StrategyTTMSqueeze: while the Bollinger Bands sit inside the Keltner
// Channel the market is "squeezed" (compressed volatility); the first bar
// after the bands expand back outside the channel is a breakout signal,
// directional on whether price closed above or below the Keltner middle.
func StrategyTTMSqueeze(bb []indicators.BollingerPoint, kc []indicators.KeltnerPoint, closesByTime map[int64]float64) []Point {
	kcByTime := make(map[int64]indicators.KeltnerPoint, len(kc))
	for _, p := range kc {
		kcByTime[p.Time] = p
	}
	var out []Point
	squeezed := false
	for _, b := range bb {
		k, ok := kcByTime[b.Time]
		if !ok {
			continue
		}
		inSqueeze := b.Upper < k.Upper && b.Lower > k.Lower
		if squeezed && !inSqueeze {
			close := closesByTime[b.Time]
			if close > k.Middle {
				out = append(out, Point{Time: b.Time, SignalType: WeakBuy, Price: close, Source: "ttm_squeeze"})
			} else {
				out = append(out, Point{Time: b.Time, SignalType: WeakSell, Price: close, Source: "ttm_squeeze"})
			}
		}
		squeezed = inSqueeze
	}
	return out
}

// StrategyVWAPBreakout: a close crossing above VWAP is a WeakBuy, crossing
// below is a WeakSell.
func StrategyVWAPBreakout(vwap []indicators.Point, closesByTime map[int64]float64) []Point {
	var out []Point
	var prevClose, prevVWAP float64
	havePrev := false
	for _, v := range vwap {
		close, ok := closesByTime[v.Time]
		if !ok {
			continue
		}
		if havePrev {
			if prevClose <= prevVWAP && close > v.Value {
				out = append(out, Point{Time: v.Time, SignalType: WeakBuy, Price: close, Source: "vwap_breakout"})
			} else if prevClose >= prevVWAP && close < v.Value {
				out = append(out, Point{Time: v.Time, SignalType: WeakSell, Price: close, Source: "vwap_breakout"})
			}
		}
		prevClose, prevVWAP, havePrev = close, v.Value, true
	}
	return out
}

// StrategyPSARReversal: the Parabolic SAR flipping from above price to
// below is a WeakBuy (trend turning bullish), and the mirrored flip is a
// WeakSell.
func StrategyPSARReversal(psar []indicators.Point, closesByTime map[int64]float64) []Point {
	var out []Point
	var prevAbove bool
	havePrev := false
	for _, p := range psar {
		close, ok := closesByTime[p.Time]
		if !ok {
			continue
		}
		above := p.Value > close
		if havePrev {
			if prevAbove && !above {
				out = append(out, Point{Time: p.Time, SignalType: WeakBuy, Price: close, Source: "psar_reversal"})
			} else if !prevAbove && above {
				out = append(out, Point{Time: p.Time, SignalType: WeakSell, Price: close, Source: "psar_reversal"})
			}
		}
		prevAbove, havePrev = above, true
	}
	return out
}

// StrategyMACDHistogramReversal: the MACD histogram shrinking for at
// least two bars then ticking back up is a WeakBuy (bearish momentum
// fading); the mirrored growing-then-ticking-down case is a WeakSell.
func StrategyMACDHistogramReversal(macd []indicators.MacdPoint) []Point {
	var out []Point
	for i := 2; i < len(macd); i++ {
		a, b, c := macd[i-2].Histogram, macd[i-1].Histogram, macd[i].Histogram
		if a > b && c > b && b < 0 {
			out = append(out, Point{Time: macd[i].Time, SignalType: WeakBuy, Source: "macd_histogram_reversal"})
		} else if a < b && c < b && b > 0 {
			out = append(out, Point{Time: macd[i].Time, SignalType: WeakSell, Source: "macd_histogram_reversal"})
		}
	}
	return out
}

// StrategyIBSMeanReversion: Internal Bar Strength ((close-low)/(high-low))
// near the bottom of the bar's own range (<0.2) is a WeakBuy; near the top
// (>0.8) is a WeakSell — a pure single-bar mean-reversion signal.
func StrategyIBSMeanReversion(candles []candle.Candle) []Point {
	var out []Point
	highs, lows, closes, times := candle.Highs(candles), candle.Lows(candles), candle.Closes(candles), candle.Times(candles)
	for i := range candles {
		rangeHL := highs[i] - lows[i]
		if rangeHL == 0 {
			continue
		}
		ibs := (closes[i] - lows[i]) / rangeHL
		if ibs < 0.2 {
			out = append(out, Point{Time: times[i], SignalType: WeakBuy, Price: closes[i], Source: "ibs_mean_reversion"})
		} else if ibs > 0.8 {
			out = append(out, Point{Time: times[i], SignalType: WeakSell, Price: closes[i], Source: "ibs_mean_reversion"})
		}
	}
	return out
}

// StrategyRSIDivergence: price setting a lower low while RSI sets a
// higher low over the same two pivots is a bullish (StrongBuy)
// divergence; the mirrored higher-high/lower-high pair is bearish
// (StrongSell). Pivots are simple local extrema over 5 bars on each side.
func StrategyRSIDivergence(times []int64, closes []float64, rsi []indicators.Point) []Point {
	rsiByTime := make(map[int64]float64, len(rsi))
	var rsiOrder []int64
	for _, p := range rsi {
		rsiByTime[p.Time] = p.Value
		rsiOrder = append(rsiOrder, p.Time)
	}
	closeByTime := make(map[int64]float64, len(times))
	for i, t := range times {
		closeByTime[t] = closes[i]
	}

	const window = 5
	type pivot struct {
		time  int64
		price float64
		rsi   float64
		low   bool
	}
	var pivots []pivot
	for i := window; i < len(rsiOrder)-window; i++ {
		t := rsiOrder[i]
		price, ok := closeByTime[t]
		if !ok {
			continue
		}
		isLow, isHigh := true, true
		for j := i - window; j <= i+window; j++ {
			if j == i {
				continue
			}
			pj, ok := closeByTime[rsiOrder[j]]
			if !ok {
				continue
			}
			if pj <= price {
				isLow = false
			}
			if pj >= price {
				isHigh = false
			}
		}
		if isLow {
			pivots = append(pivots, pivot{time: t, price: price, rsi: rsiByTime[t], low: true})
		}
		if isHigh {
			pivots = append(pivots, pivot{time: t, price: price, rsi: rsiByTime[t], low: false})
		}
	}

	var out []Point
	for i := 1; i < len(pivots); i++ {
		a, b := pivots[i-1], pivots[i]
		if a.low != b.low {
			continue
		}
		if a.low && b.price < a.price && b.rsi > a.rsi {
			out = append(out, Point{Time: b.time, SignalType: StrongBuy, Price: b.price, RSI: b.rsi, Source: "rsi_divergence"})
		} else if !a.low && b.price > a.price && b.rsi < a.rsi {
			out = append(out, Point{Time: b.time, SignalType: StrongSell, Price: b.price, RSI: b.rsi, Source: "rsi_divergence"})
		}
	}
	return out
}
