package indicators

import "math"

// Bollinger computes the Bollinger Bands using population (not sample)
// standard deviation of the trailing period closes, per the original
// engine's convention — confirmed against original_source/.../bollinger.rs.
func Bollinger(times []int64, closes []float64, period int, mult float64) []BollingerPoint {
	if period <= 0 || len(closes) < period {
		return nil
	}
	out := make([]BollingerPoint, 0, len(closes)-period+1)
	for i := period - 1; i < len(closes); i++ {
		window := closes[i-period+1 : i+1]
		mean := 0.0
		for _, v := range window {
			mean += v
		}
		mean /= float64(period)
		variance := 0.0
		for _, v := range window {
			d := v - mean
			variance += d * d
		}
		variance /= float64(period)
		stddev := math.Sqrt(variance)
		out = append(out, BollingerPoint{
			Time:   times[i],
			Upper:  mean + mult*stddev,
			Middle: mean,
			Lower:  mean - mult*stddev,
		})
	}
	return out
}

// trueRange is the classic max(high-low, |high-prevClose|, |low-prevClose|).
func trueRange(high, low, prevClose float64) float64 {
	hl := high - low
	hc := math.Abs(high - prevClose)
	lc := math.Abs(low - prevClose)
	return math.Max(hl, math.Max(hc, lc))
}

// ATR is Wilder's Average True Range: seeded with the simple mean of the
// first `period` true ranges (bar 0's true range is just high-low, since
// there is no previous close), then smoothed with Wilder's recursive
// formula atr[i] = (atr[i-1]*(period-1) + tr[i]) / period.
func ATR(times []int64, highs, lows, closes []float64, period int) []Point {
	n := len(closes)
	if period <= 0 || n < period+1 {
		return nil
	}
	tr := make([]float64, n)
	tr[0] = highs[0] - lows[0]
	for i := 1; i < n; i++ {
		tr[i] = trueRange(highs[i], lows[i], closes[i-1])
	}

	out := make([]Point, 0, n-period)
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += tr[i]
	}
	atr := sum / float64(period)
	out = append(out, Point{Time: times[period-1], Value: atr})
	for i := period; i < n; i++ {
		atr = (atr*float64(period-1) + tr[i]) / float64(period)
		out = append(out, Point{Time: times[i], Value: atr})
	}
	return out
}

// atrFloats is the plain float series underlying ATR, used by Keltner and
// Supertrend which both need ATR aligned to their own window arithmetic.
func atrFloats(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	if period <= 0 || n < period+1 {
		return nil
	}
	tr := make([]float64, n)
	tr[0] = highs[0] - lows[0]
	for i := 1; i < n; i++ {
		tr[i] = trueRange(highs[i], lows[i], closes[i-1])
	}
	out := make([]float64, 0, n-period+1)
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += tr[i]
	}
	atr := sum / float64(period)
	out = append(out, atr)
	for i := period; i < n; i++ {
		atr = (atr*float64(period-1) + tr[i]) / float64(period)
		out = append(out, atr)
	}
	return out
}

// Donchian is the classic highest-high / lowest-low channel over period
// bars, with the middle line as their average.
func Donchian(times []int64, highs, lows []float64, period int) []DonchianPoint {
	n := len(highs)
	if period <= 0 || n < period {
		return nil
	}
	out := make([]DonchianPoint, 0, n-period+1)
	for i := period - 1; i < n; i++ {
		hi, lo := highs[i-period+1], lows[i-period+1]
		for j := i - period + 2; j <= i; j++ {
			if highs[j] > hi {
				hi = highs[j]
			}
			if lows[j] < lo {
				lo = lows[j]
			}
		}
		out = append(out, DonchianPoint{Time: times[i], Upper: hi, Middle: (hi + lo) / 2, Lower: lo})
	}
	return out
}

// Keltner is EMA(close, emaPeriod) +/- atrMultiplier * ATR(atrPeriod).
func Keltner(times []int64, highs, lows, closes []float64, emaPeriod, atrPeriod int, mult float64) []KeltnerPoint {
	emaVals := emaSeries(closes, emaPeriod)
	atrVals := atrFloats(highs, lows, closes, atrPeriod)
	if emaVals == nil || atrVals == nil {
		return nil
	}
	// emaVals is aligned to times[emaPeriod-1:], atrVals to times[atrPeriod-1:].
	emaStart := emaPeriod - 1
	atrStart := atrPeriod - 1
	start := emaStart
	if atrStart > start {
		start = atrStart
	}
	out := make([]KeltnerPoint, 0)
	for i := start; i < len(closes); i++ {
		ema := emaVals[i-emaStart]
		atr := atrVals[i-atrStart]
		out = append(out, KeltnerPoint{
			Time:   times[i],
			Upper:  ema + mult*atr,
			Middle: ema,
			Lower:  ema - mult*atr,
		})
	}
	return out
}

// Choppiness is 100 * log10(sum(TR, period) / (maxHigh - minLow)) / log10(period),
// clamped to [0, 100]; high values indicate a ranging
// market, low values a trending one.
func Choppiness(times []int64, highs, lows, closes []float64, period int) []Point {
	n := len(closes)
	if period <= 0 || n < period+1 {
		return nil
	}
	tr := make([]float64, n)
	tr[0] = highs[0] - lows[0]
	for i := 1; i < n; i++ {
		tr[i] = trueRange(highs[i], lows[i], closes[i-1])
	}
	logPeriod := math.Log10(float64(period))
	out := make([]Point, 0, n-period)
	for i := period; i < n; i++ {
		sumTR := 0.0
		hi, lo := highs[i-period+1], lows[i-period+1]
		for j := i - period + 1; j <= i; j++ {
			sumTR += tr[j]
			if highs[j] > hi {
				hi = highs[j]
			}
			if lows[j] < lo {
				lo = lows[j]
			}
		}
		rangeHL := hi - lo
		var chop float64
		if rangeHL == 0 {
			chop = 0
		} else {
			chop = 100 * math.Log10(sumTR/rangeHL) / logPeriod
		}
		out = append(out, Point{Time: times[i], Value: clamp(chop, 0, 100)})
	}
	return out
}
