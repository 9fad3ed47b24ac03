package indicators

import "math"

// RSI is Wilder's Relative Strength Index: seeded with the simple mean
// gain/loss over the first period changes, then smoothed with Wilder's
// recursive formula. An RSI point needs period+1 closes (period changes).
func RSI(times []int64, closes []float64, period int) []Point {
	n := len(closes)
	if period <= 0 || n < period+1 {
		return nil
	}
	gains, losses := 0.0, 0.0
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	out := make([]Point, 0, n-period)
	out = append(out, Point{Time: times[period], Value: rsiFromAverages(avgGain, avgLoss)})

	for i := period + 1; i < n; i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out = append(out, Point{Time: times[i], Value: rsiFromAverages(avgGain, avgLoss)})
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// MACD is the standard fast-EMA minus slow-EMA, with its own EMA as the
// signal line and the histogram as macd-signal.
func MACD(times []int64, closes []float64, fast, slow, signal int) []MacdPoint {
	if len(closes) < slow {
		return nil
	}
	fastEMA := emaSeries(closes, fast)
	slowEMA := emaSeries(closes, slow)
	if fastEMA == nil || slowEMA == nil {
		return nil
	}
	// fastEMA aligned to times[fast-1:], slowEMA to times[slow-1:]; the
	// macd line only exists where both are defined, i.e. from slow-1 on.
	offset := slow - fast
	macdLine := make([]float64, len(slowEMA))
	for i := range slowEMA {
		macdLine[i] = fastEMA[i+offset] - slowEMA[i]
	}
	signalLine := emaSeries(macdLine, signal)
	if signalLine == nil {
		return nil
	}
	out := make([]MacdPoint, 0, len(signalLine))
	macdOffset := signal - 1
	timeOffset := slow - 1
	for i := range signalLine {
		macdVal := macdLine[i+macdOffset]
		out = append(out, MacdPoint{
			Time:      times[timeOffset+i+macdOffset],
			Macd:      macdVal,
			Signal:    signalLine[i],
			Histogram: macdVal - signalLine[i],
		})
	}
	return out
}

// Stochastic is the classic %K (raw, over kPeriod) smoothed by `smooth`,
// with %D as the dPeriod SMA of smoothed %K.
func Stochastic(times []int64, highs, lows, closes []float64, kPeriod, dPeriod, smooth int) []StochasticPoint {
	n := len(closes)
	if kPeriod <= 0 || n < kPeriod {
		return nil
	}
	rawK := make([]float64, 0, n-kPeriod+1)
	for i := kPeriod - 1; i < n; i++ {
		hi, lo := highs[i-kPeriod+1], lows[i-kPeriod+1]
		for j := i - kPeriod + 2; j <= i; j++ {
			if highs[j] > hi {
				hi = highs[j]
			}
			if lows[j] < lo {
				lo = lows[j]
			}
		}
		if hi == lo {
			// Degenerate window (no range to measure against) — avoid
			// division by zero and report the midpoint.
			rawK = append(rawK, 50)
		} else {
			rawK = append(rawK, 100*(closes[i]-lo)/(hi-lo))
		}
	}
	smoothedK := sma(rawK, smooth)
	if smoothedK == nil {
		return nil
	}
	dLine := sma(smoothedK, dPeriod)
	if dLine == nil {
		return nil
	}
	out := make([]StochasticPoint, 0, len(dLine))
	kOffset := dPeriod - 1
	timeOffset := kPeriod - 1 + smooth - 1
	for i := range dLine {
		out = append(out, StochasticPoint{
			Time: times[timeOffset+i+kOffset],
			K:    smoothedK[i+kOffset],
			D:    dLine[i],
		})
	}
	return out
}

func sma(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}
	out := make([]float64, 0, len(values)-period+1)
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	out = append(out, sum/float64(period))
	for i := period; i < len(values); i++ {
		sum += values[i] - values[i-period]
		out = append(out, sum/float64(period))
	}
	return out
}

// WilliamsR is -100*(highestHigh-close)/(highestHigh-lowestLow), the
// mirror image of %K on a -100..0 scale.
func WilliamsR(times []int64, highs, lows, closes []float64, period int) []Point {
	n := len(closes)
	if period <= 0 || n < period {
		return nil
	}
	out := make([]Point, 0, n-period+1)
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
		var v float64
		if hi == lo {
			v = 0
		} else {
			v = -100 * (hi - closes[i]) / (hi - lo)
		}
		out = append(out, Point{Time: times[i], Value: v})
	}
	return out
}

// ADX is Wilder's Average Directional Index, computed in two smoothing
// stages: +DM/-DM/TR are each Wilder-smoothed over period bars to produce
// +DI/-DI, then DX = 100*|+DI - -DI|/(+DI + -DI) is itself Wilder-smoothed
// over period bars to produce ADX.
func ADX(times []int64, highs, lows, closes []float64, period int) []AdxPoint {
	n := len(closes)
	if period <= 0 || n < 2*period+1 {
		return nil
	}
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	tr := make([]float64, n)
	tr[0] = highs[0] - lows[0]
	for i := 1; i < n; i++ {
		upMove := highs[i] - highs[i-1]
		downMove := lows[i-1] - lows[i]
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
		tr[i] = trueRange(highs[i], lows[i], closes[i-1])
	}

	wilderSmooth := func(vals []float64, period int) []float64 {
		out := make([]float64, len(vals))
		sum := 0.0
		for i := 1; i <= period; i++ {
			sum += vals[i]
		}
		out[period] = sum
		for i := period + 1; i < len(vals); i++ {
			out[i] = out[i-1] - out[i-1]/float64(period) + vals[i]
		}
		return out
	}

	smPlusDM := wilderSmooth(plusDM, period)
	smMinusDM := wilderSmooth(minusDM, period)
	smTR := wilderSmooth(tr, period)

	plusDI := make([]float64, n)
	minusDI := make([]float64, n)
	dx := make([]float64, n)
	for i := period; i < n; i++ {
		if smTR[i] == 0 {
			continue
		}
		plusDI[i] = 100 * smPlusDM[i] / smTR[i]
		minusDI[i] = 100 * smMinusDM[i] / smTR[i]
		sum := plusDI[i] + minusDI[i]
		if sum == 0 {
			dx[i] = 0
		} else {
			dx[i] = 100 * math.Abs(plusDI[i]-minusDI[i]) / sum
		}
	}

	firstIdx := 2*period - 1
	out := make([]AdxPoint, 0, n-firstIdx)
	sumDX := 0.0
	for i := period; i <= firstIdx; i++ {
		sumDX += dx[i]
	}
	adx := sumDX / float64(period)
	out = append(out, AdxPoint{Time: times[firstIdx], Adx: adx, PlusDI: plusDI[firstIdx], MinusDI: minusDI[firstIdx]})
	for i := firstIdx + 1; i < n; i++ {
		adx = (adx*float64(period-1) + dx[i]) / float64(period)
		out = append(out, AdxPoint{Time: times[i], Adx: adx, PlusDI: plusDI[i], MinusDI: minusDI[i]})
	}
	return out
}

// STC is the Schaff Trend Cycle: a double stochastic-smoothing of the
// MACD line (fastMA/slowMA EMAs) over tcLen bars, each stage smoothed with
// an EMA factor of 0.5 (the original engine's fixed factor, not the
// configurable-smoothing stochastic used elsewhere).
func STC(times []int64, closes []float64, tcLen, fastMA, slowMA int) []Point {
	if len(closes) < slowMA {
		return nil
	}
	fastEMA := emaSeries(closes, fastMA)
	slowEMA := emaSeries(closes, slowMA)
	if fastEMA == nil || slowEMA == nil {
		return nil
	}
	offset := slowMA - fastMA
	macd := make([]float64, len(slowEMA))
	for i := range slowEMA {
		macd[i] = fastEMA[i+offset] - slowEMA[i]
	}
	if len(macd) < tcLen {
		return nil
	}

	stoch1 := stochasticSmooth(macd, tcLen)
	if len(stoch1) < tcLen {
		return nil
	}
	stoch2 := stochasticSmooth(stoch1, tcLen)

	timeOffset := (slowMA - 1) + (tcLen-1)*2
	out := make([]Point, 0, len(stoch2))
	for i, v := range stoch2 {
		t := timeOffset + i
		if t >= len(times) {
			break
		}
		out = append(out, Point{Time: times[t], Value: clamp(v, 0, 100)})
	}
	return out
}

// stochasticSmooth fuses a trailing-window stochastic transform (0-100
// scale) with a fixed factor-0.5 EMA smoothing pass in a single recurrence:
// a degenerate (zero-range) window carries forward the previous smoothed
// value instead of computing a raw stochastic, and the smoothing itself is
// seeded at 0 rather than the first raw value. Used for both STC stages.
func stochasticSmooth(vals []float64, period int) []float64 {
	if period == 0 || len(vals) < period {
		return nil
	}
	const factor = 0.5
	out := make([]float64, 0, len(vals)-period+1)
	prevStoch := 0.0
	for i := period - 1; i < len(vals); i++ {
		hi, lo := vals[i-period+1], vals[i-period+1]
		for j := i - period + 2; j <= i; j++ {
			if vals[j] > hi {
				hi = vals[j]
			}
			if vals[j] < lo {
				lo = vals[j]
			}
		}
		var raw float64
		if math.Abs(hi-lo) < 1e-9 {
			raw = prevStoch
		} else {
			raw = 100 * (vals[i] - lo) / (hi - lo)
		}
		smoothed := prevStoch + factor*(raw-prevStoch)
		prevStoch = smoothed
		out = append(out, smoothed)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
