package indicators

import "math"

func highLowMid(highs, lows []float64, idx, period int) (float64, bool) {
	if idx-period+1 < 0 {
		return 0, false
	}
	hi, lo := highs[idx-period+1], lows[idx-period+1]
	for j := idx - period + 2; j <= idx; j++ {
		if highs[j] > hi {
			hi = highs[j]
		}
		if lows[j] < lo {
			lo = lows[j]
		}
	}
	return (hi + lo) / 2, true
}

// Ichimoku computes the five classic Ichimoku Cloud lines: the conversion
// line (Tenkan-sen, 9-period high/low midpoint), the base line (Kijun-sen,
// 26-period), Senkou Span A (the average of the two, future-shifted 26
// bars ahead), Senkou Span B (52-period high/low midpoint, also shifted
// 26 ahead), and the lagging line (Chikou Span: close shifted 26 bars
// into the past, i.e. the point plotted at index i carries closes[i+26]).
// displacement is conventionally 26; convPeriod 9, basePeriod 26,
// spanBPeriod 52.
func Ichimoku(times []int64, highs, lows, closes []float64, convPeriod, basePeriod, spanBPeriod, displacement int) []IchimokuPoint {
	n := len(closes)
	if n == 0 {
		return nil
	}
	out := make([]IchimokuPoint, n)
	for i := 0; i < n; i++ {
		out[i] = IchimokuPoint{Time: times[i]}
	}
	for i := 0; i < n; i++ {
		if v, ok := highLowMid(highs, lows, i, convPeriod); ok {
			vv := v
			out[i].Conversion = &vv
		}
		if v, ok := highLowMid(highs, lows, i, basePeriod); ok {
			vv := v
			out[i].Base = &vv
		}
	}
	for i := 0; i < n; i++ {
		srcIdx := i - displacement
		if srcIdx < 0 || out[srcIdx].Conversion == nil || out[srcIdx].Base == nil {
			continue
		}
		spanA := (*out[srcIdx].Conversion + *out[srcIdx].Base) / 2
		out[i].SpanA = &spanA
		if v, ok := highLowMid(highs, lows, srcIdx, spanBPeriod); ok {
			vv := v
			out[i].SpanB = &vv
		}
	}
	for i := 0; i < n; i++ {
		futureIdx := i + displacement
		if futureIdx < n {
			v := closes[futureIdx]
			out[i].Lagging = &v
		}
	}
	return out
}

// Supertrend is the classic ATR-banded trend-following overlay. Its
// initial direction is hardcoded to -1 (bearish) for the first computable
// bar regardless of price action — preserved verbatim from the original
// engine, which never evaluates price against the bands on bar zero. Final
// bands are "sticky": the upper band only moves down (or stays) while
// price remains below it, and the lower band only moves up (or stays)
// while price remains above it; direction flips only when price crosses
// the currently-active final band.
func Supertrend(times []int64, highs, lows, closes []float64, period int, mult float64) []SupertrendPoint {
	atr := atrFloats(highs, lows, closes, period)
	if atr == nil {
		return nil
	}
	start := period // not used for alignment; see timeOffset
	// atrFloats[0] corresponds to times[period-1] (see ATR/atrFloats).
	timeOffset := period - 1

	n := len(atr)
	finalUpper := make([]float64, n)
	finalLower := make([]float64, n)
	direction := make([]int8, n)
	value := make([]float64, n)

	for i := 0; i < n; i++ {
		idx := timeOffset + i
		mid := (highs[idx] + lows[idx]) / 2
		basicUpper := mid + mult*atr[i]
		basicLower := mid - mult*atr[i]

		if i == 0 {
			finalUpper[i] = basicUpper
			finalLower[i] = basicLower
			direction[i] = -1
			value[i] = finalUpper[i]
			continue
		}

		if basicUpper < finalUpper[i-1] || closes[idx-1] > finalUpper[i-1] {
			finalUpper[i] = basicUpper
		} else {
			finalUpper[i] = finalUpper[i-1]
		}
		if basicLower > finalLower[i-1] || closes[idx-1] < finalLower[i-1] {
			finalLower[i] = basicLower
		} else {
			finalLower[i] = finalLower[i-1]
		}

		switch direction[i-1] {
		case -1:
			if closes[idx] > finalUpper[i] {
				direction[i] = 1
			} else {
				direction[i] = -1
			}
		default:
			if closes[idx] < finalLower[i] {
				direction[i] = -1
			} else {
				direction[i] = 1
			}
		}

		if direction[i] == 1 {
			value[i] = finalLower[i]
		} else {
			value[i] = finalUpper[i]
		}
	}

	out := make([]SupertrendPoint, n)
	for i := 0; i < n; i++ {
		out[i] = SupertrendPoint{Time: times[timeOffset+i], Value: value[i], Direction: direction[i]}
	}
	_ = start
	return out
}

// ParabolicSAR is Wilder's Parabolic Stop-And-Reverse: acceleration factor
// starts at step and increases by step (capped at maxStep) each time a new
// extreme point is set in the current trend direction; the SAR is clamped
// so it never enters the prior two bars' high/low range. The initial trend
// is derived from candle[1].close vs candle[0].close, not assumed bullish.
func ParabolicSAR(times []int64, highs, lows, closes []float64, step, maxStep float64) []Point {
	n := len(highs)
	if n < 2 {
		return nil
	}
	out := make([]Point, n)

	uptrend := closes[1] >= closes[0]
	af := step
	var ep, sar float64
	if uptrend {
		sar = lows[0]
		ep = math.Max(highs[0], highs[1])
	} else {
		sar = highs[0]
		ep = math.Min(lows[0], lows[1])
	}

	out[0] = Point{Time: times[0], Value: sar}

	for i := 1; i < n; i++ {
		prevSAR := sar
		sar = prevSAR + af*(ep-prevSAR)

		if uptrend {
			if i >= 2 {
				sar = math.Min(sar, math.Min(lows[i-1], lows[i-2]))
			} else {
				sar = math.Min(sar, lows[i-1])
			}
			if lows[i] < sar {
				uptrend = false
				sar = ep
				ep = lows[i]
				af = step
			} else {
				if highs[i] > ep {
					ep = highs[i]
					af = math.Min(af+step, maxStep)
				}
			}
		} else {
			if i >= 2 {
				sar = math.Max(sar, math.Max(highs[i-1], highs[i-2]))
			} else {
				sar = math.Max(sar, highs[i-1])
			}
			if highs[i] > sar {
				uptrend = true
				sar = ep
				ep = highs[i]
				af = step
			} else {
				if lows[i] < ep {
					ep = lows[i]
					af = math.Min(af+step, maxStep)
				}
			}
		}

		out[i] = Point{Time: times[i], Value: sar}
	}
	return out
}
