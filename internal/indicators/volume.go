package indicators

// OBV is On-Balance Volume: a running total that adds volume on an up
// close, subtracts it on a down close, and is unchanged on a flat close.
// The first bar seeds the running total at 0.
func OBV(times []int64, closes, volumes []float64) []Point {
	n := len(closes)
	if n == 0 {
		return nil
	}
	out := make([]Point, n)
	total := 0.0
	out[0] = Point{Time: times[0], Value: total}
	for i := 1; i < n; i++ {
		switch {
		case closes[i] > closes[i-1]:
			total += volumes[i]
		case closes[i] < closes[i-1]:
			total -= volumes[i]
		}
		out[i] = Point{Time: times[i], Value: total}
	}
	return out
}

// VWAP is the cumulative Volume-Weighted Average Price from the start of
// the series. Preserved verbatim from the original engine: the numerator
// (price*volume) uses each bar's raw volume, while the denominator's
// cumulative volume clamps each bar's contribution to max(volume, 0) —
// asymmetric by design in the source this was ported from, not a bug.
func VWAP(times []int64, highs, lows, closes, volumes []float64) []Point {
	n := len(closes)
	if n == 0 {
		return nil
	}
	out := make([]Point, n)
	cumPV := 0.0
	cumVol := 0.0
	for i := 0; i < n; i++ {
		typicalPrice := (highs[i] + lows[i] + closes[i]) / 3
		cumPV += typicalPrice * volumes[i]
		clampedVol := volumes[i]
		if clampedVol < 0 {
			clampedVol = 0
		}
		cumVol += clampedVol
		var v float64
		if cumVol == 0 {
			v = typicalPrice
		} else {
			v = cumPV / cumVol
		}
		out[i] = Point{Time: times[i], Value: v}
	}
	return out
}

// AnchoredVWAP is VWAP restarted at the first candle whose Time is >=
// anchorTime. Candles before the anchor produce no points.
func AnchoredVWAP(times []int64, highs, lows, closes, volumes []float64, anchorTime int64) []Point {
	startIdx := -1
	for i, t := range times {
		if t >= anchorTime {
			startIdx = i
			break
		}
	}
	if startIdx == -1 {
		return nil
	}
	return VWAP(times[startIdx:], highs[startIdx:], lows[startIdx:], closes[startIdx:], volumes[startIdx:])
}

// MFI is the Money Flow Index: the RSI-style formula applied to typical
// price * volume (raw money flow) instead of price changes, split into
// positive/negative flow by whether typical price rose or fell.
func MFI(times []int64, highs, lows, closes, volumes []float64, period int) []Point {
	n := len(closes)
	if period <= 0 || n < period+1 {
		return nil
	}
	typicalPrice := make([]float64, n)
	rawFlow := make([]float64, n)
	for i := 0; i < n; i++ {
		typicalPrice[i] = (highs[i] + lows[i] + closes[i]) / 3
		rawFlow[i] = typicalPrice[i] * volumes[i]
	}

	out := make([]Point, 0, n-period)
	for i := period; i < n; i++ {
		posFlow, negFlow := 0.0, 0.0
		for j := i - period + 1; j <= i; j++ {
			if typicalPrice[j] > typicalPrice[j-1] {
				posFlow += rawFlow[j]
			} else if typicalPrice[j] < typicalPrice[j-1] {
				negFlow += rawFlow[j]
			}
		}
		var mfi float64
		if negFlow == 0 {
			mfi = 100
		} else {
			ratio := posFlow / negFlow
			mfi = 100 - 100/(1+ratio)
		}
		out = append(out, Point{Time: times[i], Value: mfi})
	}
	return out
}

// CMF is Chaikin Money Flow: the period-sum of money-flow-volume divided
// by the period-sum of volume, where money-flow-multiplier is
// ((close-low)-(high-close))/(high-low).
func CMF(times []int64, highs, lows, closes, volumes []float64, period int) []Point {
	n := len(closes)
	if period <= 0 || n < period {
		return nil
	}
	mfv := make([]float64, n)
	for i := 0; i < n; i++ {
		rangeHL := highs[i] - lows[i]
		if rangeHL == 0 {
			mfv[i] = 0
			continue
		}
		mult := ((closes[i] - lows[i]) - (highs[i] - closes[i])) / rangeHL
		mfv[i] = mult * volumes[i]
	}
	out := make([]Point, 0, n-period+1)
	for i := period - 1; i < n; i++ {
		sumMFV, sumVol := 0.0, 0.0
		for j := i - period + 1; j <= i; j++ {
			sumMFV += mfv[j]
			sumVol += volumes[j]
		}
		var v float64
		if sumVol != 0 {
			v = sumMFV / sumVol
		}
		out = append(out, Point{Time: times[i], Value: v})
	}
	return out
}

// CVD is Cumulative Volume Delta: a running total of signed volume, where
// a bar's volume is added if its close is above its open and subtracted
// if below (flat bars contribute nothing) — a candle-level proxy for
// buy/sell pressure, distinct from OBV's close-to-close comparison.
func CVD(times []int64, opens, closes, volumes []float64) []Point {
	n := len(closes)
	if n == 0 {
		return nil
	}
	out := make([]Point, n)
	total := 0.0
	for i := 0; i < n; i++ {
		switch {
		case closes[i] > opens[i]:
			total += volumes[i]
		case closes[i] < opens[i]:
			total -= volumes[i]
		}
		out[i] = Point{Time: times[i], Value: total}
	}
	return out
}
