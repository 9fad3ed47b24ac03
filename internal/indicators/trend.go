package indicators

import "math"

// SMA is the simple moving average over period closes. The first point
// produced has Time == times[period-1]; there is no padding before that.
func SMA(times []int64, closes []float64, period int) []Point {
	if period <= 0 || len(closes) < period {
		return nil
	}
	out := make([]Point, 0, len(closes)-period+1)
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += closes[i]
	}
	out = append(out, Point{Time: times[period-1], Value: sum / float64(period)})
	for i := period; i < len(closes); i++ {
		sum += closes[i] - closes[i-period]
		out = append(out, Point{Time: times[i], Value: sum / float64(period)})
	}
	return out
}

// EMA is the exponential moving average, seeded with the SMA of the first
// period closes (the conventional seeding rule).
func EMA(times []int64, closes []float64, period int) []Point {
	if period <= 0 || len(closes) < period {
		return nil
	}
	out := make([]Point, 0, len(closes)-period+1)
	k := 2.0 / (float64(period) + 1.0)
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += closes[i]
	}
	seed /= float64(period)
	out = append(out, Point{Time: times[period-1], Value: seed})
	prev := seed
	for i := period; i < len(closes); i++ {
		v := (closes[i]-prev)*k + prev
		out = append(out, Point{Time: times[i], Value: v})
		prev = v
	}
	return out
}

// emaSeries returns the raw EMA float series aligned to closes[period-1:],
// used internally by kernels that chain EMA calls (MACD, STC, Keltner).
func emaSeries(closes []float64, period int) []float64 {
	if period <= 0 || len(closes) < period {
		return nil
	}
	out := make([]float64, 0, len(closes)-period+1)
	k := 2.0 / (float64(period) + 1.0)
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += closes[i]
	}
	seed /= float64(period)
	out = append(out, seed)
	prev := seed
	for i := period; i < len(closes); i++ {
		v := (closes[i]-prev)*k + prev
		out = append(out, v)
		prev = v
	}
	return out
}

// WMA is the linearly-weighted moving average: weight i+1 for the i-th
// oldest close in the window (most recent close weighted period).
func WMA(times []int64, closes []float64, period int) []Point {
	if period <= 0 || len(closes) < period {
		return nil
	}
	denom := float64(period*(period+1)) / 2.0
	out := make([]Point, 0, len(closes)-period+1)
	for i := period - 1; i < len(closes); i++ {
		sum := 0.0
		for j := 0; j < period; j++ {
			weight := float64(j + 1)
			sum += closes[i-period+1+j] * weight
		}
		out = append(out, Point{Time: times[i], Value: sum / denom})
	}
	return out
}

// HMA is the Hull Moving Average: WMA(2*WMA(n/2) - WMA(n), sqrt(n)).
func HMA(times []int64, closes []float64, period int) []Point {
	if period <= 1 || len(closes) < period {
		return nil
	}
	halfPeriod := period / 2
	sqrtPeriod := int(math.Sqrt(float64(period)))
	if halfPeriod < 1 || sqrtPeriod < 1 {
		return nil
	}

	wmaHalf := wmaFloats(closes, halfPeriod)
	wmaFull := wmaFloats(closes, period)
	if wmaHalf == nil || wmaFull == nil {
		return nil
	}

	// Align: wmaHalf starts at index halfPeriod-1, wmaFull at period-1.
	// The raw diff series starts wherever wmaFull starts (the later one).
	offset := period - halfPeriod
	n := len(wmaFull)
	raw := make([]float64, n)
	for i := 0; i < n; i++ {
		raw[i] = 2*wmaHalf[i+offset] - wmaFull[i]
	}

	rawTimes := times[period-1:]
	hmaPoints := wmaFloatsWithTimes(rawTimes, raw, sqrtPeriod)
	return hmaPoints
}

func wmaFloats(closes []float64, period int) []float64 {
	if period <= 0 || len(closes) < period {
		return nil
	}
	denom := float64(period*(period+1)) / 2.0
	out := make([]float64, 0, len(closes)-period+1)
	for i := period - 1; i < len(closes); i++ {
		sum := 0.0
		for j := 0; j < period; j++ {
			weight := float64(j + 1)
			sum += closes[i-period+1+j] * weight
		}
		out = append(out, sum/denom)
	}
	return out
}

func wmaFloatsWithTimes(times []int64, values []float64, period int) []Point {
	if period <= 0 || len(values) < period {
		return nil
	}
	denom := float64(period*(period+1)) / 2.0
	out := make([]Point, 0, len(values)-period+1)
	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		for j := 0; j < period; j++ {
			weight := float64(j + 1)
			sum += values[i-period+1+j] * weight
		}
		out = append(out, Point{Time: times[i], Value: sum / denom})
	}
	return out
}
