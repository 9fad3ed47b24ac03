package signals

import "github.com/vantage-quant/taengine/internal/indicators"

// DetectBBRSI is the base signal detector: a close at or below the lower
// Bollinger Band combined with an oversold RSI (<30) is a StrongBuy; a
// close at or below the lower band with RSI not yet oversold (or RSI
// oversold but the close not yet at the band) is a WeakBuy. The sell side
// mirrors this with the upper band and an overbought RSI (>70). A bar
// produces a signal only when bands and RSI are both defined at that
// time.
func DetectBBRSI(closesByTime map[int64]float64, bb []indicators.BollingerPoint, rsi []indicators.Point) []Point {
	rsiByTime := make(map[int64]float64, len(rsi))
	for _, p := range rsi {
		rsiByTime[p.Time] = p.Value
	}

	var out []Point
	for _, b := range bb {
		close, ok := closesByTime[b.Time]
		if !ok {
			continue
		}
		rsiVal, ok := rsiByTime[b.Time]
		if !ok {
			continue
		}

		belowLower := close <= b.Lower
		aboveUpper := close >= b.Upper
		oversold := rsiVal < 30
		overbought := rsiVal > 70

		switch {
		case belowLower && oversold:
			out = append(out, Point{Time: b.Time, SignalType: StrongBuy, Price: close, RSI: rsiVal, Source: "bb_rsi"})
		case belowLower || oversold:
			out = append(out, Point{Time: b.Time, SignalType: WeakBuy, Price: close, RSI: rsiVal, Source: "bb_rsi"})
		case aboveUpper && overbought:
			out = append(out, Point{Time: b.Time, SignalType: StrongSell, Price: close, RSI: rsiVal, Source: "bb_rsi"})
		case aboveUpper || overbought:
			out = append(out, Point{Time: b.Time, SignalType: WeakSell, Price: close, RSI: rsiVal, Source: "bb_rsi"})
		}
	}
	return out
}
