package interval

import (
	"github.com/shopspring/decimal"
	"github.com/vantage-quant/taengine/internal/candle"
)

// Resample aggregates a native-interval candle series into bars of factor
// native bars each: open is the first bar's open, high/low the max/min
// across the bucket, close the last bar's close, volume the sum, and the
// bucket's timestamp is its first member's timestamp. A trailing partial
// bucket (fewer than factor bars) is still emitted — callers that need
// only complete buckets should drop the last element themselves.
func Resample(candles []candle.Candle, factor int) []candle.Candle {
	if factor <= 1 || len(candles) == 0 {
		return candles
	}
	out := make([]candle.Candle, 0, (len(candles)+factor-1)/factor)
	for i := 0; i < len(candles); i += factor {
		end := i + factor
		if end > len(candles) {
			end = len(candles)
		}
		out = append(out, aggregate(candles[i:end]))
	}
	return out
}

func aggregate(bucket []candle.Candle) candle.Candle {
	agg := candle.Candle{
		Time:   bucket[0].Time,
		Open:   bucket[0].Open,
		High:   bucket[0].High,
		Low:    bucket[0].Low,
		Close:  bucket[len(bucket)-1].Close,
		Volume: decimal.Zero,
	}
	for _, c := range bucket {
		if c.High.GreaterThan(agg.High) {
			agg.High = c.High
		}
		if c.Low.LessThan(agg.Low) {
			agg.Low = c.Low
		}
		agg.Volume = agg.Volume.Add(c.Volume)
	}
	return agg
}
