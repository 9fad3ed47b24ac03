package interval

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantage-quant/taengine/internal/candle"
)

func TestDurationParsesEveryUnit(t *testing.T) {
	cases := map[string]time.Duration{
		"5m":  5 * time.Minute,
		"2h":  2 * time.Hour,
		"1d":  24 * time.Hour,
		"1w":  7 * 24 * time.Hour,
		"1M":  30 * 24 * time.Hour,
		"15m": 15 * time.Minute,
	}
	for s, want := range cases {
		got, err := Duration(s)
		require.NoError(t, err)
		assert.Equal(t, want, got, s)
	}
}

func TestDurationRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "5", "m5", "5x", "0m", "-5m"} {
		_, err := Duration(s)
		assert.Error(t, err, s)
	}
}

// PlanFor(4h) against crypto's native set picks 4h itself with factor 1:
// 4h is native, so it is the largest native interval that evenly divides
// the request.
func TestPlanForPicksEvenDivisorOnCrypto(t *testing.T) {
	native := []string{"1m", "3m", "5m", "15m", "30m", "1h", "2h", "4h", "6h", "8h", "12h", "1d", "1w", "1M"}
	plan, err := PlanFor("4h", native)
	require.NoError(t, err)
	assert.Equal(t, "4h", plan.Requested)
	assert.Equal(t, "4h", plan.Native)
	assert.Equal(t, 1, plan.Factor)
}

// US stocks (general-markets native set) has no native 4h granularity, so
// requesting 4h must fall back to the largest native interval that evenly
// divides it: 1h, factor 4.
func TestPlanFor4hOnUSStocksFallsBackToHourlyFactorFour(t *testing.T) {
	native := []string{"1m", "2m", "5m", "15m", "30m", "1h", "1d", "1w", "1M"}
	plan, err := PlanFor("4h", native)
	require.NoError(t, err)
	assert.Equal(t, "1h", plan.Native)
	assert.Equal(t, 4, plan.Factor)
}

// A requested interval that no native interval evenly divides (e.g. 5h,
// with only 1h/1d/1w/1M natively available) falls back to the smallest
// native interval with Factor 1 rather than aggregating unevenly.
func TestPlanForNonDivisorFallsBackToSmallestNativeFactorOne(t *testing.T) {
	native := []string{"1h", "1d", "1w", "1M"}
	plan, err := PlanFor("5h", native)
	require.NoError(t, err)
	assert.Equal(t, "1h", plan.Native)
	assert.Equal(t, 1, plan.Factor)
}

func TestPlanForUnparseableRequestedFallsBackToDefaultInterval(t *testing.T) {
	native := []string{"1m", "1h", "1d"}
	plan, err := PlanFor("not-an-interval", native)
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, plan.Requested)
}

func hourlyCandles(n int) []candle.Candle {
	candles := make([]candle.Candle, n)
	for i := 0; i < n; i++ {
		price := decimal.NewFromInt(int64(100 + i))
		candles[i] = candle.Candle{
			Time:   int64(i) * 3600,
			Open:   price,
			High:   price.Add(decimal.NewFromInt(1)),
			Low:    price.Sub(decimal.NewFromInt(1)),
			Close:  price,
			Volume: decimal.NewFromInt(10),
		}
	}
	return candles
}

// Resampling a 1h-native series by factor 4 (to build 4h bars) must
// aggregate open/high/low/close/volume correctly per bucket, and the
// bucket timestamp is its first member's.
func TestResample1hTo4h(t *testing.T) {
	candles := hourlyCandles(8)
	out := Resample(candles, 4)
	require.Len(t, out, 2)

	first := out[0]
	assert.Equal(t, int64(0), first.Time)
	assert.True(t, first.Open.Equal(candles[0].Open))
	assert.True(t, first.Close.Equal(candles[3].Close))
	assert.True(t, first.High.Equal(candles[3].High))
	assert.True(t, first.Low.Equal(candles[0].Low))
	assert.True(t, first.Volume.Equal(decimal.NewFromInt(40)))

	second := out[1]
	assert.Equal(t, candles[4].Time, second.Time)
	assert.True(t, second.Close.Equal(candles[7].Close))
}

func TestResampleFactorOneIsIdentity(t *testing.T) {
	candles := hourlyCandles(3)
	out := Resample(candles, 1)
	assert.Equal(t, candles, out)
}

func TestResampleEmitsTrailingPartialBucket(t *testing.T) {
	candles := hourlyCandles(5)
	out := Resample(candles, 4)
	require.Len(t, out, 2)
	assert.Equal(t, candles[4].Time, out[1].Time)
	assert.True(t, out[1].Close.Equal(candles[4].Close))
}
