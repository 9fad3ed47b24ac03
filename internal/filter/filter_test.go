package filter

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vantage-quant/taengine/internal/candle"
	"github.com/vantage-quant/taengine/internal/signals"
)

func flatCandles(n int, price float64) []candle.Candle {
	out := make([]candle.Candle, n)
	for i := 0; i < n; i++ {
		d := decimal.NewFromFloat(price)
		out[i] = candle.Candle{Time: int64(i) * 60, Open: d, High: d, Low: d, Close: d, Volume: decimal.NewFromInt(1)}
	}
	return out
}

func TestDisabledFilterPassesThrough(t *testing.T) {
	p := DefaultParams()
	p.Enabled = false
	sig := []signals.Point{{Time: 0, SignalType: signals.WeakBuy}}
	out := Apply(sig, flatCandles(5, 100), p)
	assert.Equal(t, sig, out)
}

func TestStrongSignalSurvivesCounterTrendRegime(t *testing.T) {
	p := DefaultParams()
	p.RegimePeriod = 5
	candles := flatCandles(10, 100)
	// Last close far below the flat regime SMA: a weak buy should be
	// rejected by the regime filter, a strong buy should survive via
	// KeepStrongCounterTrend.
	candles[9].Close = decimal.NewFromFloat(50)
	weak := []signals.Point{{Time: candles[9].Time, SignalType: signals.WeakBuy}}
	strong := []signals.Point{{Time: candles[9].Time, SignalType: signals.StrongBuy}}

	assert.Empty(t, Apply(weak, candles, p))
	assert.Len(t, Apply(strong, candles, p), 1)
}
