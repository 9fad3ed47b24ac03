package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vantage-quant/taengine/internal/indicators"
)

func TestDetectMACDCrossUp(t *testing.T) {
	macd := []indicators.MacdPoint{
		{Time: 1, Histogram: -0.5},
		{Time: 2, Histogram: 0.3},
	}
	closes := map[int64]float64{2: 101.5}

	out := DetectMACDCross(macd, closes)
	require.Len(t, out, 1)
	assert.Equal(t, WeakBuy, out[0].SignalType)
	assert.Equal(t, 101.5, out[0].Price)
	assert.Equal(t, "macd_cross", out[0].Source)
}

func TestDetectMACDCrossDown(t *testing.T) {
	macd := []indicators.MacdPoint{
		{Time: 1, Histogram: 0.5},
		{Time: 2, Histogram: -0.2},
	}
	out := DetectMACDCross(macd, map[int64]float64{2: 99})
	require.Len(t, out, 1)
	assert.Equal(t, WeakSell, out[0].SignalType)
}

func TestDetectMACDCrossNoneWhenSameSign(t *testing.T) {
	macd := []indicators.MacdPoint{
		{Time: 1, Histogram: 0.5},
		{Time: 2, Histogram: 0.6},
	}
	out := DetectMACDCross(macd, map[int64]float64{2: 100})
	assert.Empty(t, out)
}

func TestDetectStochasticCrossUpOversold(t *testing.T) {
	stoch := []indicators.StochasticPoint{
		{Time: 1, K: 15, D: 18},
		{Time: 2, K: 19, D: 17},
	}
	out := DetectStochasticCross(stoch, map[int64]float64{2: 50})
	require.Len(t, out, 1)
	assert.Equal(t, WeakBuy, out[0].SignalType)
}

func TestDetectStochasticCrossDownOverbought(t *testing.T) {
	stoch := []indicators.StochasticPoint{
		{Time: 1, K: 85, D: 80},
		{Time: 2, K: 79, D: 82},
	}
	out := DetectStochasticCross(stoch, map[int64]float64{2: 50})
	require.Len(t, out, 1)
	assert.Equal(t, WeakSell, out[0].SignalType)
}

func TestDetectStochasticCrossIgnoredOutsideBands(t *testing.T) {
	stoch := []indicators.StochasticPoint{
		{Time: 1, K: 45, D: 48},
		{Time: 2, K: 49, D: 47},
	}
	out := DetectStochasticCross(stoch, map[int64]float64{2: 50})
	assert.Empty(t, out)
}
