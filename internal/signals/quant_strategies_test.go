package signals

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vantage-quant/taengine/internal/candle"
	"github.com/vantage-quant/taengine/internal/indicators"
)

func TestStrategySupertrendADXStrongOnConfirmedTrend(t *testing.T) {
	st := []indicators.SupertrendPoint{
		{Time: 1, Value: 100, Direction: -1},
		{Time: 2, Value: 101, Direction: 1},
	}
	adx := []indicators.AdxPoint{{Time: 2, Adx: 30}}

	out := StrategySupertrendADX(st, adx)
	require.Len(t, out, 1)
	assert.Equal(t, StrongBuy, out[0].SignalType)
}

func TestStrategySupertrendADXWeakOnUnconfirmedTrend(t *testing.T) {
	st := []indicators.SupertrendPoint{
		{Time: 1, Value: 100, Direction: 1},
		{Time: 2, Value: 99, Direction: -1},
	}
	adx := []indicators.AdxPoint{{Time: 2, Adx: 15}}

	out := StrategySupertrendADX(st, adx)
	require.Len(t, out, 1)
	assert.Equal(t, WeakSell, out[0].SignalType)
}

func TestStrategySupertrendADXNoFlipNoSignal(t *testing.T) {
	st := []indicators.SupertrendPoint{
		{Time: 1, Value: 100, Direction: 1},
		{Time: 2, Value: 101, Direction: 1},
	}
	out := StrategySupertrendADX(st, nil)
	assert.Empty(t, out)
}

func TestStrategyEMACrossoverDetectsUpAndDownCross(t *testing.T) {
	fast := []indicators.Point{{Time: 1, Value: 99}, {Time: 2, Value: 101}, {Time: 3, Value: 98}}
	slow := []indicators.Point{{Time: 1, Value: 100}, {Time: 2, Value: 100}, {Time: 3, Value: 100}}

	out := StrategyEMACrossover(fast, slow)
	require.Len(t, out, 2)
	assert.Equal(t, WeakBuy, out[0].SignalType)
	assert.Equal(t, WeakSell, out[1].SignalType)
}

func TestStrategyStochRSIStrongBuyOnDoubleOversold(t *testing.T) {
	stoch := []indicators.StochasticPoint{{Time: 1, K: 10, D: 12}}
	rsi := []indicators.Point{{Time: 1, Value: 25}}

	out := StrategyStochRSI(stoch, rsi)
	require.Len(t, out, 1)
	assert.Equal(t, StrongBuy, out[0].SignalType)
}

func TestStrategyStochRSIStrongSellOnDoubleOverbought(t *testing.T) {
	stoch := []indicators.StochasticPoint{{Time: 1, K: 90, D: 88}}
	rsi := []indicators.Point{{Time: 1, Value: 80}}

	out := StrategyStochRSI(stoch, rsi)
	require.Len(t, out, 1)
	assert.Equal(t, StrongSell, out[0].SignalType)
}

func TestStrategyVWAPBreakoutDetectsCrossAbove(t *testing.T) {
	vwap := []indicators.Point{{Time: 1, Value: 100}, {Time: 2, Value: 100}}
	closes := map[int64]float64{1: 99, 2: 101}

	out := StrategyVWAPBreakout(vwap, closes)
	require.Len(t, out, 1)
	assert.Equal(t, WeakBuy, out[0].SignalType)
}

func TestStrategyPSARReversalDetectsBullishFlip(t *testing.T) {
	psar := []indicators.Point{{Time: 1, Value: 105}, {Time: 2, Value: 95}}
	closes := map[int64]float64{1: 100, 2: 100}

	out := StrategyPSARReversal(psar, closes)
	require.Len(t, out, 1)
	assert.Equal(t, WeakBuy, out[0].SignalType)
}

func TestStrategyIBSMeanReversionBuyNearBottomOfRange(t *testing.T) {
	candles := []candle.Candle{
		{Time: 1, Open: decimal.NewFromInt(100), High: decimal.NewFromInt(110), Low: decimal.NewFromInt(90), Close: decimal.NewFromInt(91)},
	}
	out := StrategyIBSMeanReversion(candles)
	require.Len(t, out, 1)
	assert.Equal(t, WeakBuy, out[0].SignalType)
}

func TestStrategyIBSMeanReversionSellNearTopOfRange(t *testing.T) {
	candles := []candle.Candle{
		{Time: 1, Open: decimal.NewFromInt(100), High: decimal.NewFromInt(110), Low: decimal.NewFromInt(90), Close: decimal.NewFromInt(109)},
	}
	out := StrategyIBSMeanReversion(candles)
	require.Len(t, out, 1)
	assert.Equal(t, WeakSell, out[0].SignalType)
}

func TestStrategyIBSMeanReversionSkipsZeroRangeBar(t *testing.T) {
	candles := []candle.Candle{
		{Time: 1, Open: decimal.NewFromInt(100), High: decimal.NewFromInt(100), Low: decimal.NewFromInt(100), Close: decimal.NewFromInt(100)},
	}
	out := StrategyIBSMeanReversion(candles)
	assert.Empty(t, out)
}

func TestStrategyMACDHistogramReversalBullish(t *testing.T) {
	macd := []indicators.MacdPoint{
		{Time: 1, Histogram: -0.1},
		{Time: 2, Histogram: -0.5},
		{Time: 3, Histogram: -0.2},
	}
	out := StrategyMACDHistogramReversal(macd)
	require.Len(t, out, 1)
	assert.Equal(t, WeakBuy, out[0].SignalType)
}
