package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vantage-quant/taengine/internal/indicators"
)

func TestDetectBBRSIStrongBuy(t *testing.T) {
	closes := map[int64]float64{1: 95}
	bb := []indicators.BollingerPoint{{Time: 1, Upper: 110, Middle: 100, Lower: 96}}
	rsi := []indicators.Point{{Time: 1, Value: 25}}

	out := DetectBBRSI(closes, bb, rsi)
	assertSingleSignal(t, out, StrongBuy)
}

func TestDetectBBRSIWeakBuyOnBandAloneOrOversoldAlone(t *testing.T) {
	closes := map[int64]float64{1: 95, 2: 105}
	bb := []indicators.BollingerPoint{
		{Time: 1, Upper: 110, Middle: 100, Lower: 96},
		{Time: 2, Upper: 110, Middle: 100, Lower: 96},
	}
	rsi := []indicators.Point{{Time: 1, Value: 45}, {Time: 2, Value: 25}}

	out := DetectBBRSI(closes, bb, rsi)
	assert.Len(t, out, 2)
	assert.Equal(t, WeakBuy, out[0].SignalType)
	assert.Equal(t, WeakBuy, out[1].SignalType)
}

func TestDetectBBRSIStrongSell(t *testing.T) {
	closes := map[int64]float64{1: 112}
	bb := []indicators.BollingerPoint{{Time: 1, Upper: 110, Middle: 100, Lower: 90}}
	rsi := []indicators.Point{{Time: 1, Value: 75}}

	out := DetectBBRSI(closes, bb, rsi)
	assertSingleSignal(t, out, StrongSell)
}

func TestDetectBBRSISkipsBarsMissingCloseOrRSI(t *testing.T) {
	bb := []indicators.BollingerPoint{{Time: 1, Upper: 110, Middle: 100, Lower: 90}}
	rsi := []indicators.Point{{Time: 2, Value: 75}}

	out := DetectBBRSI(map[int64]float64{}, bb, rsi)
	assert.Empty(t, out)
}

func TestDetectBBRSINeutralProducesNoSignal(t *testing.T) {
	closes := map[int64]float64{1: 100}
	bb := []indicators.BollingerPoint{{Time: 1, Upper: 110, Middle: 100, Lower: 90}}
	rsi := []indicators.Point{{Time: 1, Value: 50}}

	out := DetectBBRSI(closes, bb, rsi)
	assert.Empty(t, out)
}

func assertSingleSignal(t *testing.T, out []Point, want Type) {
	t.Helper()
	if assert.Len(t, out, 1) {
		assert.Equal(t, want, out[0].SignalType)
		assert.Equal(t, "bb_rsi", out[0].Source)
	}
}
