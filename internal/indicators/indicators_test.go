package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqTimes(n int) []int64 {
	times := make([]int64, n)
	for i := range times {
		times[i] = int64(i) * 60
	}
	return times
}

func TestSMABasic(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	times := seqTimes(len(closes))
	out := SMA(times, closes, 3)
	require.Len(t, out, 3)
	assert.Equal(t, times[2], out[0].Time)
	assert.InDelta(t, 2.0, out[0].Value, 1e-9)
	assert.InDelta(t, 3.0, out[1].Value, 1e-9)
	assert.InDelta(t, 4.0, out[2].Value, 1e-9)
}

func TestSMAInsufficientData(t *testing.T) {
	closes := []float64{1, 2}
	assert.Nil(t, SMA(seqTimes(2), closes, 5))
}

func TestBollingerConstantSeries(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100
	}
	out := Bollinger(seqTimes(len(closes)), closes, 20, 2)
	require.NotEmpty(t, out)
	for _, p := range out {
		assert.InDelta(t, 100.0, p.Upper, 1e-9)
		assert.InDelta(t, 100.0, p.Middle, 1e-9)
		assert.InDelta(t, 100.0, p.Lower, 1e-9)
	}
}

func TestRSIMonotoneRise(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = float64(i) + 1
	}
	out := RSI(seqTimes(len(closes)), closes, 14)
	require.NotEmpty(t, out)
	for _, p := range out {
		assert.InDelta(t, 100.0, p.Value, 1e-6)
	}
}

func TestSupertrendDirectionIsHardcodedNegativeOneInitially(t *testing.T) {
	n := 20
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		highs[i] = 110 + float64(i)
		lows[i] = 90 + float64(i)
		closes[i] = 100 + float64(i)
	}
	out := Supertrend(seqTimes(n), highs, lows, closes, 10, 3)
	require.NotEmpty(t, out)
	assert.Equal(t, int8(-1), out[0].Direction)
}

func TestWMAWeightsMostRecentHighest(t *testing.T) {
	closes := []float64{1, 1, 1, 10}
	out := WMA(seqTimes(4), closes, 4)
	require.Len(t, out, 1)
	// weights 1,2,3,4 summing to 10: (1+2+3+40)/10 = 4.6
	assert.InDelta(t, 4.6, out[0].Value, 1e-9)
}

func TestOBVAccumulatesOnDirectionalCloses(t *testing.T) {
	closes := []float64{10, 11, 10, 10}
	volumes := []float64{5, 5, 5, 5}
	out := OBV(seqTimes(4), closes, volumes)
	require.Len(t, out, 4)
	assert.InDelta(t, 0, out[0].Value, 1e-9)
	assert.InDelta(t, 5, out[1].Value, 1e-9)
	assert.InDelta(t, 0, out[2].Value, 1e-9)
	assert.InDelta(t, 0, out[3].Value, 1e-9)
}

func TestAutoFibUsesConfirmedSwingsNotRawExtremes(t *testing.T) {
	n := 11
	times := seqTimes(n)
	// index 5 is a confirmed swing high (clear of its 2 neighbors on both
	// sides); index 1's 150 spike is not a swing high once swingLength=2
	// neighbors are considered, so it must be ignored even though nothing
	// in the window exceeds 200 at index 5.
	highs := []float64{100, 150, 100, 100, 100, 200, 100, 100, 100, 100, 100}
	lows := []float64{90, 90, 90, 50, 90, 90, 90, 90, 90, 90, 90}
	result := AutoFib(times, highs, lows, n, 2)
	require.NotNil(t, result)
	assert.InDelta(t, 200, result.HighPrice, 1e-9)
	assert.InDelta(t, 50, result.LowPrice, 1e-9)
	assert.Equal(t, times[3], result.LowTime)
	assert.Equal(t, times[5], result.HighTime)
	assert.True(t, result.IsUptrend)
}

func TestVWAPClampsOnlyDenominatorVolume(t *testing.T) {
	times := seqTimes(2)
	highs := []float64{10, 10}
	lows := []float64{10, 10}
	closes := []float64{10, 10}
	volumes := []float64{5, -3}
	out := VWAP(times, highs, lows, closes, volumes)
	require.Len(t, out, 2)
	// bar 1: cumPV = 10*5 + 10*(-3) = 20, cumVol clamps -3 to 0 so cumVol=5
	assert.InDelta(t, 4.0, out[1].Value, 1e-9)
}

func TestCatalogCoversAllKernels(t *testing.T) {
	assert.Len(t, Catalog(), 26)
}
