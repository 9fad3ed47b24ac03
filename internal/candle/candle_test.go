package candle

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCandles(times []int64) []Candle {
	out := make([]Candle, len(times))
	for i, ts := range times {
		price := decimal.NewFromInt(int64(100 + i))
		out[i] = Candle{
			Time:   ts,
			Open:   price,
			High:   price.Add(decimal.NewFromInt(1)),
			Low:    price.Sub(decimal.NewFromInt(1)),
			Close:  price,
			Volume: decimal.NewFromInt(int64(1000 + i)),
		}
	}
	return out
}

func TestValidateSeriesAcceptsStrictlyAscending(t *testing.T) {
	series := makeCandles([]int64{1, 2, 3, 4})
	assert.NoError(t, ValidateSeries(series))
}

func TestValidateSeriesRejectsEqualTimestamps(t *testing.T) {
	series := makeCandles([]int64{1, 2, 2, 4})
	err := ValidateSeries(series)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 2")
}

func TestValidateSeriesRejectsOutOfOrder(t *testing.T) {
	series := makeCandles([]int64{1, 5, 3})
	err := ValidateSeries(series)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 2")
}

func TestValidateSeriesAcceptsEmptyAndSingleton(t *testing.T) {
	assert.NoError(t, ValidateSeries(nil))
	assert.NoError(t, ValidateSeries(makeCandles([]int64{1})))
}

func TestColumnExtractorsMatchLength(t *testing.T) {
	series := makeCandles([]int64{10, 20, 30})

	closes := Closes(series)
	highs := Highs(series)
	lows := Lows(series)
	opens := Opens(series)
	volumes := Volumes(series)
	times := Times(series)

	for _, col := range [][]float64{closes, highs, lows, opens, volumes} {
		assert.Len(t, col, len(series))
	}
	assert.Equal(t, []int64{10, 20, 30}, times)
}

func TestColumnExtractorsMapValuesInOrder(t *testing.T) {
	series := makeCandles([]int64{1, 2})

	assert.Equal(t, 100.0, Closes(series)[0])
	assert.Equal(t, 101.0, Closes(series)[1])
	assert.Equal(t, 101.0, Highs(series)[0])
	assert.Equal(t, 99.0, Lows(series)[0])
	assert.Equal(t, 1000.0, Volumes(series)[0])
}
