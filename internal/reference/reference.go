// Package reference is a test-only oracle built on
// github.com/cinar/indicator/v2, used by internal/indicators' tests to
// cross-check the engine's own kernels against a second, independent
// implementation. Nothing under cmd/ or internal/engine imports this
// package: the generic library's warm-up offsets, its use of sample
// (not population) standard deviation in Bollinger Bands, and its
// Supertrend flip rule all disagree in small but deliberate ways with
// this engine's kernels, so it is cross-checked, never substituted.
package reference

import (
	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/momentum"
	"github.com/cinar/indicator/v2/trend"
	"github.com/cinar/indicator/v2/volatility"
	"github.com/cinar/indicator/v2/volume"
)

func Sma(closes []float64, period int) []float64 {
	if len(closes) < period {
		return nil
	}
	c := helper.SliceToChan(closes)
	sma := trend.NewSmaWithPeriod[float64](period)
	return helper.ChanToSlice(sma.Compute(c))
}

func Ema(closes []float64, period int) []float64 {
	if len(closes) < period {
		return nil
	}
	c := helper.SliceToChan(closes)
	ema := trend.NewEmaWithPeriod[float64](period)
	return helper.ChanToSlice(ema.Compute(c))
}

func Rsi(closes []float64, period int) []float64 {
	if len(closes) < period+1 {
		return nil
	}
	c := helper.SliceToChan(closes)
	rsi := momentum.NewRsiWithPeriod[float64](period)
	return helper.ChanToSlice(rsi.Compute(c))
}

func Macd(closes []float64, fastPeriod, slowPeriod, signalPeriod int) (macdLine, signal []float64) {
	if len(closes) < slowPeriod {
		return nil, nil
	}
	c := helper.SliceToChan(closes)
	macd := trend.NewMacdWithPeriod[float64](fastPeriod, slowPeriod, signalPeriod)
	m, s := macd.Compute(c)
	return helper.ChanToSlice(m), helper.ChanToSlice(s)
}

func BBands(closes []float64, period int) (upper, middle, lower []float64) {
	if len(closes) < period {
		return nil, nil, nil
	}
	c := helper.SliceToChan(closes)
	bb := volatility.NewBollingerBandsWithPeriod[float64](period)
	u, m, l := bb.Compute(c)
	return helper.ChanToSlice(u), helper.ChanToSlice(m), helper.ChanToSlice(l)
}

func Atr(highs, lows, closes []float64, period int) []float64 {
	if len(highs) < period || len(lows) < period || len(closes) < period {
		return nil
	}
	h := helper.SliceToChan(highs)
	l := helper.SliceToChan(lows)
	c := helper.SliceToChan(closes)
	atr := volatility.NewAtrWithPeriod[float64](period)
	return helper.ChanToSlice(atr.Compute(h, l, c))
}

func StochF(highs, lows, closes []float64, kPeriod int) (k, d []float64) {
	if len(highs) < kPeriod || len(lows) < kPeriod || len(closes) < kPeriod {
		return nil, nil
	}
	h := helper.SliceToChan(highs)
	l := helper.SliceToChan(lows)
	c := helper.SliceToChan(closes)
	stoch := momentum.NewStochasticOscillator[float64]()
	kc, dc := stoch.Compute(h, l, c)
	return helper.ChanToSlice(kc), helper.ChanToSlice(dc)
}

func Obv(closes, volumes []float64) []float64 {
	if len(closes) == 0 || len(volumes) == 0 {
		return nil
	}
	p := helper.SliceToChan(closes)
	v := helper.SliceToChan(volumes)
	obv := volume.NewObv[float64]()
	return helper.ChanToSlice(obv.Compute(p, v))
}
