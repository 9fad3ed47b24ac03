// Package marketdata implements the two upstream providers the engine
// fetches candles and fundamentals from: a crypto klines provider and a
// general-markets (forex/US stock/KR stock) chart+fundamentals provider.
// Every network/parse failure here is wrapped in one of the
// internal/apierr taxonomy members; neither provider is consulted by the
// pure kernels in internal/indicators or internal/signals.
package marketdata

import (
	"context"

	"github.com/vantage-quant/taengine/internal/candle"
	"github.com/vantage-quant/taengine/internal/params"
)

// Source fetches native-interval candle series for one market.
type Source interface {
	// NativeIntervals lists the granularities this source can fetch
	// directly, in the <n><unit> grammar internal/interval understands.
	NativeIntervals() []string
	// FetchCandles returns up to limit candles at nativeInterval for
	// symbol, oldest first.
	FetchCandles(ctx context.Context, symbol, nativeInterval string, limit int) ([]candle.Candle, error)
}

// FundamentalsSource fetches fundamentals snapshots; only the
// general-markets provider implements this (crypto has no fundamentals).
type FundamentalsSource interface {
	FetchFundamentals(ctx context.Context, symbol string) (*params.FundamentalsResponse, error)
}

// Registry resolves a MarketType to its Source/FundamentalsSource.
type Registry struct {
	Crypto  Source
	General interface {
		Source
		FundamentalsSource
	}
}

// Resolve returns the Source for a MarketType. Forex/USStock/KRStock all
// share the general-markets provider; only Crypto gets its own.
func (r Registry) Resolve(market params.MarketType) Source {
	if market == params.MarketCrypto {
		return r.Crypto
	}
	return r.General
}
