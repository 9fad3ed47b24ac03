package apierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkWrapsCategory(t *testing.T) {
	underlying := errors.New("dial tcp: timeout")
	err := Network("crypto", underlying)

	require.Equal(t, CategoryNetwork, err.Category)
	assert.Equal(t, "crypto", err.Provider)
	assert.ErrorIs(t, err, underlying)
	assert.Contains(t, err.Error(), "crypto")
}

func TestUpstreamTruncatesLongBody(t *testing.T) {
	body := ""
	for i := 0; i < 512; i++ {
		body += "x"
	}
	err := Upstream("general", 503, body)

	assert.Equal(t, CategoryUpstream, err.Category)
	assert.Equal(t, 503, err.Status)
	assert.Contains(t, err.Message, "...")
	assert.Less(t, len(err.Message), len(body))
}

func TestUpstreamKeepsShortBodyIntact(t *testing.T) {
	err := Upstream("crypto", 429, "rate limited")
	assert.Contains(t, err.Message, "rate limited")
	assert.NotContains(t, err.Message, "...")
}

func TestParseWrapsCategory(t *testing.T) {
	underlying := errors.New("unexpected end of JSON input")
	err := Parse("general", underlying)
	assert.Equal(t, CategoryParse, err.Category)
	assert.ErrorIs(t, err, underlying)
}

func TestEmptyResult(t *testing.T) {
	err := EmptyResult("crypto")
	assert.Equal(t, CategoryEmptyResult, err.Category)
	assert.Equal(t, "crypto", err.Provider)
}

func TestDomainReject(t *testing.T) {
	err := DomainReject("unsupported market/interval combination")
	assert.Equal(t, CategoryDomainReject, err.Category)
	assert.Empty(t, err.Provider)
	assert.Contains(t, err.Error(), "unsupported market/interval combination")
}

func TestIsUnwrapsThroughFmtWrap(t *testing.T) {
	base := Network("crypto", errors.New("timeout"))
	wrapped := fmt.Errorf("fetch candles: %w", base)

	assert.True(t, Is(wrapped, CategoryNetwork))
	assert.False(t, Is(wrapped, CategoryParse))
}

func TestIsReturnsFalseForPlainError(t *testing.T) {
	assert.False(t, Is(errors.New("plain"), CategoryNetwork))
	assert.False(t, Is(nil, CategoryNetwork))
}

func TestErrorStringWithoutProvider(t *testing.T) {
	err := &Error{Category: CategoryParse, Message: "bad json", Err: errors.New("eof")}
	assert.NotContains(t, err.Error(), "provider=")
}
