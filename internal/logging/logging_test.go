package logging

import "testing"

func TestNewDefaultsToInfoLevel(t *testing.T) {
	l := New()
	if l.GetLevel() != InfoLevel {
		t.Fatalf("GetLevel() = %v, want InfoLevel", l.GetLevel())
	}
}

func TestSetLevelRoundTrips(t *testing.T) {
	l := New()
	l.SetLevel(DebugLevel)
	if l.GetLevel() != DebugLevel {
		t.Fatalf("GetLevel() = %v, want DebugLevel", l.GetLevel())
	}
}

func TestWithFieldChainingDoesNotMutateParent(t *testing.T) {
	l := New()
	base := l.WithField("symbol", "BTCUSDT")
	child := base.WithField("market", "crypto")
	if len(base.fields) != 1 {
		t.Fatalf("base.fields mutated by child WithField: len=%d", len(base.fields))
	}
	if len(child.fields) != 2 {
		t.Fatalf("child.fields len = %d, want 2", len(child.fields))
	}
}

func TestDomainFieldHelpersDoNotPanic(t *testing.T) {
	l := New()
	l.WithSymbol("AAPL").WithMarket("us_stock").WithInterval("1d").Info("fetched candles")
}

func TestToZapLevelCoversEveryLevel(t *testing.T) {
	levels := []Level{PanicLevel, FatalLevel, ErrorLevel, WarnLevel, InfoLevel, DebugLevel, TraceLevel, Level(99)}
	for _, lv := range levels {
		_ = toZapLevel(lv)
	}
}
