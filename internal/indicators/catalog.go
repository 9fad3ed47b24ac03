package indicators

// Catalog describes every kernel this package implements, for
// introspection only (the `taenginectl indicators` command and the
// HTTP API's GET /api/v1/indicators route). It has no bearing on any kernel's
// numeric output — adapted from the teacher's
// TalibAdapter.GetIndicatorMetadata().
func Catalog() []Metadata {
	return []Metadata{
		{Name: "sma", Type: "trend", Description: "Simple Moving Average", Parameters: []string{"period"}},
		{Name: "ema", Type: "trend", Description: "Exponential Moving Average", Parameters: []string{"period"}},
		{Name: "wma", Type: "trend", Description: "Weighted Moving Average", Parameters: []string{"period"}},
		{Name: "hma", Type: "trend", Description: "Hull Moving Average", Parameters: []string{"period"}},
		{Name: "bollinger", Type: "volatility", Description: "Bollinger Bands (population stddev)", Parameters: []string{"period", "multiplier"}},
		{Name: "rsi", Type: "momentum", Description: "Relative Strength Index (Wilder)", Parameters: []string{"period"}},
		{Name: "macd", Type: "momentum", Description: "Moving Average Convergence Divergence", Parameters: []string{"fastPeriod", "slowPeriod", "signalPeriod"}},
		{Name: "stochastic", Type: "momentum", Description: "Stochastic Oscillator", Parameters: []string{"kPeriod", "dPeriod", "smooth"}},
		{Name: "obv", Type: "volume", Description: "On-Balance Volume", Parameters: []string{}},
		{Name: "vwap", Type: "volume", Description: "Volume-Weighted Average Price", Parameters: []string{}},
		{Name: "anchoredVwap", Type: "volume", Description: "Anchored VWAP", Parameters: []string{"anchorTime"}},
		{Name: "atr", Type: "volatility", Description: "Average True Range (Wilder)", Parameters: []string{"period"}},
		{Name: "ichimoku", Type: "trend", Description: "Ichimoku Cloud", Parameters: []string{"conversionPeriod", "basePeriod", "spanBPeriod", "displacement"}},
		{Name: "supertrend", Type: "trend", Description: "Supertrend", Parameters: []string{"period", "multiplier"}},
		{Name: "parabolicSar", Type: "trend", Description: "Parabolic SAR (Wilder)", Parameters: []string{"step", "maxStep"}},
		{Name: "donchian", Type: "volatility", Description: "Donchian Channels", Parameters: []string{"period"}},
		{Name: "keltner", Type: "volatility", Description: "Keltner Channels", Parameters: []string{"emaPeriod", "atrPeriod", "atrMultiplier"}},
		{Name: "mfi", Type: "volume", Description: "Money Flow Index", Parameters: []string{"period"}},
		{Name: "cmf", Type: "volume", Description: "Chaikin Money Flow", Parameters: []string{"period"}},
		{Name: "choppiness", Type: "volatility", Description: "Choppiness Index", Parameters: []string{"period"}},
		{Name: "williamsR", Type: "momentum", Description: "Williams %R", Parameters: []string{"period"}},
		{Name: "adx", Type: "momentum", Description: "Average Directional Index (Wilder)", Parameters: []string{"period"}},
		{Name: "cvd", Type: "volume", Description: "Cumulative Volume Delta", Parameters: []string{}},
		{Name: "stc", Type: "momentum", Description: "Schaff Trend Cycle", Parameters: []string{"tcLen", "fastMa", "slowMa"}},
		{Name: "smc", Type: "structure", Description: "Smart Money Concepts (BOS/CHoCH)", Parameters: []string{"swingLength"}},
		{Name: "autoFib", Type: "structure", Description: "Auto Fibonacci Retracement", Parameters: []string{"lookback", "swingLength"}},
	}
}
