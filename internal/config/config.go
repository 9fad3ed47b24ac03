// Package config loads engine configuration via viper, the way the
// teacher's internal/config package does: environment variables bound
// over sane defaults, with an optional JSON config file under the
// user's home directory taking precedence over defaults but losing to
// explicit environment variables.
//
// The teacher's Config carried Database/CCXT/Telegram/Fees/Auth
// sections for a crypto-arbitrage service; none of that applies to a
// pure analysis engine with no persistence and no auth boundary (§
// dropped deps in DESIGN.md), so this Config instead carries Redis
// (the interval cache backend), Providers (the two marketdata base
// URLs and their timeout), and Analysis (default request bounds).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	Server      ServerConfig
	Redis       RedisConfig
	Providers   ProvidersConfig
	Analysis    AnalysisConfig
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ProvidersConfig points at the two upstream marketdata endpoints
// (internal/marketdata.CryptoProvider / GeneralMarketsProvider).
// TimeoutSeconds is loaded but not read by either provider; each builds
// its own HTTP client with a fixed 10-second timeout.
type ProvidersConfig struct {
	CryptoBaseURL  string `mapstructure:"crypto_base_url"`
	GeneralBaseURL string `mapstructure:"general_base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// AnalysisConfig holds candle-count limits. validate checks that
// MaxLimit is at least DefaultLimit, but the engine does not read either:
// a request that leaves Limit unset gets params.DefaultLimit
// (internal/params.AnalysisRequest.ApplyDefaults).
type AnalysisConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

// Load reads configuration from (in ascending precedence): built-in
// defaults, an optional ~/.taengine/config.json, then environment
// variables. Nested keys bind to SCREAMING_SNAKE_CASE env vars the way
// viper's AutomaticEnv + key replacer does (Server.Port -> SERVER_PORT).
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("providers.crypto_base_url", "https://api.binance.com")
	v.SetDefault("providers.general_base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("providers.timeout_seconds", 10)
	v.SetDefault("analysis.default_limit", 500)
	v.SetDefault("analysis.max_limit", 1000)

	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		configPath := homeDir + "/.taengine/config.json"
		if _, statErr := os.Stat(configPath); statErr == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("json")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// bindEnv binds the explicit SCREAMING_SNAKE_CASE env var names the
// teacher's Load supported, so ENVIRONMENT/SERVER_PORT/REDIS_HOST and
// friends are recognized even though viper's AutomaticEnv alone only
// catches keys already registered via SetDefault/BindPFlag.
func bindEnv(v *viper.Viper) error {
	binds := map[string]string{
		"environment":               "ENVIRONMENT",
		"log_level":                 "LOG_LEVEL",
		"server.port":               "SERVER_PORT",
		"redis.host":                "REDIS_HOST",
		"redis.port":                "REDIS_PORT",
		"redis.password":            "REDIS_PASSWORD",
		"redis.db":                  "REDIS_DB",
		"providers.crypto_base_url": "CRYPTO_BASE_URL",
		"providers.general_base_url": "GENERAL_BASE_URL",
		"providers.timeout_seconds": "PROVIDERS_TIMEOUT_SECONDS",
		"analysis.default_limit":    "ANALYSIS_DEFAULT_LIMIT",
		"analysis.max_limit":        "ANALYSIS_MAX_LIMIT",
	}
	for key, env := range binds {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind env %s: %w", env, err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %d", c.Server.Port)
	}
	if c.Analysis.MaxLimit < c.Analysis.DefaultLimit {
		return fmt.Errorf("analysis.max_limit (%d) must be >= analysis.default_limit (%d)", c.Analysis.MaxLimit, c.Analysis.DefaultLimit)
	}
	return nil
}
