package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Struct(t *testing.T) {
	cfg := Config{
		Environment: "test",
		LogLevel:    "debug",
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     6379,
			Password: "redis_pass",
			DB:       0,
		},
		Providers: ProvidersConfig{
			CryptoBaseURL:  "https://api.binance.com",
			GeneralBaseURL: "https://query1.finance.yahoo.com",
			TimeoutSeconds: 10,
		},
		Analysis: AnalysisConfig{
			DefaultLimit: 500,
			MaxLimit:     1000,
		},
	}

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "https://api.binance.com", cfg.Providers.CryptoBaseURL)
	assert.Equal(t, 500, cfg.Analysis.DefaultLimit)
	assert.Equal(t, 1000, cfg.Analysis.MaxLimit)
}

func TestLoad_WithDefaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "", cfg.Redis.Password)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, "https://api.binance.com", cfg.Providers.CryptoBaseURL)
	assert.Equal(t, "https://query1.finance.yahoo.com", cfg.Providers.GeneralBaseURL)
	assert.Equal(t, 10, cfg.Providers.TimeoutSeconds)
	assert.Equal(t, 500, cfg.Analysis.DefaultLimit)
	assert.Equal(t, 1000, cfg.Analysis.MaxLimit)
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	os.Clearenv()

	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("REDIS_HOST", "prod-redis.example.com")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_PASSWORD", "redis_prod_pass")
	t.Setenv("REDIS_DB", "1")
	t.Setenv("CRYPTO_BASE_URL", "https://testnet.binance.vision")
	t.Setenv("PROVIDERS_TIMEOUT_SECONDS", "20")
	t.Setenv("ANALYSIS_DEFAULT_LIMIT", "250")
	t.Setenv("ANALYSIS_MAX_LIMIT", "2000")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "prod-redis.example.com", cfg.Redis.Host)
	assert.Equal(t, 6380, cfg.Redis.Port)
	assert.Equal(t, "redis_prod_pass", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, "https://testnet.binance.vision", cfg.Providers.CryptoBaseURL)
	assert.Equal(t, 20, cfg.Providers.TimeoutSeconds)
	assert.Equal(t, 250, cfg.Analysis.DefaultLimit)
	assert.Equal(t, 2000, cfg.Analysis.MaxLimit)
}

func TestLoad_WithInvalidPort(t *testing.T) {
	os.Clearenv()
	t.Setenv("SERVER_PORT", "0")

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "server.port must be positive")
}

func TestLoad_WithInvertedLimits(t *testing.T) {
	os.Clearenv()
	t.Setenv("ANALYSIS_DEFAULT_LIMIT", "2000")
	t.Setenv("ANALYSIS_MAX_LIMIT", "100")

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "analysis.max_limit")
}

func TestLoad_TaengineConfigJSON(t *testing.T) {
	os.Clearenv()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	taengineDir := homeDir + "/.taengine"
	if err := os.MkdirAll(taengineDir, 0755); err != nil {
		t.Skip("cannot create .taengine directory")
	}

	configFile := taengineDir + "/config.json"
	configContent := `{
		"redis": {
			"host": "taengine-host",
			"port": 6399
		},
		"server": {
			"port": 9999
		}
	}`
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Skip("cannot write test config file")
	}
	defer os.Remove(configFile)
	defer os.Remove(taengineDir)

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "taengine-host", cfg.Redis.Host)
	assert.Equal(t, 6399, cfg.Redis.Port)
}

func TestLoad_EnvTakesPrecedenceOverConfigFile(t *testing.T) {
	os.Clearenv()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	taengineDir := homeDir + "/.taengine"
	if err := os.MkdirAll(taengineDir, 0755); err != nil {
		t.Skip("cannot create .taengine directory")
	}

	configFile := taengineDir + "/config.json"
	configContent := `{"redis": {"host": "taengine-host"}}`
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Skip("cannot write test config file")
	}
	defer os.Remove(configFile)
	defer os.Remove(taengineDir)

	t.Setenv("REDIS_HOST", "env-host")
	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "env-host", cfg.Redis.Host)
}
