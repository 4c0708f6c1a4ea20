package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DAY_CSV_PATH", "DAY_CSV_DELIMITER", "HOUR_CSV_PATH", "HOUR_CSV_DELIMITER",
		"DATABASE_URL", "REDIS_URL", "PORT", "API_PORT", "API_BEARER_TOKEN",
		"CACHE_SIZE", "CACHE_TTL", "LOG_LEVEL", "APP_ENV",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/day.csv", cfg.DayCSVPath)
	assert.Equal(t, ';', cfg.DayCSVDelimiter)
	assert.Equal(t, "data/hour.csv", cfg.HourCSVPath)
	assert.Equal(t, ',', cfg.HourCSVDelimiter)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 128, cfg.CacheSize)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Env)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, ":8080", cfg.ListenAddr())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DAY_CSV_PATH", "https://example.com/day.csv")
	t.Setenv("DAY_CSV_DELIMITER", ",")
	t.Setenv("HOUR_CSV_DELIMITER", `\t`)
	t.Setenv("API_PORT", "9090")
	t.Setenv("CACHE_SIZE", "16")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/day.csv", cfg.DayCSVPath)
	assert.Equal(t, ',', cfg.DayCSVDelimiter)
	assert.Equal(t, '\t', cfg.HourCSVDelimiter)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "production", cfg.Env)
}

func TestPortTakesPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("API_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"PORT", "abc", "invalid PORT"},
		{"API_PORT", "-1", "invalid API_PORT"},
		{"CACHE_SIZE", "0", "invalid CACHE_SIZE"},
		{"CACHE_TTL", "soon", "invalid CACHE_TTL"},
		{"DAY_CSV_DELIMITER", ";;", "invalid DAY_CSV_DELIMITER"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
