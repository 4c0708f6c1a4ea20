package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the dashboard API and CLI.
type Config struct {
	DayCSVPath       string
	DayCSVDelimiter  rune
	HourCSVPath      string
	HourCSVDelimiter rune
	DatabaseURL      string
	RedisURL         string
	Port             int
	BearerToken      string
	CacheSize        int
	CacheTTL         time.Duration
	LogLevel         string
	Env              string
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		DayCSVPath:       "data/day.csv",
		DayCSVDelimiter:  ';',
		HourCSVPath:      "data/hour.csv",
		HourCSVDelimiter: ',',
		Port:             8080,
		CacheSize:        128,
		CacheTTL:         10 * time.Minute,
		LogLevel:         "info",
		Env:              "development",
	}

	if path := os.Getenv("DAY_CSV_PATH"); path != "" {
		cfg.DayCSVPath = path
	}
	if path := os.Getenv("HOUR_CSV_PATH"); path != "" {
		cfg.HourCSVPath = path
	}

	var err error
	if cfg.DayCSVDelimiter, err = delimiter("DAY_CSV_DELIMITER", cfg.DayCSVDelimiter); err != nil {
		return cfg, err
	}
	if cfg.HourCSVDelimiter, err = delimiter("HOUR_CSV_DELIMITER", cfg.HourCSVDelimiter); err != nil {
		return cfg, err
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.RedisURL = os.Getenv("REDIS_URL")

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if sizeStr := os.Getenv("CACHE_SIZE"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil && size > 0 {
			cfg.CacheSize = size
		} else {
			return cfg, fmt.Errorf("invalid CACHE_SIZE: %s", sizeStr)
		}
	}

	if ttlStr := os.Getenv("CACHE_TTL"); ttlStr != "" {
		if ttl, err := time.ParseDuration(ttlStr); err == nil && ttl > 0 {
			cfg.CacheTTL = ttl
		} else {
			return cfg, fmt.Errorf("invalid CACHE_TTL: %s", ttlStr)
		}
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.Env = env
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	return cfg, nil
}

func delimiter(key string, def rune) (rune, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if v == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(v) != 1 {
		return def, fmt.Errorf("invalid %s: %q must be a single character", key, v)
	}
	r, _ := utf8.DecodeRuneInString(v)
	return r, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
