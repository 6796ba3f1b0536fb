// Package config loads environment configuration and simulation scenario
// files.
package config

import "os"

// Config holds infrastructure configuration loaded from environment
// variables. Empty addresses disable the corresponding optional component.
type Config struct {
	LedgerDir     string // directory for ledger text files
	SQLitePath    string // sqlite journal mirror; "" = disabled
	RedisAddr     string // redis ledger publisher; "" = disabled
	RedisPassword string
	MetricsAddr   string // prometheus /metrics listener; "" = disabled
	FeedAddr      string // websocket ledger feed listener; "" = disabled
	MarketFile    string // default market data file for file-sourced runs
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		LedgerDir:     getEnv("LEDGER_DIR", "."),
		SQLitePath:    getEnv("SQLITE_PATH", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		MetricsAddr:   getEnv("METRICS_ADDR", ""),
		FeedAddr:      getEnv("FEED_ADDR", ""),
		MarketFile:    getEnv("MARKET_FILE", "stock_data_5y.txt"),
	}
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
