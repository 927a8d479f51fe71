package config

import (
	"os"
	"strconv"

	"github.com/danielpatrickdp/sigma-calc/internal/history"
	"github.com/danielpatrickdp/sigma-calc/internal/plot"
)

// #region types

// Config holds process-level settings shared by the commands.
type Config struct {
	Addr         string
	DBPath       string
	HistoryLimit int
	MaxSamples   int64
}

// #endregion types

// #region load

// Load returns defaults overridden by env vars: CALC_ADDR, CALC_DB,
// CALC_HISTORY_LIMIT, CALC_MAX_SAMPLES. Malformed numbers keep the default.
func Load() Config {
	cfg := Config{
		Addr:         EnvOr("CALC_ADDR", "localhost:50061"),
		DBPath:       EnvOr("CALC_DB", ":memory:"),
		HistoryLimit: history.DefaultLimit,
		MaxSamples:   plot.DefaultMaxPoints,
	}
	if v := os.Getenv("CALC_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryLimit = n
		}
	}
	if v := os.Getenv("CALC_MAX_SAMPLES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxSamples = n
		}
	}
	return cfg
}

// EnvOr returns the value of key, or fallback when it is unset or empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion load
