package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielpatrickdp/sigma-calc/internal/history"
	"github.com/danielpatrickdp/sigma-calc/internal/plot"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CALC_ADDR", "")
	t.Setenv("CALC_DB", "")
	t.Setenv("CALC_HISTORY_LIMIT", "")
	t.Setenv("CALC_MAX_SAMPLES", "")

	cfg := Load()
	assert.Equal(t, "localhost:50061", cfg.Addr)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, history.DefaultLimit, cfg.HistoryLimit)
	assert.Equal(t, int64(plot.DefaultMaxPoints), cfg.MaxSamples)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CALC_ADDR", "0.0.0.0:9000")
	t.Setenv("CALC_DB", "/tmp/calc.db")
	t.Setenv("CALC_HISTORY_LIMIT", "10")
	t.Setenv("CALC_MAX_SAMPLES", "500")

	cfg := Load()
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
	assert.Equal(t, "/tmp/calc.db", cfg.DBPath)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, int64(500), cfg.MaxSamples)
}

func TestLoad_MalformedKeepsDefault(t *testing.T) {
	t.Setenv("CALC_HISTORY_LIMIT", "lots")
	t.Setenv("CALC_MAX_SAMPLES", "-3")

	cfg := Load()
	assert.Equal(t, history.DefaultLimit, cfg.HistoryLimit)
	assert.Equal(t, int64(plot.DefaultMaxPoints), cfg.MaxSamples)
}
