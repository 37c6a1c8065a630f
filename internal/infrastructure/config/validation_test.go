package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "json logging", mutate: func(c *Config) { c.Logging.Format = "json" }},
		{name: "disabled logging", mutate: func(c *Config) { c.Logging.Level = "disabled" }},
		{name: "max workers", mutate: func(c *Config) { c.Batch.Workers = maxBatchWorkers }},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantKey: "logging.level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "logfmt" }, wantKey: "logging.format"},
		{name: "bad color", mutate: func(c *Config) { c.Output.Color = "rainbow" }, wantKey: "output.color"},
		{name: "negative workers", mutate: func(c *Config) { c.Batch.Workers = -2 }, wantKey: "batch.workers"},
		{name: "too many workers", mutate: func(c *Config) { c.Batch.Workers = maxBatchWorkers + 1 }, wantKey: "batch.workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantKey != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantKey)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNormalizeConfig_Color(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Color = ""
	normalizeConfig(cfg)
	assert.Equal(t, ColorAuto, cfg.Output.Color)

	cfg.Output.Color = "ALWAYS"
	normalizeConfig(cfg)
	assert.Equal(t, ColorAlways, cfg.Output.Color)
}
