package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Config represents the complete configuration for urlkit.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" toml:"logging" json:"logging"`
	// Output controls how results are printed.
	Output OutputConfig `mapstructure:"output" toml:"output" json:"output"`
	// SameSite holds the defaults of `urlkit url same-site`.
	SameSite SameSiteConfig `mapstructure:"same_site" toml:"same_site" json:"same_site"`
	// Query holds the defaults of the query commands and of dedupe.
	Query QueryConfig `mapstructure:"query" toml:"query" json:"query"`
	// Batch controls bulk resolution.
	Batch BatchConfig `mapstructure:"batch" toml:"batch" json:"batch"`
}

// LoggingConfig configures the stderr logger.
type LoggingConfig struct {
	Level      string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format     string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	TimeFormat string `mapstructure:"time_format" toml:"time_format" json:"time_format"`
}

// ColorMode selects when styled output is used.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// OutputConfig controls result rendering.
type OutputConfig struct {
	// ASCII prints hosts in punycode.
	ASCII bool `mapstructure:"ascii" toml:"ascii" json:"ascii"`
	// JSON prints machine readable results.
	JSON  bool      `mapstructure:"json" toml:"json" json:"json"`
	Color ColorMode `mapstructure:"color" toml:"color" json:"color" jsonschema:"enum=auto,enum=always,enum=never"`
}

// SameSiteConfig mirrors url.SameSiteOptions.
type SameSiteConfig struct {
	Subdomains bool `mapstructure:"subdomains" toml:"subdomains" json:"subdomains"`
	Subpath    bool `mapstructure:"subpath" toml:"subpath" json:"subpath"`
}

// QueryConfig holds query handling defaults.
type QueryConfig struct {
	// IgnoreCase compares values case-insensitively in diff.
	IgnoreCase bool `mapstructure:"ignore_case" toml:"ignore_case" json:"ignore_case"`
	// StripTracking drops utm_* and click id parameters before dedupe.
	StripTracking bool `mapstructure:"strip_tracking" toml:"strip_tracking" json:"strip_tracking"`
}

// BatchConfig controls bulk operations.
type BatchConfig struct {
	// Workers bounds parallel resolution; 0 means one per CPU.
	Workers int `mapstructure:"workers" toml:"workers" json:"workers" jsonschema:"minimum=0,maximum=1024"`
}

// GenerateSchema returns the JSON schema of Config, indented.
func GenerateSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/bnema/urlkit/config.schema.json"
	schema.Title = "urlkit configuration"
	schema.Description = "Configuration schema for urlkit, a URL and path normalization toolkit"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
