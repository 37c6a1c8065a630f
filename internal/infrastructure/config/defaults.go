package config

import "time"

// Default configuration constants
const (
	defaultLogLevel  = "warn"
	defaultLogFormat = "console"

	// 0 picks runtime.NumCPU in the batch use case.
	defaultBatchWorkers = 0
	maxBatchWorkers     = 1024
)

// DefaultConfig returns the configuration used when no file or
// environment override is present.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      defaultLogLevel,
			Format:     defaultLogFormat,
			TimeFormat: time.RFC3339,
		},
		Output: OutputConfig{
			ASCII: false,
			JSON:  false,
			Color: ColorAuto,
		},
		SameSite: SameSiteConfig{
			Subdomains: false,
			Subpath:    false,
		},
		Query: QueryConfig{
			IgnoreCase:    false,
			StripTracking: false,
		},
		Batch: BatchConfig{
			Workers: defaultBatchWorkers,
		},
	}
}
