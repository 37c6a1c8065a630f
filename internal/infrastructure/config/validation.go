package config

import (
	"fmt"
	"strings"

	"github.com/bnema/urlkit/internal/domain/entity"
	"github.com/bnema/urlkit/internal/logging"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateOutput(config)...)
	validationErrors = append(validationErrors, validateBatch(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("%w: config validation failed:\n  - %s",
			entity.ErrConfiguration, strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if _, err := logging.ParseLevel(config.Logging.Level); err != nil {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of: trace, debug, info, warn, error, disabled (got: %s)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be one of: console, json (got: %s)", config.Logging.Format))
	}
	return validationErrors
}

func validateOutput(config *Config) []string {
	switch config.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return []string{fmt.Sprintf("output.color must be one of: auto, always, never (got: %s)", config.Output.Color)}
	}
}

func validateBatch(config *Config) []string {
	if config.Batch.Workers < 0 || config.Batch.Workers > maxBatchWorkers {
		return []string{fmt.Sprintf("batch.workers must be between 0 and %d", maxBatchWorkers)}
	}
	return nil
}
