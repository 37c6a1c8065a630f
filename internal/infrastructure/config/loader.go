package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/bnema/urlkit/internal/logging"
)

// Manager loads the configuration from file, environment and defaults.
type Manager struct {
	config *Config
	viper  *viper.Viper
	mu     sync.RWMutex
	// explicit is true when the file path was given by the user; a missing
	// explicit file is an error.
	explicit bool
}

// NewManager creates a manager that looks for config.toml in the XDG
// config directory and then in the working directory.
func NewManager() (*Manager, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	return newManager(v, false)
}

// NewManagerForFile creates a manager reading exactly path.
func NewManagerForFile(path string) (*Manager, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	return newManager(v, true)
}

func newManager(v *viper.Viper, explicit bool) (*Manager, error) {
	// URLKIT_BATCH_WORKERS, URLKIT_OUTPUT_ASCII, ...
	v.SetEnvPrefix("URLKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Same names as logging.NewFromEnv.
	if err := v.BindEnv("logging.level", "URLKIT_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind URLKIT_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "URLKIT_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind URLKIT_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:    v,
		explicit: explicit,
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var configFileNotFoundError viper.ConfigFileNotFoundError
	if !m.explicit && errors.As(err, &configFileNotFoundError) {
		return nil
	}

	configFile := m.viper.ConfigFileUsed()
	if configFile == "" {
		configFile, _ = GetConfigFile()
	}
	return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))

	switch ColorMode(strings.ToLower(string(config.Output.Color))) {
	case "", ColorAuto:
		config.Output.Color = ColorAuto
	case ColorAlways:
		config.Output.Color = ColorAlways
	case ColorNever:
		config.Output.Color = ColorNever
	}
}

// Get returns a copy of the current configuration (thread-safe).
// It returns the defaults when Load has not succeeded.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path of the file that was read, or "" when
// only defaults and environment are in use.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.time_format", defaults.Logging.TimeFormat)

	m.viper.SetDefault("output.ascii", defaults.Output.ASCII)
	m.viper.SetDefault("output.json", defaults.Output.JSON)
	m.viper.SetDefault("output.color", string(defaults.Output.Color))

	m.viper.SetDefault("same_site.subdomains", defaults.SameSite.Subdomains)
	m.viper.SetDefault("same_site.subpath", defaults.SameSite.Subpath)

	m.viper.SetDefault("query.ignore_case", defaults.Query.IgnoreCase)
	m.viper.SetDefault("query.strip_tracking", defaults.Query.StripTracking)

	m.viper.SetDefault("batch.workers", defaults.Batch.Workers)
}

// LoggingConfig converts the logging section for logging.New.
// Call it on a validated config only.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(c.Logging.Level); err == nil {
		cfg.Level = level
	}
	if c.Logging.Format != "" {
		cfg.Format = c.Logging.Format
	}
	if c.Logging.TimeFormat != "" {
		cfg.TimeFormat = c.Logging.TimeFormat
	}
	return cfg
}
