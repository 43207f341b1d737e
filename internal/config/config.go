// Package config provides Viper-based configuration loading for the
// purchase command service.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// CatalogConfig holds weapon catalog settings.
type CatalogConfig struct {
	// Path is the catalog document location (.json, .yaml, or .yml).
	Path string `mapstructure:"path"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	// Enabled toggles the /metrics listener.
	Enabled bool `mapstructure:"enabled"`
	// Addr is the "host:port" bind address for the metrics listener.
	Addr string `mapstructure:"addr"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCatalog(c.Catalog); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateMetrics(c.Metrics); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateCatalog(c CatalogConfig) error {
	if c.Path == "" {
		return errors.New("catalog.path must not be empty")
	}
	return nil
}

func validateMetrics(m MetricsConfig) error {
	if m.Enabled && m.Addr == "" {
		return errors.New("metrics.addr must not be empty when metrics.enabled is true")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with BUYCMD_ prefix
	v.SetEnvPrefix("BUYCMD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("catalog.path", "content/weapons.json")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", "127.0.0.1:9091")
}
