package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			Path: "content/weapons.json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    "127.0.0.1:9091",
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestValidate_InvalidLogFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")
}

func TestValidate_EmptyCatalogPath(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.Path = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog.path")
}

func TestValidate_MetricsAddrRequiredWhenEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Metrics.Addr = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics.addr")

	cfg.Metrics.Enabled = false
	assert.NoError(t, cfg.Validate())
}

func TestValidate_AggregatesViolations(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "catalog.path")
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "content/weapons.json", cfg.Catalog.Path)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
