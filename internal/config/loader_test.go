package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, content Config) string {
	t.Helper()
	tempFilePath := filepath.Join(dir, configFileName)
	data, err := yaml.Marshal(&content)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(tempFilePath, data, 0644))
	return tempFilePath
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	createTempConfigFile(t, dir, Config{
		AWS:     AWSConfig{Region: "eu-central-1", Endpoint: "http://localhost:4566"},
		Logging: LoggingConfig{Level: "debug"},
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "eu-central-1", cfg.AWS.Region)
	assert.Equal(t, "http://localhost:4566", cfg.AWS.Endpoint)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unset fields keep their defaults.
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
	assert.Equal(t, "cfn", cfg.Tags.SystemPrefix)
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("aws: [unclosed"), 0644))

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))

	var ce ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "parse", ce.ErrorType)
	assert.Equal(t, configFileName, ce.FileName)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	createTempConfigFile(t, dir, Config{
		Logging: LoggingConfig{Level: "chatty", Format: "xml"},
	})

	_, err := LoadConfig(dir)
	require.Error(t, err)

	var ce ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "validation", ce.ErrorType)
	assert.Contains(t, ce.Message, "logging.level")
	assert.Contains(t, ce.Message, "logging.format")
}

func TestGetDefaultConfigPath(t *testing.T) {
	original := osUserHomeDir
	defer func() { osUserHomeDir = original }()

	osUserHomeDir = func() (string, error) { return "/home/tester", nil }
	path, err := GetDefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".config/docsync"), path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"json format", func(c *Config) { c.Logging.Format = "json" }, false},
		{"empty level", func(c *Config) { c.Logging.Level = "" }, false},
		{"reserved prefix", func(c *Config) { c.Tags.SystemPrefix = "aws" }, true},
		{"whitespace prefix", func(c *Config) { c.Tags.SystemPrefix = "my prefix" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
