package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"docsync/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/docsync"
	configFileName = "config.yaml"
)

// osUserHomeDir is replaceable in tests.
var osUserHomeDir = os.UserHomeDir

// GetDefaultConfigPath returns the default configuration directory.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// LoadConfig loads config.yaml from configPath on top of the defaults.
// A missing file is not an error; the defaults are returned.
func LoadConfig(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		return Config{}, NewConfigurationError(configFilePath, "io", err.Error())
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, NewConfigurationError(configFilePath, "parse", err.Error())
	}

	if err := config.Validate(); err != nil {
		return Config{}, NewConfigurationError(configFilePath, "validation", err.Error())
	}

	logging.Debug("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return config, nil
}
