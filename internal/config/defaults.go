package config

import (
	"docsync/internal/tags"
	"docsync/pkg/logging"
)

const (
	// DefaultLogLevel is the log level used when none is configured.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the log format used when none is configured.
	DefaultLogFormat = string(logging.FormatText)
)

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() Config {
	return Config{
		Tags: TagsConfig{
			SystemPrefix: tags.DefaultSystemPrefix,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
