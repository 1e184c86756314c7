package cmd

import (
	"os"

	"docsync/internal/config"
	"docsync/internal/reconciler"
	"docsync/internal/remote"
	"docsync/pkg/logging"

	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags shared by all commands.
var globalFlags struct {
	configPath string
	debug      bool
	logFormat  string
	region     string
	profile    string
	endpoint   string
	tagPrefix  string
}

// loadRuntimeConfig loads config.yaml and applies the flags that were set on
// the command line on top of it.
//
// Without --config-path the user config directory is used. When no home
// directory can be determined, as in some Lambda runtimes, the defaults are
// used instead.
func loadRuntimeConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.GetDefaultConfig()

	dir := globalFlags.configPath
	if dir == "" {
		if defaultDir, err := config.GetDefaultConfigPath(); err == nil {
			dir = defaultDir
		}
	}
	if dir != "" {
		loaded, err := config.LoadConfig(dir)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("region") {
		cfg.AWS.Region = globalFlags.region
	}
	if flags.Changed("profile") {
		cfg.AWS.Profile = globalFlags.profile
	}
	if flags.Changed("endpoint") {
		cfg.AWS.Endpoint = globalFlags.endpoint
	}
	if flags.Changed("tag-prefix") {
		cfg.Tags.SystemPrefix = globalFlags.tagPrefix
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = globalFlags.logFormat
	}
	if globalFlags.debug {
		cfg.Logging.Level = logging.LevelDebug.String()
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, config.NewConfigurationError("flags", "validation", err.Error())
	}
	return cfg, nil
}

// initLogging configures the package logger for interactive use. Logs go to
// stderr so that command output on stdout stays machine readable.
func initLogging(cfg config.Config) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logging.LevelInfo
	}
	logging.Init(level, logging.Format(cfg.Logging.Format), os.Stderr)
}

func clientOptions(cfg config.Config) remote.ClientOptions {
	return remote.ClientOptions{
		Region:   cfg.AWS.Region,
		Profile:  cfg.AWS.Profile,
		Endpoint: cfg.AWS.Endpoint,
	}
}

func reconcilerOptions(cfg config.Config) reconciler.Options {
	return reconciler.Options{
		SystemTagPrefix: cfg.Tags.SystemPrefix,
	}
}
