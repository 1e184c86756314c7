package config

// Config is the top-level configuration structure for docsync.
type Config struct {
	AWS     AWSConfig     `yaml:"aws"`
	Tags    TagsConfig    `yaml:"tags"`
	Logging LoggingConfig `yaml:"logging"`
}

// AWSConfig selects how the Systems Manager client is built.
type AWSConfig struct {
	Region   string `yaml:"region,omitempty"`   // Region override (default: from environment)
	Profile  string `yaml:"profile,omitempty"`  // Shared config profile (default: none)
	Endpoint string `yaml:"endpoint,omitempty"` // Endpoint override, e.g. a local emulator
}

// TagsConfig controls the system tags attached to every document.
type TagsConfig struct {
	SystemPrefix string `yaml:"systemPrefix,omitempty"` // Prefix of the three system tag keys (default: cfn)
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn or error (default: info)
	Format string `yaml:"format,omitempty"` // text or json (default: text)
}
