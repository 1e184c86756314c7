// Package config loads the docsync configuration.
//
// Configuration is read from config.yaml inside a configuration directory
// (default ~/.config/docsync, or the directory given with --config-path).
// Values from the file are applied on top of GetDefaultConfig; a missing file
// simply yields the defaults.
//
// Example config.yaml:
//
//	aws:
//	  region: eu-west-1
//	  profile: automation
//	tags:
//	  systemPrefix: cfn
//	logging:
//	  level: debug
//	  format: json
package config
