// Package config loads the fragment configuration with viper.
//
// Values come from, in increasing priority: defaults, a YAML config file,
// and FRAGMENT_* environment variables (dots become underscores, so
// host.embedded is FRAGMENT_HOST_EMBEDDED). The embedded-mode flag is set
// by the host runtime through that variable and read once at startup.
package config
