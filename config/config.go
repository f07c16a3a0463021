package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g.
// FRAGMENT_HOST_EMBEDDED for host.embedded.
const EnvPrefix = "FRAGMENT"

// Config represents the complete fragment configuration
type Config struct {
	Fragment FragmentConfig `mapstructure:"fragment"`
	Host     HostConfig     `mapstructure:"host"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// FragmentConfig describes the embedded module
type FragmentConfig struct {
	// Name is the application name registered with the host (default: "kline")
	Name string `mapstructure:"name"`
	// Wasm is the path to the module binary
	Wasm string `mapstructure:"wasm"`
	// Entry is the exported entry point (default: "main")
	Entry string `mapstructure:"entry"`
	// FreshInstance instantiates the module anew on every mount
	FreshInstance bool `mapstructure:"fresh_instance"`
	// WASI provides wasi_snapshot_preview1 to the module
	WASI bool `mapstructure:"wasi"`
}

// HostConfig describes the page the fragment is embedded in
type HostConfig struct {
	// Embedded is set by the host runtime before the fragment starts.
	// It is read once at startup.
	Embedded bool `mapstructure:"embedded"`
	// Page is an HTML file for the host page; empty uses the built-in page
	Page string `mapstructure:"page"`
	// Container locates the element whose height is synchronized (default: ".parent")
	Container string `mapstructure:"container"`
}

// LoggingConfig controls the zap logger
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default: "info")
	Level string `mapstructure:"level"`
	// Development switches to the human-readable console encoder
	Development bool `mapstructure:"development"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Fragment: FragmentConfig{
			Name:  "kline",
			Entry: "main",
			WASI:  true,
		},
		Host: HostConfig{
			Container: ".parent",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers default values with the global viper instance
func SetDefaults() {
	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("fragment.name", defaults.Fragment.Name)
	v.SetDefault("fragment.wasm", defaults.Fragment.Wasm)
	v.SetDefault("fragment.entry", defaults.Fragment.Entry)
	v.SetDefault("fragment.fresh_instance", defaults.Fragment.FreshInstance)
	v.SetDefault("fragment.wasi", defaults.Fragment.WASI)

	v.SetDefault("host.embedded", defaults.Host.Embedded)
	v.SetDefault("host.page", defaults.Host.Page)
	v.SetDefault("host.container", defaults.Host.Container)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.development", defaults.Logging.Development)
}

// BindEnv enables FRAGMENT_* environment overrides on v
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from the global viper instance and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v and validates it
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wasm-fragment")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wasm-fragment"
	}
	return filepath.Join(home, ".config", "wasm-fragment")
}
