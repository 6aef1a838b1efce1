package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete storefront configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	CDN     CDNConfig     `mapstructure:"cdn"`
	Logging LoggingConfig `mapstructure:"logging"`
	Stub    StubConfig    `mapstructure:"stub"`
	TUI     TUIConfig     `mapstructure:"tui"`
}

// APIConfig controls the shop backend client
type APIConfig struct {
	// URL is the base URL of the shop API (e.g. "https://larek-api.nomoreparties.co/api/weblarek")
	URL string `mapstructure:"url" validate:"required,url"`
	// Timeout bounds a single HTTP request
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0,lte=5m"`
	// Retries is how many times a failed GET is retried (POST is never retried)
	Retries int `mapstructure:"retries" validate:"gte=0,lte=10"`
}

// CDNConfig controls image URL resolution
type CDNConfig struct {
	// URL is prefixed to relative product image paths. Empty leaves them as is.
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	// Dir is where larek.log is written. Empty means stderr for headless
	// commands and no logging for the TUI.
	Dir string `mapstructure:"dir"`
}

// StubConfig controls the stub backend served by `larek stub`
type StubConfig struct {
	// Addr is the listen address (default: "127.0.0.1:8787")
	Addr string `mapstructure:"addr" validate:"required,hostname_port"`
	// Latency is an artificial delay added to every response
	Latency time.Duration `mapstructure:"latency" validate:"gte=0,lte=1m"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// Locale selects number grouping for prices (BCP 47, e.g. "en", "ru")
	Locale string `mapstructure:"locale" validate:"omitempty,bcp47_language_tag"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:     "http://127.0.0.1:8787",
			Timeout: 10 * time.Second,
			Retries: 2,
		},
		CDN: CDNConfig{
			URL: "", // Images are shown as given by the API
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "",
		},
		Stub: StubConfig{
			Addr:    "127.0.0.1:8787",
			Latency: 0,
		},
		TUI: TUIConfig{
			Locale: "en",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// API defaults
	viper.SetDefault("api.url", defaults.API.URL)
	viper.SetDefault("api.timeout", defaults.API.Timeout)
	viper.SetDefault("api.retries", defaults.API.Retries)

	// CDN defaults
	viper.SetDefault("cdn.url", defaults.CDN.URL)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	// Stub defaults
	viper.SetDefault("stub.addr", defaults.Stub.Addr)
	viper.SetDefault("stub.latency", defaults.Stub.Latency)

	// TUI defaults
	viper.SetDefault("tui.locale", defaults.TUI.Locale)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "larek")
	}
	// Fall back to ~/.config/larek
	home, err := os.UserHomeDir()
	if err != nil {
		return ".larek"
	}
	return filepath.Join(home, ".config", "larek")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
