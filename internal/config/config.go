// Package config loads sip configuration from YAML and environment
// variables, including the display-constants table used when formatting
// connections for the picklist.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/willibrandon/sip/internal/connection"
)

// Config represents the root configuration structure
type Config struct {
	Connection ConnectionConfig `mapstructure:"connection"`
	Display    DisplayConfig    `mapstructure:"display"`
	Recent     RecentConfig     `mapstructure:"recent"`
	UI         UIConfig         `mapstructure:"ui"`
	Debug      bool             `mapstructure:"debug"`

	// ProfilesPath is the YAML file holding saved connection profiles.
	ProfilesPath string `mapstructure:"profiles_path"`
}

// ConnectionConfig holds the connection-defaulting constants.
type ConnectionConfig struct {
	DefaultTimeout  int    `mapstructure:"default_timeout"`   // seconds
	AzureMinTimeout int    `mapstructure:"azure_min_timeout"` // seconds
	AzureSuffix     string `mapstructure:"azure_suffix"`
	ApplicationName string `mapstructure:"application_name"`
}

// DisplayConfig holds the picklist formatting constants.
type DisplayConfig struct {
	MaxLength       int    `mapstructure:"max_length"`
	DefaultDatabase string `mapstructure:"default_database"`
}

// RecentConfig holds settings for the recent-connections store.
type RecentConfig struct {
	Path  string `mapstructure:"path"`
	Limit int    `mapstructure:"limit"`
}

// UIConfig holds user interface preferences
type UIConfig struct {
	Theme      string `mapstructure:"theme"`
	DateFormat string `mapstructure:"date_format"`
}

// Defaults maps the configured constants into the table consumed by the
// connection package.
func (c *Config) Defaults() connection.Defaults {
	return connection.Defaults{
		ConnectTimeout:       c.Connection.DefaultTimeout,
		AzureConnectTimeout:  c.Connection.AzureMinTimeout,
		AzureSuffix:          c.Connection.AzureSuffix,
		ApplicationName:      c.Connection.ApplicationName,
		MaxDisplayLength:     c.Display.MaxLength,
		DefaultDatabaseLabel: c.Display.DefaultDatabase,
	}
}

// LoadConfig loads configuration from YAML file and environment variables.
// An explicit path overrides the default search locations.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.config/sip")
		v.AddConfigPath(".")
	}

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("SIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; defaults and environment carry the full config.
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ValidateConfig validates the configuration values
func ValidateConfig(cfg *Config) error {
	if cfg.Connection.DefaultTimeout < 1 {
		return fmt.Errorf("connection.default_timeout must be >= 1, got %d", cfg.Connection.DefaultTimeout)
	}
	if cfg.Connection.AzureMinTimeout < cfg.Connection.DefaultTimeout {
		return fmt.Errorf("connection.azure_min_timeout (%d) must be >= default_timeout (%d)",
			cfg.Connection.AzureMinTimeout, cfg.Connection.DefaultTimeout)
	}
	if cfg.Connection.ApplicationName == "" {
		return fmt.Errorf("connection.application_name cannot be empty")
	}

	if cfg.Display.MaxLength < 10 {
		return fmt.Errorf("display.max_length must be >= 10, got %d", cfg.Display.MaxLength)
	}
	if cfg.Display.DefaultDatabase == "" {
		return fmt.Errorf("display.default_database cannot be empty")
	}

	if cfg.Recent.Limit < 1 {
		return fmt.Errorf("recent.limit must be >= 1, got %d", cfg.Recent.Limit)
	}

	validThemes := []string{"dark", "light"}
	validTheme := false
	for _, theme := range validThemes {
		if cfg.UI.Theme == theme {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("ui.theme must be one of: %v, got %s", validThemes, cfg.UI.Theme)
	}

	return nil
}

// applyDefaults sets default configuration values
func applyDefaults(v *viper.Viper) {
	stock := connection.DefaultSettings()

	// Connection-defaulting constants
	v.SetDefault("connection.default_timeout", stock.ConnectTimeout)
	v.SetDefault("connection.azure_min_timeout", stock.AzureConnectTimeout)
	v.SetDefault("connection.azure_suffix", stock.AzureSuffix)
	v.SetDefault("connection.application_name", stock.ApplicationName)

	// Display constants
	v.SetDefault("display.max_length", stock.MaxDisplayLength)
	v.SetDefault("display.default_database", stock.DefaultDatabaseLabel)

	// Storage paths
	v.SetDefault("profiles_path", filepath.Join(configDir(), "profiles.yaml"))
	v.SetDefault("recent.path", filepath.Join(configDir(), "recent.db"))
	v.SetDefault("recent.limit", 25)

	// UI defaults
	v.SetDefault("ui.theme", "dark")
	v.SetDefault("ui.date_format", "2006-01-02 15:04:05")

	// Debug default
	v.SetDefault("debug", false)
}

// configDir returns the sip configuration directory.
func configDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.TempDir()
	}
	return filepath.Join(homeDir, ".config", "sip")
}
