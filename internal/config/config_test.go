package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Connection: ConnectionConfig{
			DefaultTimeout:  15,
			AzureMinTimeout: 30,
			AzureSuffix:     ".database.windows.net",
			ApplicationName: "sip",
		},
		Display: DisplayConfig{
			MaxLength:       50,
			DefaultDatabase: "<default>",
		},
		Recent: RecentConfig{Path: "recent.db", Limit: 25},
		UI:     UIConfig{Theme: "dark", DateFormat: "2006-01-02 15:04:05"},
	}
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, ValidateConfig(validConfig()))

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero default timeout", func(c *Config) { c.Connection.DefaultTimeout = 0 }},
		{"azure minimum below default", func(c *Config) { c.Connection.AzureMinTimeout = 5 }},
		{"empty application name", func(c *Config) { c.Connection.ApplicationName = "" }},
		{"tiny max display length", func(c *Config) { c.Display.MaxLength = 3 }},
		{"empty default database label", func(c *Config) { c.Display.DefaultDatabase = "" }},
		{"zero recent limit", func(c *Config) { c.Recent.Limit = 0 }},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, ValidateConfig(cfg))
		})
	}
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	// Without a config file the defaults carry the full config. Run from
	// an empty directory so a developer's local config.yaml is not found.
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(cwd) }()
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Connection.DefaultTimeout)
	assert.Equal(t, 30, cfg.Connection.AzureMinTimeout)
	assert.Equal(t, ".database.windows.net", cfg.Connection.AzureSuffix)
	assert.Equal(t, "sip", cfg.Connection.ApplicationName)
	assert.Equal(t, 50, cfg.Display.MaxLength)
	assert.Equal(t, "<default>", cfg.Display.DefaultDatabase)
	assert.Equal(t, 25, cfg.Recent.Limit)
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
connection:
  default_timeout: 20
  azure_min_timeout: 60
display:
  max_length: 40
ui:
  theme: light
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Connection.DefaultTimeout)
	assert.Equal(t, 60, cfg.Connection.AzureMinTimeout)
	assert.Equal(t, 40, cfg.Display.MaxLength)
	assert.Equal(t, "light", cfg.UI.Theme)

	// Untouched keys keep their defaults.
	assert.Equal(t, ".database.windows.net", cfg.Connection.AzureSuffix)
	assert.Equal(t, "<default>", cfg.Display.DefaultDatabase)
}

func TestDefaults_MapsConstants(t *testing.T) {
	cfg := validConfig()
	d := cfg.Defaults()
	assert.Equal(t, 15, d.ConnectTimeout)
	assert.Equal(t, 30, d.AzureConnectTimeout)
	assert.Equal(t, ".database.windows.net", d.AzureSuffix)
	assert.Equal(t, "sip", d.ApplicationName)
	assert.Equal(t, 50, d.MaxDisplayLength)
	assert.Equal(t, "<default>", d.DefaultDatabaseLabel)
}
