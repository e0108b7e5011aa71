// Package connection defines connection records and the presentation
// helpers that turn them into picklist labels, descriptions, and tooltips.
package connection

import "time"

// AuthType identifies how a connection authenticates.
type AuthType string

const (
	// AuthSQLLogin authenticates with a user name and password.
	AuthSQLLogin AuthType = "SqlLogin"
	// AuthIntegrated authenticates with the host OS identity (Windows).
	AuthIntegrated AuthType = "Integrated"
)

// Provider identifies the database engine a connection targets.
type Provider string

const (
	ProviderSQLServer Provider = "sqlserver"
	ProviderPostgres  Provider = "postgres"
	ProviderMySQL     Provider = "mysql"
)

// PickItemType tags the origin of a picklist entry. The formatting
// helpers carry it through opaquely; only the picker branches on it.
type PickItemType int

const (
	PickItemRecent PickItemType = iota
	PickItemProfile
	PickItemNewConnection
)

// Info holds the discrete properties of a database connection. When
// ConnectionString is set it overrides the discrete fields.
type Info struct {
	Server           string   `yaml:"server"`
	Port             int      `yaml:"port,omitempty"`
	Database         string   `yaml:"database"`
	User             string   `yaml:"user"`
	Password         string   `yaml:"password,omitempty"`
	ConnectTimeout   int      `yaml:"connect_timeout,omitempty"` // seconds
	Encrypt          bool     `yaml:"encrypt"`
	ApplicationName  string   `yaml:"application_name,omitempty"`
	AuthType         AuthType `yaml:"auth_type,omitempty"`
	ConnectionString string   `yaml:"connection_string,omitempty"`
	Provider         Provider `yaml:"provider,omitempty"`
}

// Profile is a saved, named connection. It is the only record variant
// that carries a profile name.
type Profile struct {
	Info `yaml:",inline"`

	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	LastUsed time.Time `yaml:"last_used,omitempty"`
}

// ServerInfo carries metadata reported by a connected server.
type ServerInfo struct {
	ServerVersion string
}

// Defaults is the constants table consumed by ApplyDefaults and the
// display helpers. Values come from configuration; DefaultSettings
// provides the stock table.
type Defaults struct {
	// ConnectTimeout is the fallback connect timeout in seconds.
	ConnectTimeout int
	// AzureConnectTimeout is the minimum timeout enforced for Azure SQL.
	AzureConnectTimeout int
	// AzureSuffix is the Azure SQL server domain suffix (case-sensitive).
	AzureSuffix string
	// ApplicationName is the fallback application name.
	ApplicationName string
	// MaxDisplayLength caps display strings, in characters.
	MaxDisplayLength int
	// DefaultDatabaseLabel is shown when a connection has no database.
	DefaultDatabaseLabel string
}

// DefaultSettings returns the stock defaults table.
func DefaultSettings() Defaults {
	return Defaults{
		ConnectTimeout:       15,
		AzureConnectTimeout:  30,
		AzureSuffix:          ".database.windows.net",
		ApplicationName:      "sip",
		MaxDisplayLength:     50,
		DefaultDatabaseLabel: "<default>",
	}
}
