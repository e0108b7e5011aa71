// Package db opens and validates database connections built from
// normalized connection records.
package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/willibrandon/sip/internal/connection"
)

// Driver names as registered with database/sql.
const (
	driverSQLServer = "sqlserver"
	driverPostgres  = "pgx"
	driverMySQL     = "mysql"
)

// BuildDSN returns the database/sql driver name and DSN for a
// connection record. The record should already be normalized with
// ApplyDefaults; an explicit connection string is passed through as-is.
func BuildDSN(info *connection.Info) (driver, dsn string, err error) {
	switch info.Provider {
	case connection.ProviderSQLServer, "":
		return driverSQLServer, sqlServerDSN(info), nil
	case connection.ProviderPostgres:
		return driverPostgres, postgresDSN(info), nil
	case connection.ProviderMySQL:
		return driverMySQL, mysqlDSN(info), nil
	default:
		return "", "", fmt.Errorf("unknown provider %q", info.Provider)
	}
}

// sqlServerDSN builds an ADO-style connection string for go-mssqldb.
func sqlServerDSN(info *connection.Info) string {
	if info.ConnectionString != "" {
		return info.ConnectionString
	}

	parts := []string{
		"server=" + info.Server,
		"database=" + info.Database,
		fmt.Sprintf("connection timeout=%d", info.ConnectTimeout),
		"app name=" + info.ApplicationName,
	}
	if info.Port != 0 {
		parts = append(parts, fmt.Sprintf("port=%d", info.Port))
	}
	if info.Encrypt {
		parts = append(parts, "encrypt=true")
	} else {
		parts = append(parts, "encrypt=disable")
	}
	// Integrated connections carry no credentials; the driver picks up
	// the host OS identity.
	if info.AuthType != connection.AuthIntegrated {
		parts = append(parts, "user id="+info.User, "password="+info.Password)
	}
	return strings.Join(parts, ";")
}

// postgresDSN builds a keyword/value connection string for pgx.
func postgresDSN(info *connection.Info) string {
	if info.ConnectionString != "" {
		return info.ConnectionString
	}

	port := info.Port
	if port == 0 {
		port = 5432
	}
	sslMode := "disable"
	if info.Encrypt {
		sslMode = "require"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d application_name=%s",
		info.Server, port, info.User, info.Password, info.Database, sslMode,
		info.ConnectTimeout, info.ApplicationName,
	)
}

// mysqlDSN builds a MySQL DSN via the driver's own config type.
func mysqlDSN(info *connection.Info) string {
	if info.ConnectionString != "" {
		return info.ConnectionString
	}

	port := info.Port
	if port == 0 {
		port = 3306
	}
	cfg := mysql.NewConfig()
	cfg.User = info.User
	cfg.Passwd = info.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", info.Server, port)
	cfg.DBName = info.Database
	cfg.Timeout = time.Duration(info.ConnectTimeout) * time.Second
	cfg.ParseTime = true
	if info.Encrypt {
		cfg.TLSConfig = "true"
	}
	return cfg.FormatDSN()
}
