package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/microsoft/go-mssqldb"

	"github.com/willibrandon/sip/internal/connection"
	"github.com/willibrandon/sip/internal/logger"
)

// Open opens a database handle for a normalized connection record.
// The handle is lazily connected; use Validate or Test to verify it.
func Open(info *connection.Info) (*sql.DB, error) {
	driver, dsn, err := BuildDSN(info)
	if err != nil {
		return nil, err
	}

	logger.Debug("Opening database connection",
		"provider", driver,
		"server", info.Server,
		"database", info.Database,
		"user", info.User,
	)

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driver, err)
	}

	// Pool settings sized for an interactive tool
	conn.SetMaxOpenConns(5)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(10 * time.Minute)

	return conn, nil
}

// Validate validates the connection by pinging within the record's
// connect timeout.
func Validate(ctx context.Context, conn *sql.DB, info *connection.Info) error {
	timeout := time.Duration(info.ConnectTimeout) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("connection validation failed: %w", err)
	}
	return nil
}

// versionQuery returns the server-version query for a provider.
func versionQuery(provider connection.Provider) string {
	switch provider {
	case connection.ProviderPostgres:
		return "SELECT version()"
	case connection.ProviderMySQL:
		return "SELECT VERSION()"
	default:
		return "SELECT @@VERSION"
	}
}

// GetServerInfo retrieves server metadata from an open connection.
func GetServerInfo(ctx context.Context, conn *sql.DB, info *connection.Info) (connection.ServerInfo, error) {
	var version string
	err := conn.QueryRowContext(ctx, versionQuery(info.Provider)).Scan(&version)
	if err != nil {
		logger.Error("Failed to get server version", "error", err)
		return connection.ServerInfo{}, fmt.Errorf("failed to get server version: %w", err)
	}
	logger.Debug("Server version retrieved", "version", version)
	return connection.ServerInfo{ServerVersion: version}, nil
}

// Test opens a connection for the record, validates it, and returns the
// server metadata. The connection is closed before returning.
func Test(ctx context.Context, info *connection.Info) (connection.ServerInfo, error) {
	conn, err := Open(info)
	if err != nil {
		return connection.ServerInfo{}, err
	}
	defer conn.Close()

	if err := Validate(ctx, conn, info); err != nil {
		logger.Error("Connection test failed",
			"server", info.Server,
			"database", info.Database,
			"error", err,
		)
		return connection.ServerInfo{}, err
	}

	srv, err := GetServerInfo(ctx, conn, info)
	if err != nil {
		return connection.ServerInfo{}, err
	}

	logger.Info("Connection test succeeded",
		"server", info.Server,
		"database", info.Database,
		"version", srv.ServerVersion,
	)
	return srv, nil
}
