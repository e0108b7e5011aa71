package sqlite

import (
	"strings"
	"time"

	"github.com/willibrandon/sip/internal/connection"
)

// RecentStore provides access to the recently-used-connections list.
type RecentStore struct {
	db    *DB
	limit int
}

// NewRecentStore creates a recent-connections store that keeps at most
// limit entries.
func NewRecentStore(db *DB, limit int) *RecentStore {
	if limit < 1 {
		limit = 1
	}
	return &RecentStore{db: db, limit: limit}
}

// Fingerprint identifies a connection target. Two connections to the
// same server, database, user, provider, and auth type collapse into a
// single recent entry; callers use it wherever connections need to be
// compared for identity.
func Fingerprint(info *connection.Info) string {
	return strings.Join([]string{
		info.Server,
		info.Database,
		info.User,
		string(info.Provider),
		string(info.AuthType),
	}, "|")
}

// Add records a successful connection with shell-style deduplication.
// If the same target exists, its timestamp moves to the top; otherwise
// a new entry is inserted. The list is capped at the configured limit.
func (s *RecentStore) Add(info *connection.Info) error {
	fp := Fingerprint(info)
	now := time.Now()

	encrypt := 0
	if info.Encrypt {
		encrypt = 1
	}

	result, err := s.db.conn.Exec(`
		UPDATE recent_connections
		SET server = ?, database = ?, user = ?, provider = ?, auth_type = ?, encrypt = ?, connected_at = ?
		WHERE fingerprint = ?
	`, info.Server, info.Database, info.User, string(info.Provider), string(info.AuthType), encrypt, now, fp)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		_, err = s.db.conn.Exec(`
			INSERT INTO recent_connections (fingerprint, server, database, user, provider, auth_type, encrypt, connected_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, fp, info.Server, info.Database, info.User, string(info.Provider), string(info.AuthType), encrypt, now)
		if err != nil {
			return err
		}
	}

	// Cleanup old entries beyond the cap
	_, _ = s.db.conn.Exec(`
		DELETE FROM recent_connections
		WHERE id NOT IN (
			SELECT id FROM recent_connections
			ORDER BY connected_at DESC
			LIMIT ?
		)
	`, s.limit)

	return nil
}

// RecentEntry is one row of the recent-connections list.
type RecentEntry struct {
	ID          int64
	Info        connection.Info
	ConnectedAt time.Time
}

// GetRecent returns the most recently used connections, newest first.
func (s *RecentStore) GetRecent() ([]RecentEntry, error) {
	rows, err := s.db.conn.Query(`
		SELECT id, server, database, user, provider, auth_type, encrypt, connected_at
		FROM recent_connections
		ORDER BY connected_at DESC
		LIMIT ?
	`, s.limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []RecentEntry
	for rows.Next() {
		var e RecentEntry
		var provider, authType string
		var encrypt int
		if err := rows.Scan(&e.ID, &e.Info.Server, &e.Info.Database, &e.Info.User,
			&provider, &authType, &encrypt, &e.ConnectedAt); err != nil {
			return nil, err
		}
		e.Info.Provider = connection.Provider(provider)
		e.Info.AuthType = connection.AuthType(authType)
		e.Info.Encrypt = encrypt != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes all recent connections.
func (s *RecentStore) Clear() error {
	_, err := s.db.conn.Exec(`DELETE FROM recent_connections`)
	return err
}
