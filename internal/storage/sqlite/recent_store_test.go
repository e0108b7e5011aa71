package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/willibrandon/sip/internal/connection"
)

func setupTestRecentStore(t *testing.T, limit int) *RecentStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewRecentStore(db, limit)
}

func TestRecentStore_AddAndGet(t *testing.T) {
	store := setupTestRecentStore(t, 10)

	info := connection.Info{
		Server:   "s1",
		Database: "db1",
		User:     "bob",
		Provider: connection.ProviderSQLServer,
		AuthType: connection.AuthSQLLogin,
		Encrypt:  true,
	}
	if err := store.Add(&info); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	entries, err := store.GetRecent()
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	got := entries[0].Info
	if got.Server != "s1" || got.Database != "db1" || got.User != "bob" {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.Provider != connection.ProviderSQLServer || got.AuthType != connection.AuthSQLLogin {
		t.Errorf("provider/auth not round-tripped: %+v", got)
	}
	if !got.Encrypt {
		t.Error("encrypt flag not round-tripped")
	}
}

func TestRecentStore_DedupesMovesToTop(t *testing.T) {
	store := setupTestRecentStore(t, 10)

	a := connection.Info{Server: "a", Provider: connection.ProviderPostgres}
	b := connection.Info{Server: "b", Provider: connection.ProviderPostgres}

	if err := store.Add(&a); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := store.Add(&b); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := store.Add(&a); err != nil {
		t.Fatal(err)
	}

	entries, err := store.GetRecent()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("duplicate should collapse, got %d entries", len(entries))
	}
	if entries[0].Info.Server != "a" {
		t.Errorf("re-added connection should be first, got %q", entries[0].Info.Server)
	}
}

func TestRecentStore_CapsAtLimit(t *testing.T) {
	store := setupTestRecentStore(t, 3)

	servers := []string{"s1", "s2", "s3", "s4", "s5"}
	for _, server := range servers {
		info := connection.Info{Server: server, Provider: connection.ProviderMySQL}
		if err := store.Add(&info); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	entries, err := store.GetRecent()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries after cap, got %d", len(entries))
	}
	if entries[0].Info.Server != "s5" {
		t.Errorf("newest entry should survive, got %q", entries[0].Info.Server)
	}
}

func TestRecentStore_Clear(t *testing.T) {
	store := setupTestRecentStore(t, 10)

	info := connection.Info{Server: "s1"}
	if err := store.Add(&info); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}

	entries, err := store.GetRecent()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty list after Clear, got %d", len(entries))
	}
}
