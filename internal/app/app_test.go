package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/willibrandon/sip/internal/config"
	"github.com/willibrandon/sip/internal/connection"
)

func testModel(t *testing.T) *Model {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		Connection: config.ConnectionConfig{
			DefaultTimeout:  15,
			AzureMinTimeout: 30,
			AzureSuffix:     ".database.windows.net",
			ApplicationName: "sip",
		},
		Display: config.DisplayConfig{
			MaxLength:       50,
			DefaultDatabase: "<default>",
		},
		Recent:       config.RecentConfig{Path: filepath.Join(dir, "recent.db"), Limit: 10},
		UI:           config.UIConfig{Theme: "dark", DateFormat: "2006-01-02 15:04:05"},
		ProfilesPath: filepath.Join(dir, "profiles.yaml"),
	}

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(m.Cleanup)
	return m
}

// Reloads run on background goroutines while connection results land on
// the event loop; both sides touch the server-metadata cache.
func TestBuildItems_ConcurrentWithConnectResults(t *testing.T) {
	m := testModel(t)

	if _, err := m.store.Add(connection.Profile{
		Name: "Prod",
		Info: connection.Info{Server: "s1", Database: "db1", User: "bob"},
	}); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			m.buildItems()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			m.storeServerInfo(
				connection.Info{Server: "s1", Database: "db1", User: "bob"},
				connection.ServerInfo{ServerVersion: fmt.Sprintf("16.0.%d", i)},
			)
		}
	}()
	wg.Wait()

	srv := m.lookupServerInfo(&connection.Info{Server: "s1", Database: "db1", User: "bob"})
	if srv == nil || srv.ServerVersion != "16.0.99" {
		t.Errorf("last stored version should win, got %+v", srv)
	}
}

func TestBuildItems_ProviderDistinguishesRecents(t *testing.T) {
	m := testModel(t)

	if _, err := m.store.Add(connection.Profile{
		Name: "Prod",
		Info: connection.Info{Server: "s1", Database: "db1", User: "bob", Provider: connection.ProviderSQLServer},
	}); err != nil {
		t.Fatal(err)
	}

	// Same host, database, and user, reached through a different provider.
	viaPostgres := connection.Info{Server: "s1", Database: "db1", User: "bob", Provider: connection.ProviderPostgres}
	if err := m.recent.Add(&viaPostgres); err != nil {
		t.Fatal(err)
	}

	msg := m.buildItems()
	if msg.err != nil {
		t.Fatal(msg.err)
	}

	var recents int
	for _, item := range msg.items {
		if item.Type == connection.PickItemRecent {
			recents++
		}
	}
	if recents != 1 {
		t.Errorf("recent entry with a different provider should not hide behind the profile, got %d recents", recents)
	}

	// A recent that exactly matches the profile is deduplicated.
	viaSQLServer := connection.Info{Server: "s1", Database: "db1", User: "bob", Provider: connection.ProviderSQLServer}
	if err := m.recent.Add(&viaSQLServer); err != nil {
		t.Fatal(err)
	}
	msg = m.buildItems()
	recents = 0
	for _, item := range msg.items {
		if item.Type == connection.PickItemRecent {
			recents++
		}
	}
	if recents != 1 {
		t.Errorf("exact duplicate of a profile should be hidden, got %d recents", recents)
	}
}

func TestBuildItems_EndsWithNewConnectionEntry(t *testing.T) {
	m := testModel(t)

	msg := m.buildItems()
	if msg.err != nil {
		t.Fatal(msg.err)
	}
	if len(msg.items) == 0 {
		t.Fatal("picklist should never be empty")
	}
	last := msg.items[len(msg.items)-1]
	if last.Type != connection.PickItemNewConnection {
		t.Errorf("last item should be the new-connection entry, got %+v", last)
	}
}

func TestNewConnectionEntry_ShowsHintOnConnect(t *testing.T) {
	m := testModel(t)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(m.buildItems())
	m.picklist.GoToBottom()

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "sip add") {
		t.Errorf("connecting the new-connection entry should hint at sip add, got %q", m.View())
	}
}

func TestHelpToggle(t *testing.T) {
	m := testModel(t)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(m.buildItems())

	if strings.Contains(m.View(), "remove profile") {
		t.Fatal("help line should start hidden")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	if !strings.Contains(m.View(), "remove profile") {
		t.Error("help key should show the bindings line")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if strings.Contains(m.View(), "remove profile") {
		t.Error("help key should toggle the bindings line off")
	}
}
