package profiles

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/sip/internal/connection"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	s, err := NewStore(path)
	require.NoError(t, err)
	return s, path
}

func TestStore_AddGetList(t *testing.T) {
	s, _ := testStore(t)

	p, err := s.Add(connection.Profile{
		Name: "Prod",
		Info: connection.Info{
			Server:   "prod.database.windows.net",
			Database: "orders",
			User:     "app",
			Provider: connection.ProviderSQLServer,
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID, "Add should assign an ID")

	got, ok := s.Get("Prod")
	require.True(t, ok)
	assert.Equal(t, "prod.database.windows.net", got.Server)

	_, err = s.Add(connection.Profile{Name: "Prod"})
	assert.Error(t, err, "duplicate names are rejected")

	_, err = s.Add(connection.Profile{})
	assert.Error(t, err, "empty names are rejected")

	_, err = s.Add(connection.Profile{Name: "Dev", Info: connection.Info{Server: "localhost"}})
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Dev", list[0].Name, "List is sorted by name")
	assert.Equal(t, "Prod", list[1].Name)
}

func TestStore_PersistsAcrossLoads(t *testing.T) {
	s, path := testStore(t)

	_, err := s.Add(connection.Profile{
		Name: "Staging",
		Info: connection.Info{Server: "staging", Database: "db", Encrypt: true},
	})
	require.NoError(t, err)

	reloaded, err := NewStore(path)
	require.NoError(t, err)

	got, ok := reloaded.Get("Staging")
	require.True(t, ok)
	assert.Equal(t, "staging", got.Server)
	assert.True(t, got.Encrypt)
}

func TestStore_UpdateAndRemove(t *testing.T) {
	s, _ := testStore(t)

	p, err := s.Add(connection.Profile{Name: "Dev", Info: connection.Info{Server: "old"}})
	require.NoError(t, err)

	p.Server = "new"
	require.NoError(t, s.Update(p))
	got, _ := s.Get("Dev")
	assert.Equal(t, "new", got.Server)
	assert.Equal(t, p.ID, got.ID, "Update keeps the profile ID")

	assert.Error(t, s.Update(connection.Profile{Name: "missing"}))

	require.NoError(t, s.Remove("Dev"))
	_, ok := s.Get("Dev")
	assert.False(t, ok)
	assert.Error(t, s.Remove("Dev"))
}
