// Package app wires the sip picker TUI together.
package app

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/willibrandon/sip/internal/config"
	"github.com/willibrandon/sip/internal/connection"
	"github.com/willibrandon/sip/internal/logger"
	"github.com/willibrandon/sip/internal/profiles"
	"github.com/willibrandon/sip/internal/storage/sqlite"
	"github.com/willibrandon/sip/internal/ui"
	"github.com/willibrandon/sip/internal/ui/components"
	"github.com/willibrandon/sip/internal/ui/styles"
)

// Model represents the main Bubbletea application model
type Model struct {
	// Configuration
	config *config.Config
	env    connection.HostEnv

	// Stores
	store    *profiles.Store
	recentDB *sqlite.DB
	recent   *sqlite.RecentStore

	// UI state
	width  int
	height int

	// Keyboard bindings
	keys ui.KeyMap

	// UI components
	picklist  *components.PickList
	detail    *components.DetailPanel
	statusBar *components.StatusBar

	// Server metadata per connection fingerprint, filled in as
	// connections are tested. The mutex guards the map: Update writes
	// it on the event loop while buildItems reads it from tea.Cmd
	// goroutines.
	serverInfoMu sync.RWMutex
	serverInfo   map[string]connection.ServerInfo

	// Application state
	detailsVisible bool
	helpVisible    bool
	quitting       bool
	ready          bool
}

// New creates a new application model
func New(cfg *config.Config) (*Model, error) {
	store, err := profiles.NewStore(cfg.ProfilesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile store: %w", err)
	}

	// Recent connections are best-effort: a broken MRU database should
	// not keep the picker from starting.
	var recentDB *sqlite.DB
	var recent *sqlite.RecentStore
	if recentDB, err = sqlite.Open(cfg.Recent.Path); err != nil {
		logger.Warn("Failed to open recent-connections store", "error", err)
		recentDB = nil
	} else {
		recent = sqlite.NewRecentStore(recentDB, cfg.Recent.Limit)
	}

	statusBar := components.NewStatusBar()
	statusBar.SetDateFormat(cfg.UI.DateFormat)

	return &Model{
		config:     cfg,
		env:        connection.OSEnv{},
		store:      store,
		recentDB:   recentDB,
		recent:     recent,
		keys:       ui.DefaultKeyMap(),
		picklist:   components.NewPickList(),
		detail:     components.NewDetailPanel(),
		statusBar:  statusBar,
		serverInfo: make(map[string]connection.ServerInfo),
	}, nil
}

// Cleanup releases resources held by the model.
func (m *Model) Cleanup() {
	if m.recentDB != nil {
		m.recentDB.Close()
	}
}

// Init initializes the application
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.reloadItems(), tickStatusBar())
}

// buildItems assembles the picklist: saved profiles first, then recent
// connections that do not duplicate a profile, then the new-connection
// entry. Profiles and recents dedupe on the store fingerprint so the
// same host reached through a different provider or auth type still
// shows up.
func (m *Model) buildItems() itemsReloadedMsg {
	defaults := m.config.Defaults()
	var items []components.PickItem

	seen := make(map[string]bool)
	for _, p := range m.store.List() {
		p.ApplyDefaults(defaults)
		srv := m.lookupServerInfo(&p.Info)
		items = append(items, components.PickItem{
			Label:       p.PickLabel(connection.PickItemProfile),
			Description: p.PickDescription(defaults, m.env),
			Details:     p.PickDetails(),
			Type:        connection.PickItemProfile,
			ProfileName: p.Name,
			Info:        p.Info,
			Tooltip:     p.Tooltip(srv),
		})
		seen[sqlite.Fingerprint(&p.Info)] = true
	}

	if m.recent != nil {
		entries, err := m.recent.GetRecent()
		if err != nil {
			return itemsReloadedMsg{items: items, err: err}
		}
		for _, e := range entries {
			info := e.Info
			if seen[sqlite.Fingerprint(&info)] {
				continue
			}
			info.ApplyDefaults(defaults)
			srv := m.lookupServerInfo(&info)
			items = append(items, components.PickItem{
				Label:       info.PickLabel(connection.PickItemRecent),
				Description: info.PickDescription(defaults, m.env),
				Details:     info.PickDetails(),
				Type:        connection.PickItemRecent,
				Info:        info,
				Tooltip:     info.Tooltip(srv),
			})
		}
	}

	items = append(items, components.PickItem{
		Label: "Create connection profile",
		Type:  connection.PickItemNewConnection,
	})

	return itemsReloadedMsg{items: items}
}

// lookupServerInfo returns cached server metadata for a connection, or
// nil when the connection has not been tested this session.
func (m *Model) lookupServerInfo(info *connection.Info) *connection.ServerInfo {
	m.serverInfoMu.RLock()
	defer m.serverInfoMu.RUnlock()

	if srv, ok := m.serverInfo[sqlite.Fingerprint(info)]; ok {
		return &srv
	}
	return nil
}

// storeServerInfo caches server metadata for a tested connection.
func (m *Model) storeServerInfo(info connection.Info, srv connection.ServerInfo) {
	m.serverInfoMu.Lock()
	m.serverInfo[sqlite.Fingerprint(&info)] = srv
	m.serverInfoMu.Unlock()
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picklist.SetSize(msg.Width, msg.Height-3)
		m.detail.SetSize(msg.Width)
		m.statusBar.SetSize(msg.Width)
		m.ready = true
		return m, nil

	case itemsReloadedMsg:
		if msg.err != nil {
			m.statusBar.SetError(msg.err.Error())
		}
		m.picklist.SetItems(msg.items)
		m.statusBar.SetItemCount(m.picklist.Len())
		m.refreshDetail()
		return m, nil

	case connectResultMsg:
		if msg.err != nil {
			m.statusBar.SetError(fmt.Sprintf("Connection failed: %v", msg.err))
			return m, nil
		}
		m.storeServerInfo(msg.info, msg.server)
		m.statusBar.SetMessage("Connected: " + msg.server.ServerVersion)
		return m, m.recordRecent(msg.info)

	case statusTickMsg:
		m.statusBar.SetTimestamp(time.Time(msg))
		return m, tickStatusBar()
	}

	return m, nil
}

// handleKeyPress routes keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.picklist.MoveUp()
		m.refreshDetail()

	case key.Matches(msg, m.keys.Down):
		m.picklist.MoveDown()
		m.refreshDetail()

	case key.Matches(msg, m.keys.PageUp):
		m.picklist.PageUp()
		m.refreshDetail()

	case key.Matches(msg, m.keys.PageDown):
		m.picklist.PageDown()
		m.refreshDetail()

	case key.Matches(msg, m.keys.Home):
		m.picklist.GoToTop()
		m.refreshDetail()

	case key.Matches(msg, m.keys.End):
		m.picklist.GoToBottom()
		m.refreshDetail()

	case key.Matches(msg, m.keys.Connect):
		if item, ok := m.picklist.Selected(); ok {
			if item.Type == connection.PickItemNewConnection {
				m.statusBar.SetMessage("Add a profile with: sip add <name>")
				return m, nil
			}
			m.statusBar.SetWorking("Connecting to " + item.Label)
			return m, m.testConnection(item.Info)
		}

	case key.Matches(msg, m.keys.Details):
		m.detailsVisible = !m.detailsVisible
		m.refreshDetail()

	case key.Matches(msg, m.keys.Remove):
		if item, ok := m.picklist.Selected(); ok && item.Type == connection.PickItemProfile {
			if err := m.store.Remove(item.ProfileName); err != nil {
				m.statusBar.SetError(err.Error())
			} else {
				m.statusBar.SetMessage("Removed profile " + item.ProfileName)
				return m, m.reloadItems()
			}
		}

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadItems()

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
	}

	return m, nil
}

// refreshDetail updates the detail panel for the current selection.
func (m *Model) refreshDetail() {
	if !m.detailsVisible {
		m.detail.SetTooltip("")
		return
	}
	if item, ok := m.picklist.Selected(); ok {
		m.detail.SetTooltip(item.Tooltip)
	} else {
		m.detail.SetTooltip("")
	}
}

// View renders the application
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	title := styles.TitleStyle.Render("sip — pick a connection")

	sections := []string{title, m.picklist.View()}
	if m.detailsVisible {
		if detail := m.detail.View(); detail != "" {
			sections = append(sections, detail)
		}
	}
	if m.helpVisible {
		sections = append(sections, m.helpView())
	}
	sections = append(sections, m.statusBar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// helpView renders a one-line summary of the key bindings.
func (m *Model) helpView() string {
	bindings := []key.Binding{
		m.keys.Up, m.keys.Down, m.keys.Connect, m.keys.Details,
		m.keys.Remove, m.keys.Refresh, m.keys.Help, m.keys.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styles.DescriptionStyle.Render(strings.Join(parts, " • "))
}
