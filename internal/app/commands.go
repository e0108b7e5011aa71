package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/willibrandon/sip/internal/connection"
	"github.com/willibrandon/sip/internal/db"
	"github.com/willibrandon/sip/internal/logger"
)

// testConnection opens and validates a connection in the background.
func (m *Model) testConnection(info connection.Info) tea.Cmd {
	defaults := m.config.Defaults()
	return func() tea.Msg {
		info.ApplyDefaults(defaults)

		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(info.ConnectTimeout)*time.Second+5*time.Second)
		defer cancel()

		server, err := db.Test(ctx, &info)
		return connectResultMsg{info: info, server: server, err: err}
	}
}

// recordRecent stores a successfully tested connection in the MRU list
// and rebuilds the picklist.
func (m *Model) recordRecent(info connection.Info) tea.Cmd {
	return func() tea.Msg {
		if m.recent != nil {
			if err := m.recent.Add(&info); err != nil {
				logger.Warn("Failed to record recent connection", "error", err)
			}
		}
		return m.buildItems()
	}
}

// reloadItems rebuilds the picklist from the profile and recent stores.
func (m *Model) reloadItems() tea.Cmd {
	return func() tea.Msg {
		return m.buildItems()
	}
}

// tickStatusBar keeps the status bar clock current.
func tickStatusBar() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}
