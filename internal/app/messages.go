package app

import (
	"time"

	"github.com/willibrandon/sip/internal/connection"
	"github.com/willibrandon/sip/internal/ui/components"
)

// connectResultMsg carries the outcome of a connection test.
type connectResultMsg struct {
	info   connection.Info
	server connection.ServerInfo
	err    error
}

// statusTickMsg drives the status bar clock.
type statusTickMsg time.Time

// itemsReloadedMsg carries a freshly built picklist.
type itemsReloadedMsg struct {
	items []components.PickItem
	err   error
}
