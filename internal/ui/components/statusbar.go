package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/willibrandon/sip/internal/ui/styles"
)

// StatusBar represents the status bar component
type StatusBar struct {
	width int

	// Status data
	message    string
	isError    bool
	working    bool
	timestamp  time.Time
	dateFormat string
	itemCount  int
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	return &StatusBar{
		dateFormat: "2006-01-02 15:04:05",
	}
}

// SetSize sets the width of the status bar
func (s *StatusBar) SetSize(width int) {
	s.width = width
}

// SetDateFormat sets the date format string
func (s *StatusBar) SetDateFormat(format string) {
	s.dateFormat = format
}

// SetTimestamp sets the current timestamp
func (s *StatusBar) SetTimestamp(timestamp time.Time) {
	s.timestamp = timestamp
}

// SetItemCount sets the number of listed connections
func (s *StatusBar) SetItemCount(count int) {
	s.itemCount = count
}

// SetMessage sets an informational message
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
	s.isError = false
	s.working = false
}

// SetError sets an error message
func (s *StatusBar) SetError(msg string) {
	s.message = msg
	s.isError = true
	s.working = false
}

// SetWorking marks a connection attempt in flight
func (s *StatusBar) SetWorking(msg string) {
	s.message = msg
	s.isError = false
	s.working = true
}

// View renders the status bar
func (s *StatusBar) View() string {
	left := fmt.Sprintf(" %d connections ", s.itemCount)

	msg := s.message
	switch {
	case s.isError:
		msg = styles.StatusErrorStyle.Render(msg)
	case s.working:
		msg = styles.StatusBarStyle.Render(msg + "…")
	case msg != "":
		msg = styles.StatusSuccessStyle.Render(msg)
	}

	right := ""
	if !s.timestamp.IsZero() {
		right = " " + s.timestamp.Format(s.dateFormat) + " "
	}

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(msg) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return styles.StatusBarStyle.Render(left) + msg +
		styles.StatusBarStyle.Render(strings.Repeat(" ", gap)) +
		styles.StatusBarStyle.Render(right)
}
