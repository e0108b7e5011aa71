package components

import (
	"strings"

	"github.com/willibrandon/sip/internal/ui/styles"
)

// DetailPanel displays the hover text for the selected connection.
type DetailPanel struct {
	content string
	width   int
}

// NewDetailPanel creates an empty detail panel.
func NewDetailPanel() *DetailPanel {
	return &DetailPanel{width: 60}
}

// SetSize sets the width of the panel.
func (d *DetailPanel) SetSize(width int) {
	if width < 20 {
		width = 20
	}
	d.width = width
}

// SetTooltip sets the panel content from CRLF-terminated tooltip text.
func (d *DetailPanel) SetTooltip(tooltip string) {
	// The tooltip contract terminates every line with CRLF; the terminal
	// wants plain newlines and no trailing blank line.
	d.content = strings.TrimRight(strings.ReplaceAll(tooltip, "\r\n", "\n"), "\n")
}

// View renders the detail panel.
func (d *DetailPanel) View() string {
	if d.content == "" {
		return ""
	}
	return styles.DetailPanelStyle.Width(d.width - 2).Render(d.content)
}
