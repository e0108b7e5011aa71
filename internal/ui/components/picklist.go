// Package components provides reusable UI components for the sip picker.
package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/willibrandon/sip/internal/connection"
	"github.com/willibrandon/sip/internal/ui/styles"
)

// PickItem is one row of the connection picklist. Label, Description,
// and Details come straight from the connection formatting helpers.
type PickItem struct {
	Label       string
	Description string
	Details     string
	Type        connection.PickItemType

	// ProfileName is set for profile-backed items so actions can find
	// the profile in the store.
	ProfileName string
	// Info is the connection record the item represents.
	Info connection.Info
	// Tooltip is the detail-pane text for the item.
	Tooltip string
}

// PickList is a scrolling picklist of connections.
type PickList struct {
	items  []PickItem
	cursor int
	offset int
	width  int
	height int
}

// NewPickList creates an empty picklist.
func NewPickList() *PickList {
	return &PickList{width: 60, height: 10}
}

// SetItems replaces the picklist contents, clamping the cursor.
func (p *PickList) SetItems(items []PickItem) {
	p.items = items
	if p.cursor >= len(items) {
		p.cursor = len(items) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	p.scrollIntoView()
}

// SetSize sets the dimensions of the picklist.
func (p *PickList) SetSize(width, height int) {
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}
	p.width = width
	p.height = height
	p.scrollIntoView()
}

// Len returns the number of items.
func (p *PickList) Len() int {
	return len(p.items)
}

// Selected returns the item under the cursor.
func (p *PickList) Selected() (PickItem, bool) {
	if len(p.items) == 0 {
		return PickItem{}, false
	}
	return p.items[p.cursor], true
}

// MoveUp moves the cursor up one row.
func (p *PickList) MoveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
	p.scrollIntoView()
}

// MoveDown moves the cursor down one row.
func (p *PickList) MoveDown() {
	if p.cursor < len(p.items)-1 {
		p.cursor++
	}
	p.scrollIntoView()
}

// PageUp moves the cursor up one page.
func (p *PickList) PageUp() {
	p.cursor -= p.height
	if p.cursor < 0 {
		p.cursor = 0
	}
	p.scrollIntoView()
}

// PageDown moves the cursor down one page.
func (p *PickList) PageDown() {
	p.cursor += p.height
	if p.cursor > len(p.items)-1 {
		p.cursor = len(p.items) - 1
	}
	p.scrollIntoView()
}

// GoToTop moves the cursor to the first item.
func (p *PickList) GoToTop() {
	p.cursor = 0
	p.scrollIntoView()
}

// GoToBottom moves the cursor to the last item.
func (p *PickList) GoToBottom() {
	if len(p.items) > 0 {
		p.cursor = len(p.items) - 1
	}
	p.scrollIntoView()
}

// scrollIntoView keeps the cursor inside the visible window.
func (p *PickList) scrollIntoView() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+p.height {
		p.offset = p.cursor - p.height + 1
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

// View renders the visible window of the picklist.
func (p *PickList) View() string {
	if len(p.items) == 0 {
		return styles.DescriptionStyle.Render("No saved connections. Add one with: sip add")
	}

	var b strings.Builder
	end := p.offset + p.height
	if end > len(p.items) {
		end = len(p.items)
	}

	for i := p.offset; i < end; i++ {
		item := p.items[i]

		// Compose the plain row first so truncation sees no ANSI codes.
		line := item.Label
		if item.Description != "" {
			line += "  " + item.Description
		}
		// Details is reserved and always empty; rendering it anyway keeps
		// the row layout stable if that ever changes.
		if item.Details != "" {
			line += "  " + item.Details
		}
		line = truncateLine(line, p.width-2)

		if i == p.cursor {
			line = styles.SelectedItemStyle.Render("> " + line)
		} else {
			line = styles.ItemStyle.Render("  " + line)
		}

		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// truncateLine fits a styled line into the given display width.
func truncateLine(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth-1, "…")
}
