// Package styles provides centralized Lipgloss styling for the sip UI.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette for the sip UI
var (
	// UI element colors
	ColorBorder  = lipgloss.Color("240") // Gray - all borders
	ColorAccent  = lipgloss.Color("6")   // Cyan - titles, highlights
	ColorMuted   = lipgloss.Color("8")   // Dark gray - secondary text
	ColorSuccess = lipgloss.Color("10")  // Green - success messages
	ColorError   = lipgloss.Color("9")   // Red - error messages

	// Selection colors
	ColorSelectedFg = lipgloss.Color("229") // Light yellow text
	ColorSelectedBg = lipgloss.Color("57")  // Purple background
)

// Picklist styles
var (
	// TitleStyle is for section headings in the picklist
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// ItemStyle is for unselected picklist rows
	ItemStyle = lipgloss.NewStyle()

	// SelectedItemStyle is for the selected picklist row
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorSelectedFg).
				Background(ColorSelectedBg)

	// DescriptionStyle is for the bracketed connection summary
	DescriptionStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)
)

// Panel styles
var (
	// DetailPanelStyle wraps the connection detail pane
	DetailPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)
)

// Status bar styles
var (
	// StatusBarStyle is the base style for the status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("236"))

	// StatusSuccessStyle highlights success messages
	StatusSuccessStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Background(lipgloss.Color("236"))

	// StatusErrorStyle highlights error messages
	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Background(lipgloss.Color("236"))
)
