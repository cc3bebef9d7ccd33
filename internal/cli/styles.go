package cli

import "github.com/charmbracelet/lipgloss"

// Consistent color scheme across all command output
var (
	StyleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green - success
	StyleFailed  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Red - failure
	StyleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow - warnings

	StyleID        = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // Cyan - entry identifiers
	StyleDim       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // Gray - secondary detail
	StyleHighlight = lipgloss.NewStyle().Bold(true)
	StyleHeader    = lipgloss.NewStyle().Bold(true).Underline(true)
)
