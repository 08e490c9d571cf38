package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Text colors
const (
	ColorYellow  = "3"
	ColorMagenta = "5"

	ColorDarkRed     = "160"
	ColorMediumGreen = "40"
	ColorLightBlue   = "39"
	ColorDimGray     = "240"
)

// Global style definitions
var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMediumGreen))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkRed)).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLightBlue))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDimGray))
)
