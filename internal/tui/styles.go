package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ledmatrix/onboard/internal/models"
)

var (
	colorCyan   = lipgloss.Color("6")  // Cyan - focus, cursor
	colorYellow = lipgloss.Color("3")  // Yellow - loading
	colorRed    = lipgloss.Color("1")  // Red - errors
	colorGreen  = lipgloss.Color("2")  // Green - success
	colorWhite  = lipgloss.Color("15") // White - text
	colorGray   = lipgloss.Color("8")  // Gray - muted text
	colorOrange = lipgloss.Color(models.DefaultLineColor)
)

// Text styles
var (
	styleMuted   = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader  = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleLoading = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)
	styleError   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleReset   = lipgloss.NewStyle().Foreground(colorGray).Underline(true)
	styleLogo    = lipgloss.NewStyle().Foreground(colorOrange).Bold(true)
)

// Panel border styles
var (
	stylePanelFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorCyan)

	stylePanelNormal = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorGray)

	stylePanelDisabled = lipgloss.NewStyle().
				Border(lipgloss.HiddenBorder())
)

// Selected item in a list
var styleSelected = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)

// Save button states
var (
	styleButton = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(colorOrange).
			Bold(true).
			Padding(0, 2)

	styleButtonFocused = styleButton.
				Background(colorCyan)

	styleButtonDisabled = lipgloss.NewStyle().
				Foreground(colorGray).
				Background(lipgloss.Color("236")).
				Padding(0, 2)
)

// Status bar at the bottom
var styleStatusBar = lipgloss.NewStyle().
	Foreground(colorGray).
	Background(lipgloss.Color("0"))

// styleBadge renders a line code on the line's own colour
func styleBadge(color string) lipgloss.Style {
	if color == "" {
		color = models.DefaultLineColor
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(color)).
		Bold(true).
		Padding(0, 1)
}
