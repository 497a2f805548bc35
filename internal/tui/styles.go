package tui

import "github.com/charmbracelet/lipgloss"

// Color palette. The concrete values depend on the configured theme;
// applyTheme swaps them and rebuilds every style.
var (
	colorPrimary   lipgloss.Color
	colorAccent    lipgloss.Color
	colorMuted     lipgloss.Color
	colorSuccess   lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color
	colorFg        lipgloss.Color
	colorSubtle    lipgloss.Color
	colorHighlight lipgloss.Color
)

// Styles
var (
	activeTabStyle    lipgloss.Style
	inactiveTabStyle  lipgloss.Style
	panelStyle        lipgloss.Style
	activePanelStyle  lipgloss.Style
	clockStyle        lipgloss.Style
	ringStyle         lipgloss.Style
	titleStyle        lipgloss.Style
	accentStyle       lipgloss.Style
	successStyle      lipgloss.Style
	warningStyle      lipgloss.Style
	errorStyle        lipgloss.Style
	mutedStyle        lipgloss.Style
	highlightStyle    lipgloss.Style
	headerStyle       lipgloss.Style
	footerStyle       lipgloss.Style
	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style
	todayCellStyle    lipgloss.Style
	selectedCellStyle lipgloss.Style
)

func init() {
	applyTheme("light")
}

// applyTheme installs the palette for the given theme ("light" or "dark")
// and rebuilds the derived styles.
func applyTheme(theme string) {
	if theme == "dark" {
		colorPrimary = lipgloss.Color("#7AA2F7")
		colorAccent = lipgloss.Color("#FF6B6B")
		colorMuted = lipgloss.Color("#666666")
		colorSuccess = lipgloss.Color("#2ECC71")
		colorWarning = lipgloss.Color("#F39C12")
		colorError = lipgloss.Color("#E74C3C")
		colorFg = lipgloss.Color("#C0CAF5")
		colorSubtle = lipgloss.Color("#414868")
		colorHighlight = lipgloss.Color("#6C63FF")
	} else {
		colorPrimary = lipgloss.Color("#2563EB")
		colorAccent = lipgloss.Color("#DC2626")
		colorMuted = lipgloss.Color("#9CA3AF")
		colorSuccess = lipgloss.Color("#16A34A")
		colorWarning = lipgloss.Color("#D97706")
		colorError = lipgloss.Color("#DC2626")
		colorFg = lipgloss.Color("#111827")
		colorSubtle = lipgloss.Color("#D1D5DB")
		colorHighlight = lipgloss.Color("#1D4ED8")
	}
	rebuildStyles()
}

func rebuildStyles() {
	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colorPrimary).
		Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSubtle).
		Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2)

	clockStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		Align(lipgloss.Center)

	ringStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorError).
		Align(lipgloss.Center)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorFg)

	accentStyle = lipgloss.NewStyle().
		Foreground(colorAccent)

	successStyle = lipgloss.NewStyle().
		Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
		Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
		Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
		Foreground(colorHighlight)

	headerStyle = lipgloss.NewStyle().
		Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	normalItemStyle = lipgloss.NewStyle().
		Foreground(colorFg)

	todayCellStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	selectedCellStyle = lipgloss.NewStyle().
		Foreground(colorFg).
		Reverse(true)
}
