package main

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	cellW        = 11 // width of each step column in characters
	labelVisualW = 10 // visual width of qubit label area, fits q(rr, cc)
	gateNameW    = 5  // width of gate name inside box
	gateBoxW     = 7  // ┤ + gateNameW + ├ = 1 + 5 + 1
	editorH      = 6  // rows of the matrix editor
)

// Palette
var (
	colorBlue   = lipgloss.Color("#7aa2f7")
	colorAmber  = lipgloss.Color("#e0af68")
	colorPurple = lipgloss.Color("#bb9af7")
	colorGreen  = lipgloss.Color("#9ece6a")
	colorOrange = lipgloss.Color("#ff9e64")
	colorRed    = lipgloss.Color("#f7768e")
	colorCyan   = lipgloss.Color("#7dcfff")
	colorTeal   = lipgloss.Color("#73daca")
	colorMuted  = lipgloss.Color("#565f89")
	colorText   = lipgloss.Color("#c0caf5")
)

func panel(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Padding(0, 1)
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	circuitStyle    = panel(colorBlue).Padding(1)
	editorStyle     = panel(colorAmber)
	qasmStyle       = panel(colorPurple)
	controlsStyle   = panel(colorGreen)
	menuBorderStyle = panel(colorOrange)

	titleStyle        = fg(colorOrange).Bold(true)
	cursorBoxStyle    = fg(colorOrange).Bold(true)
	menuSelectedStyle = fg(colorOrange).Bold(true)
	gateStyle         = fg(colorTeal).Bold(true)
	activeGateStyle   = fg(colorAmber)
	errorStyle        = fg(colorRed)
	qubitLabelStyle   = fg(colorCyan)
	dimStyle          = fg(colorMuted)
	menuNormalStyle   = fg(colorText)
)
