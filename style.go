package main

import "github.com/charmbracelet/lipgloss"

// Shared palette. The plotted tags cycle through config.Palette instead.
const (
	accentColor    = lipgloss.Color("#ff9f1c")
	tripColor      = lipgloss.Color("#ff5f5f")
	selectionColor = lipgloss.Color("#3a3a3a")
	matchColor     = lipgloss.Color("#f5c542")
	frameColor     = lipgloss.Color("240")
	mutedColor     = lipgloss.Color("244")
	brightColor    = lipgloss.Color("252")
)

var appstyle = lipgloss.NewStyle().Margin(1, 2)

// alarm table
var (
	headerStyle = lipgloss.NewStyle().Bold(true).
			Foreground(brightColor).
			Padding(0, 1)
	tableStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(frameColor)
	cellStyle        = lipgloss.NewStyle().Padding(0, 1)
	rowStyle         = lipgloss.NewStyle()
	rowSelectedStyle = lipgloss.NewStyle().Background(selectionColor)
	searchHighlight  = lipgloss.NewStyle().Background(matchColor).Foreground(lipgloss.Color("#000000"))

	tripMarker    = lipgloss.NewStyle().Foreground(tripColor)
	pillMarker    = "▐"
	defaultMarker = " "
)

// drawers under the table and the plot
var (
	drawerArea = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(mutedColor)
	rangeDrawerStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accentColor)
)

// trend screen
var (
	axisStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c6c6c"))
	cursorStyle   = lipgloss.NewStyle().Foreground(matchColor)
	hoverStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Faint(true)
	dimStyle      = lipgloss.NewStyle().Foreground(mutedColor)
	panelTitle    = lipgloss.NewStyle().Bold(true).Foreground(brightColor)
	panelHeader   = panelTitle.Padding(0, 1)
	tripCellStyle = lipgloss.NewStyle().Foreground(tripColor).Padding(0, 1)
)

// tagStyle colours the i-th plotted tag, cycling through the palette.
func tagStyle(palette []string, i int) lipgloss.Style {
	if len(palette) == 0 {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(palette[i%len(palette)]))
}
