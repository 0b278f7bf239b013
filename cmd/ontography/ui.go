package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// CLI palette
var (
	Brand  = color.New(color.FgHiMagenta, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	keyStyle     = lipgloss.NewStyle().Bold(true).Width(24)
	meaningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	panelStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#666666")).
			Padding(0, 1)
)

// swatch renders a two-cell block in the given "#rrggbb" color.
func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

// statusIcon returns a check or cross.
func statusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}
