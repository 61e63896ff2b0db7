// Package report renders analysis results for the terminal.
package report

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#FF6B6B")
	successColor = lipgloss.Color("#4ECDC4") // Teal
	warningColor = lipgloss.Color("#FFE66D") // Yellow
	subtleColor  = lipgloss.Color("#666666") // Gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	subtleStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	boldStyle = lipgloss.NewStyle().Bold(true)
)
