package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette used for command output. Colours are dropped automatically when
// output is not a terminal.
var (
	colourPrimary   = lipgloss.Color("#7C3AED")
	colourSecondary = lipgloss.Color("#06B6D4")
	colourMuted     = lipgloss.Color("#6C7086")
	colourSuccess   = lipgloss.Color("#A6E3A1")
	colourWarning   = lipgloss.Color("#F9E2AF")
	colourError     = lipgloss.Color("#F38BA8")
)

// outputStyles groups the styles the commands render with.
type outputStyles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

func newOutputStyles() outputStyles {
	return outputStyles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colourPrimary),
		Label:   lipgloss.NewStyle().Bold(true).Foreground(colourSecondary),
		Muted:   lipgloss.NewStyle().Foreground(colourMuted),
		Success: lipgloss.NewStyle().Foreground(colourSuccess),
		Warning: lipgloss.NewStyle().Foreground(colourWarning),
		Error:   lipgloss.NewStyle().Foreground(colourError),
	}
}

var styles = newOutputStyles()
