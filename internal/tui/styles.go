package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/csacalc/internal/output"
)

var (
	titleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(output.ColorPrimary).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(output.ColorMuted)

	labelStyle = lipgloss.NewStyle().
			Width(26)

	overrideStyle = lipgloss.NewStyle().
			Foreground(output.ColorAccent)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(output.ColorDanger)

	contentStyle = lipgloss.NewStyle().
			Padding(1, 2)
)
