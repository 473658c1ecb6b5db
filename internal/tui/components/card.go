package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/csacalc/internal/output"
)

var (
	cardLabelStyle = lipgloss.NewStyle().
			Foreground(output.ColorMuted)

	cardValueStyle = lipgloss.NewStyle().
			Bold(true)

	cardNoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(output.ColorMuted)
)

// Card displays one figure with a label and an optional change indicator
type Card struct {
	Label       string
	Value       string
	Change      *Change
	Description string
	Width       int
}

// Change describes how a figure moved relative to a reference value
type Change struct {
	Up   bool
	Text string // e.g. "+$1,234.00"
}

// NewCard creates a new card
func NewCard(label, value string) *Card {
	return &Card{
		Label: label,
		Value: value,
		Width: 28,
	}
}

// WithChange adds a change indicator
func (c *Card) WithChange(up bool, text string) *Card {
	c.Change = &Change{Up: up, Text: text}
	return c
}

// WithDescription adds a subtitle
func (c *Card) WithDescription(desc string) *Card {
	c.Description = desc
	return c
}

// WithWidth sets the card width
func (c *Card) WithWidth(width int) *Card {
	c.Width = width
	return c
}

// Arrow returns the indicator for a change direction
func Arrow(up bool) string {
	if up {
		return "▲"
	}
	return "▼"
}

func changeStyle(up bool) lipgloss.Style {
	if up {
		return lipgloss.NewStyle().Foreground(output.ColorDanger)
	}
	return lipgloss.NewStyle().Foreground(output.ColorSuccess)
}

// Render returns the bordered card
func (c *Card) Render() string {
	content := cardLabelStyle.Render(c.Label) + "\n" + cardValueStyle.Render(c.Value)

	if c.Change != nil {
		content += "\n" + changeStyle(c.Change.Up).Render(fmt.Sprintf("%s %s", Arrow(c.Change.Up), c.Change.Text))
	}
	if c.Description != "" {
		content += "\n" + cardNoteStyle.Render(c.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(output.ColorBorder).
		Padding(0, 1).
		Width(c.Width).
		Render(content)
}

// RenderCompact returns an inline version without a border
func (c *Card) RenderCompact() string {
	s := cardLabelStyle.Render(c.Label+":") + " " + cardValueStyle.Render(c.Value)
	if c.Change != nil {
		s += " " + changeStyle(c.Change.Up).Render(fmt.Sprintf("%s %s", Arrow(c.Change.Up), c.Change.Text))
	}
	return s
}

// Row renders cards side by side, wrapping after the given number of columns
func Row(cards []*Card, columns int) string {
	if len(cards) == 0 {
		return ""
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
