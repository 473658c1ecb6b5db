package output

import "github.com/charmbracelet/lipgloss"

// Color palette shared by the console report and the explorer
var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorAccent  = lipgloss.Color("#F25D94")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorDanger  = lipgloss.Color("#FF4672")
	ColorMuted   = lipgloss.Color("#626262")
	ColorBorder  = lipgloss.Color("#383838")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			MarginTop(1)

	LabelStyle = lipgloss.NewStyle().
			Width(32)

	ValueStyle = lipgloss.NewStyle().
			Width(16).
			Align(lipgloss.Right)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Width(16).
			Align(lipgloss.Right)

	NoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorMuted)

	PaymentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)
