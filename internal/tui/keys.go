package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	SupportA key.Binding
	SupportB key.Binding
	NextYear key.Binding
	PrevYear key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		SupportA: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "parent A income support"),
		),
		SupportB: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "parent B income support"),
		),
		NextYear: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next year"),
		),
		PrevYear: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous year"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SupportA, k.SupportB, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SupportA, k.SupportB, k.Reset},
		{k.PrevYear, k.NextYear},
		{k.Help, k.Quit},
	}
}
