package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Next    key.Binding
	Refresh key.Binding
	Share   key.Binding
	Retry   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys(" ", "n"),
			key.WithHelp("space/n", "next inspiration"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new batch"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share"),
		),
		Retry: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "retry"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
