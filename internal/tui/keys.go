package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextStatus key.Binding
	PrevStatus key.Binding
	CaretLeft  key.Binding
	CaretRight key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextStatus: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "advance status"),
		),
		PrevStatus: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "rewind status"),
		),
		CaretLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "caret left"),
		),
		CaretRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "caret right"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "scroll text up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "scroll text down"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
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

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextStatus, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.ScrollUp, k.ScrollDown},
		{k.NextStatus, k.PrevStatus, k.CaretLeft, k.CaretRight},
		{k.Reload, k.Help, k.Quit},
	}
}
