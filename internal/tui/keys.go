package tui

import "github.com/charmbracelet/bubbles/key"

type dashboardKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Customize key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Customize, k.Help, k.Quit}
}

func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Left, k.Right}, {k.Customize, k.Help, k.Quit}}
}

func newDashboardKeyMap() dashboardKeyMap {
	return dashboardKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h", "up", "k", "shift+tab"),
			key.WithHelp("←/h", "previous widget"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "down", "j", "tab"),
			key.WithHelp("→/l", "next widget"),
		),
		Customize: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "customize"),
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

// customizeKeyMap drives the customize modal. Pick/Drop/CancelMove only apply in move mode.
type customizeKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Pick     key.Binding
	Drop     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Reset    key.Binding
	Save     key.Binding
	Cancel   key.Binding
}

func (k customizeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Pick, k.MoveUp, k.MoveDown, k.Reset, k.Save, k.Cancel}
}

func (k customizeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Pick, k.Drop, k.MoveUp, k.MoveDown},
		{k.Reset, k.Save, k.Cancel},
	}
}

func newCustomizeKeyMap() customizeKeyMap {
	return customizeKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "show/hide"),
		),
		Pick: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move"),
		),
		Drop: key.NewBinding(
			key.WithKeys("enter", "m"),
			key.WithHelp("enter", "drop"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s", "enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+g"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
