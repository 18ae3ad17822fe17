package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings. It implements help.KeyMap.
type KeyMap struct {
	Single   key.Binding
	Multi    key.Binding
	Cancel   key.Binding
	Quit     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Help     key.Binding
}

// DefaultKeyMap returns the default bindings. Letters are left to the text
// input, so every action uses a control or navigation key.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Single: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "single worker"),
		),
		Multi: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "multi worker"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("ctrl+h", "more keys"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Single, k.Multi, k.Cancel, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Single, k.Multi, k.Cancel},
		{k.PageUp, k.PageDown},
		{k.Help, k.Quit},
	}
}
