package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keybindings for the terminal viewer
type keyMap struct {
	Left   key.Binding
	Right  key.Binding
	Reset  key.Binding
	Hitbox key.Binding
	Yank   key.Binding
	Quit   key.Binding
}

// ShortHelp returns a short help text for the key bindings
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Reset, k.Hitbox, k.Yank, k.Quit}
}

// FullHelp returns the full help text for all key bindings
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Reset},
		{k.Hitbox, k.Yank, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "roll left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "roll right"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Hitbox: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hitbox"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy frame"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
