package tui

import (
	"charm.land/bubbles/v2/key"
)

// KeyMap defines the TUI key bindings.
type KeyMap struct {
	PushSuccess   key.Binding
	PushError     key.Binding
	PushInfo      key.Binding
	DismissNewest key.Binding
	DismissAll    key.Binding
	DismissAt     key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PushSuccess: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "success")),
		PushError:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "error")),
		PushInfo:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
		DismissNewest: key.NewBinding(
			key.WithKeys("x", "esc"),
			key.WithHelp("x/esc", "dismiss newest"),
		),
		DismissAll: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "dismiss all")),
		DismissAt: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "dismiss #n"),
		),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PushSuccess, k.PushError, k.PushInfo, k.DismissNewest, k.DismissAll, k.DismissAt, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PushSuccess, k.PushError, k.PushInfo},
		{k.DismissNewest, k.DismissAll, k.DismissAt},
		{k.Quit},
	}
}
