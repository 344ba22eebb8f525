package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ShowAll   key.Binding
	Calendar  key.Binding
	Focus     key.Binding
	Interfere key.Binding
	Ack       key.Binding
	Refresh   key.Binding
	Quit      key.Binding

	// Tag input mode.
	Submit key.Binding
	Cancel key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter", "c"),
		key.WithHelp("space", "toggle quest"),
	),
	ShowAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "show idle quests"),
	),
	Calendar: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "30/365 day calendar"),
	),
	Focus: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "focus session"),
	),
	Interfere: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "log interference"),
	),
	Ack: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "dismiss penalty"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
	),
}

func (k KeyMap) help() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.ShowAll, k.Calendar, k.Focus, k.Interfere, k.Ack, k.Refresh, k.Quit}
}
