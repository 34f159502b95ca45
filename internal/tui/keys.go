package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Back    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Next    key.Binding
	Prev    key.Binding
	Follow  key.Binding

	// Actions
	Quit   key.Binding
	Help   key.Binding
	Search key.Binding
	Filter key.Binding
	Retry  key.Binding
	Jump   key.Binding
	Locale key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev tab"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "next page"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p/←", "prev page"),
		),
		Follow: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "homeworld"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f", "/"),
			key.WithHelp("f", "filter"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Jump: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("C-k", "jump"),
		),
		Locale: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "language"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Back, k.Search, k.Jump, k.Locale, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.Next, k.Prev, k.NextTab, k.PrevTab, k.Follow},
		{k.Search, k.Filter, k.Retry, k.Jump, k.Locale},
		{k.Help, k.Quit},
	}
}

// InputKeyMap defines key bindings while a text input has focus
type InputKeyMap struct {
	Accept key.Binding
	Cancel key.Binding
}

// DefaultInputKeyMap returns the default input key bindings
func DefaultInputKeyMap() InputKeyMap {
	return InputKeyMap{
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Global key binding instances
var (
	Keys      = DefaultKeyMap()
	InputKeys = DefaultInputKeyMap()
)
