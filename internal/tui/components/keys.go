package components

import "github.com/charmbracelet/bubbles/key"

// JumpKeyMap defines key bindings for the jump overlay
type JumpKeyMap struct {
	Escape key.Binding
	Enter  key.Binding
	Up     key.Binding
	Down   key.Binding
}

// DefaultJumpKeyMap returns the default jump overlay key bindings
func DefaultJumpKeyMap() JumpKeyMap {
	return JumpKeyMap{
		Escape: key.NewBinding(
			key.WithKeys("esc", "ctrl+k"),
			key.WithHelp("esc", "close"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
	}
}

// JumpKeys is the global jump overlay key bindings instance
var JumpKeys = DefaultJumpKeyMap()
