package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	SwitchView key.Binding

	// Actions
	Search   key.Binding
	Estimate key.Binding
	Expand   key.Binding
	Reset    key.Binding

	// Navigation
	Up   key.Binding
	Down key.Binding

	// Filter editing
	Decrease key.Binding
	Increase key.Binding
	Toggle   key.Binding
	Edit     key.Binding

	// Text input
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Filters/results"),
		),

		Search: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Search"),
		),
		Estimate: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Use estimated charge time"),
		),
		Expand: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Toggle expanded search"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Reset filters"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Down"),
		),

		Decrease: key.NewBinding(
			key.WithKeys("h", "left", "-"),
			key.WithHelp("h/←/-", "Decrease"),
		),
		Increase: key.NewBinding(
			key.WithKeys("l", "right", "+", "="),
			key.WithHelp("l/→/+", "Increase"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "Toggle"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "Edit tags/text"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
	}
}
