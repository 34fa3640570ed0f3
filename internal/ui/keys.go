package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Table actions
	Sort    key.Binding
	Toggle  key.Binding
	Refresh key.Binding
	Restore key.Binding
	Delete  key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Global
	Logs       key.Binding
	CycleTheme key.Binding
	Help       key.Binding
	Close      key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sort by country"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Toggle color"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		Restore: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Restore"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "x", "delete"),
			key.WithHelp("d/x", "Delete row"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),

		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Logs"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?", "Toggle help"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close overlay"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sort, k.Toggle, k.Refresh, k.Restore, k.Delete, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sort, k.Toggle, k.Refresh, k.Restore, k.Delete},
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Logs, k.CycleTheme, k.Help, k.Close, k.Quit},
	}
}
