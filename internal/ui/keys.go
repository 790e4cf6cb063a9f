package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	KeyHelp    key.Binding
	OptionHelp key.Binding
	CycleTheme key.Binding
	ToggleName key.Binding
	Save       key.Binding
	Reload     key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Back     key.Binding

	// Values
	Select key.Binding
	Toggle key.Binding
	Yes    key.Binding
	No     key.Binding

	// Dialogs
	Confirm key.Binding
	Cancel  key.Binding
	Left    key.Binding
	Right   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit without saving"),
		),
		KeyHelp: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "Key help"),
		),
		OptionHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Option help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		ToggleName: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "Show option names"),
		),
		Save: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Save"),
		),
		Reload: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Reload saved values"),
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
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "Back / exit"),
		),

		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open / toggle / edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "Toggle"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Enable"),
		),
		No: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Disable"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "shift+tab"),
			key.WithHelp("left", "Previous button"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "tab"),
			key.WithHelp("right", "Next button"),
		),
	}
}

// ShortHelp returns key bindings for the status bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Back, k.OptionHelp, k.KeyHelp, k.Save}
}

// FullHelp returns key bindings for the key help overlay, one group per section.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown, k.Back},
		{k.Select, k.Toggle, k.Yes, k.No},
		{k.Save, k.Reload, k.OptionHelp, k.ToggleName, k.CycleTheme, k.KeyHelp, k.Quit},
	}
}

// helpSectionTitles names the FullHelp groups.
var helpSectionTitles = []string{"Navigation", "Values", "General"}
