package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding
	ViewLogs   key.Binding

	// Plans
	PrevPlan   key.Binding
	NextPlan   key.Binding
	NewPlan    key.Binding
	RenamePlan key.Binding
	DeletePlan key.Binding

	// Days
	PrevDay    key.Binding
	NextDay    key.Binding
	DayNumber  key.Binding
	ToggleRest key.Binding

	// Exercises and sets
	Up             key.Binding
	Down           key.Binding
	SwitchField    key.Binding
	Edit           key.Binding
	AddExercise    key.Binding
	RemoveExercise key.Binding
	AddSet         key.Binding
	RemoveSet      key.Binding

	// Library
	NextFilter     key.Binding
	PrevFilter     key.Binding
	ToggleFavorite key.Binding
	NewCustom      key.Binding
	DeleteCustom   key.Binding

	// Logs
	ToggleLevel key.Binding
	Refresh     key.Binding

	// Modals
	Confirm key.Binding
	Yes     key.Binding
	No      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
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
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to planner"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Diagnostics log"),
		),

		// Plans
		PrevPlan: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous plan"),
		),
		NextPlan: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next plan"),
		),
		NewPlan: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New plan"),
		),
		RenamePlan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Rename plan"),
		),
		DeletePlan: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Delete plan"),
		),

		// Days
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("h/left", "Previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("l/right", "Next day"),
		),
		DayNumber: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7"),
			key.WithHelp("1-7", "Jump to day"),
		),
		ToggleRest: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Toggle rest day"),
		),

		// Exercises and sets
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		SwitchField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Weight/reps column"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "Edit value"),
		),
		AddExercise: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add exercise"),
		),
		RemoveExercise: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Remove exercise"),
		),
		AddSet: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Add set"),
		),
		RemoveSet: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Remove last set"),
		),

		// Library
		NextFilter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next filter"),
		),
		PrevFilter: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous filter"),
		),
		ToggleFavorite: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "Toggle favorite"),
		),
		NewCustom: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "New custom exercise"),
		),
		DeleteCustom: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "Delete custom exercise"),
		),

		// Logs
		ToggleLevel: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Warnings only"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Reload log"),
		),

		// Modals
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "Yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "No"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddExercise, k.Edit, k.ToggleRest, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevPlan, k.NextPlan, k.NewPlan, k.RenamePlan, k.DeletePlan},
		{k.PrevDay, k.NextDay, k.DayNumber, k.ToggleRest},
		{k.Up, k.Down, k.SwitchField, k.Edit, k.AddExercise, k.RemoveExercise, k.AddSet, k.RemoveSet},
		{k.NextFilter, k.PrevFilter, k.ToggleFavorite, k.NewCustom, k.DeleteCustom},
		{k.ToggleLevel, k.Refresh},
		{k.ViewLogs, k.CycleTheme, k.Escape, k.Help, k.Quit},
	}
}
