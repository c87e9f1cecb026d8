// Package ui provides the Bubble Tea terminal interface for lifter.
//
// # Architecture Overview
//
// Model is the root tea.Model. It holds a *state.Session and never touches
// the stores directly: every key that changes data calls one session
// command and stores the returned View. Refusals and save failures show up
// on the status line.
//
// # Package Structure
//
//   - app.go: Model, Update/View, global keys, Run
//   - planner.go: day bar, exercise and set rows, prompts and
//     confirmations for plan and day edits
//   - library.go: search box, filter chips, results, favorites, custom exercises
//   - logs.go: diagnostics view over the log file
//   - modal.go: prompt and confirm dialogs
//   - keys.go, help.go: key bindings and the help overlay
//   - header.go: plan tabs and catalog counts on the header surface
//   - theme.go: palettes and lipgloss styles
//
// # Screens
//
//   - Planner: the selected plan and day. Set rows are navigated with j/k;
//     tab switches between the weight and reps column.
//   - Library: opened with a. Typing filters by name; tab cycles the filter
//     (All, Favorites, Custom, then body-part categories). enter adds the
//     highlighted exercise to the current day with three empty sets.
//   - Diagnostics: opened with L. Shows the tail of the log file, which is
//     where a failed catalog load is reported.
//
// # Confirmations
//
// Deleting a plan, removing an exercise, removing a set and deleting a
// custom exercise ask first. The UI probes the session with confirmed=false:
// if the session refuses for another reason (the only plan, the only set)
// the reason is shown and no dialog opens. Dialogs remember the plan and
// day they were opened for and drop the action if the selection changed.
//
// # Catalog Loading
//
// Init starts the catalog load as a tea.Cmd. Until it finishes, the library
// shows custom exercises only. A failed load is logged and the library keeps
// working without catalog entries.
//
// # Preferences
//
// The theme (T) and the last library filter are written to prefs.toml.
package ui
