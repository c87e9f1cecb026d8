// Package state holds the planner session: the loaded stores, the catalog
// index, and the current template/day selection.
//
// # Overview
//
// The UI never touches the stores directly. It calls commands on a Session
// and renders the View each command returns:
//
//	UI (bubbletea Update)            Session
//	┌────────────────────┐          ┌──────────────────────────┐
//	│ key press / prompt │          │ plan.Store               │
//	│        ↓           │ command  │ custom.Store             │
//	│ confirm if needed  │─────────→│ favorites.Set            │
//	│        ↓           │          │ catalog.Index            │
//	│ render Outcome.View│←─────────│ template, day, filter    │
//	└────────────────────┘ Outcome  └──────────────────────────┘
//
// # Commands
//
// Every command returns an Outcome. Applied reports whether anything
// changed; when it is false, Reason names the refusal:
//
//   - blank names for plans and custom exercises
//   - deleting the only plan
//   - destructive commands called with confirmed=false
//   - indices that no longer exist (stale references from an older render)
//
// None of these are errors. The error return is reserved for persistence
// failures; the in-memory change is kept and the error is logged and
// returned so the UI can surface it.
//
// Destructive commands (DeleteTemplate, RemoveExercise, RemoveSet,
// DeleteCustomExercise) take the user's confirmation as an argument. The
// session never prompts.
//
// # Selection
//
// The selected template and day are ephemeral. On Open the first template
// is selected and the day comes from plan.DefaultDay. CreateTemplate selects
// the new template and DeleteTemplate resets the selection to the first one.
//
// # Catalog
//
// The catalog is loaded once, off the UI loop, and handed over with
// SetCatalog. Until then, and after a failed load, queries run against an
// empty index so custom exercises and favorites stay usable.
//
// # Concurrency
//
// Session guards its fields with a sync.RWMutex. In practice all commands
// come from the bubbletea update loop, and the lock only matters for
// SetCatalog and View racing with the loader.
package state
