// Package plan holds the weekly workout templates and the per-day plans
// inside them.
//
// # Data Model
//
//	Store
//	 └── Template (id, name, schedule)
//	      └── DayPlan x 7, Monday=0 .. Sunday=6 (isRest, exercises)
//	           └── PlannedExercise (id, name, setsData)
//	                └── SetEntry (weight, reps)
//
// # Invariants
//
//   - The collection always holds at least one template; DeleteTemplate
//     refuses to remove the last one.
//   - Every schedule has exactly DaysPerWeek entries.
//   - Every planned exercise keeps at least one set; RemoveSet never removes
//     the last one. Removing an exercise is a separate operation.
//   - The rest flag never clears a day's exercises.
//   - The same exercise may appear several times in one day, each instance
//     with its own sets.
//
// # Persistence
//
// The whole collection is one record ("workout_templates") in the kv store.
// Every successful mutation writes it back before returning; there is no
// batching. Records written by older versions are repaired on load (see
// Template.repair) and written back once.
//
// # Addressing
//
// Day and exercise operations take explicit (template, day, exercise, set)
// indices. Out-of-range indices are ignored rather than treated as errors so
// that stale references from a previous render are harmless.
package plan
