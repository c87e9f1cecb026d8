// Package app is the composition root of lifter.
//
// Run wires the pieces together in order:
//
//  1. config.Load reads ~/.config/lifter/config.toml; command-line flags
//     override the data directory and catalog source.
//  2. logging.Setup sends logrus output to a rotating file, because the TUI
//     owns the terminal.
//  3. kv.Open and state.Open load plans, custom exercises, and favorites.
//     A fresh data directory gets a single "Default Plan".
//  4. prefs.Load restores the theme and last library filter.
//  5. ui.Run starts Bubble Tea and blocks until the user quits or the
//     context is cancelled.
//
// The exercise catalog is not loaded here. The UI runs the loader as a
// command after the first frame so startup never waits on the network. It
// runs once; a failed load is not retried.
//
// Errors from config, logging, or the data directory are fatal and returned
// from Run. A catalog failure is not: the session falls back to an empty
// catalog and custom exercises keep working.
package app
