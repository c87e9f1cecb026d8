// Package config loads the lifter configuration file.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/lifter/config.toml
//  3. If the file doesn't exist, use the defaults
//  4. If the file exists but fields are missing or blank, use the defaults
//     for those fields
//
// A file that exists but cannot be parsed is an error.
//
// # Keys
//
//	data_dir = "~/.local/share/lifter"            # plans, custom exercises, favorites
//	catalog_source = "bundled"                    # "bundled", a file path, or an http(s) URL
//	log_file = "~/.local/state/lifter/lifter.log"
//	log_level = "info"                            # trace, debug, info, warn, error, fatal
//	log_max_size_mb = 5                           # rotate the log at this size
//	log_max_backups = 3                           # rotated files kept
//
// Paths starting with ~ are expanded against the home directory and made
// absolute. catalog_source is kept verbatim; the catalog loader expands
// file paths itself.
//
// # Overrides
//
// Command-line flags are applied after loading with Config.Override. Blank
// flag values keep the file setting.
package config
