// Package config loads roster's startup settings.
//
// # Sources
//
// Values are layered, later sources winning:
//
//  1. Built-in defaults (Default)
//  2. ~/.config/roster/config.toml, or the path passed to Load
//  3. ROSTER_* environment variables
//  4. Overrides, which cmd/roster fills from command-line flags
//
// A missing config file is not an error. Blank strings and a zero results
// count in the file fall through to the defaults.
//
// # TOML Format
//
//	endpoint  = "https://randomuser.me/api/"
//	results   = 100
//	log_file  = "~/.local/state/roster/roster.log"
//	log_level = "info"
//
// # Environment
//
//   - ROSTER_ENDPOINT
//   - ROSTER_RESULTS
//   - ROSTER_LOG_FILE
//   - ROSTER_LOG_LEVEL
//
// # Validation
//
// Load fails on unparsable TOML, unparsable env values, a results count
// outside 1..5000, or an unknown log level. log_file has ~ expanded and is
// made absolute.
package config
