// Package app is the composition root for roster.
//
// Run loads the configuration (TOML file, then ROSTER_* environment, then
// flag overrides), opens the hclog log file, builds the directory client and
// an empty state.Store, restores the saved theme, and hands everything to the
// Bubble Tea UI. It blocks until the UI exits.
//
// Configuration errors are fatal and returned before the terminal is taken
// over. A log file that cannot be opened is not: logging is dropped and the
// UI runs anyway.
package app
