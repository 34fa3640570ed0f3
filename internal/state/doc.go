// Package state holds the roster table state and the reducer that drives it.
//
// # Overview
//
// AppState is the only mutable thing in roster, and it is never mutated in
// place. Every user interaction becomes an Action, and Reduce maps the
// current state plus that action to a brand new AppState:
//
//	key press ──> Action ──> Reduce(state, action) ──> next state ──> View()
//
// # Actions
//
// Action is a closed sum type. Each variant carries exactly the payload it
// needs:
//
//   - SetUsers{Users}: a fetch completed; replaces Users and Snapshot
//   - SortByCountry{}: stable ascending sort on Country (byte order)
//   - ToggleHighlight{}: flips alternate-row highlighting
//   - RestoreUsers{}: Users := Snapshot, no-op before the first fetch
//   - DeleteUser{ID}: drops the matching user, no-op for unknown IDs
//
// Reduce has no error paths. Unknown or nil actions return the state as-is.
//
// # Immutability
//
// Reduce copies any slice it reorders or filters, so a previously returned
// AppState keeps its contents forever. That is what lets the UI compare
// states with Equal and lets Store keep a dispatch history.
//
// # Store
//
// Store wraps the current AppState for the UI. Dispatch reduces and
// replaces; State returns a defensive copy; History lists the last actions
// applied, which the log overlay shows.
//
//	var store state.Store
//	store.Dispatch(state.SetUsers{Users: fetched})
//	store.Dispatch(state.SortByCountry{})
//	snap := store.State()
package state
