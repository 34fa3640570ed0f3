// Package ui is the Bubble Tea front end for roster.
//
// Model turns key presses into state.Action values and sends them through a
// state.Store. Fetches run as tea.Cmds; each carries a sequence number and
// only the response of the most recently started fetch reaches the store.
//
// Layout, top to bottom: a one-line status header, a command bar with key
// hints, and the user table (lipgloss/table). Help (?) and log (L) overlays
// replace the table while open.
package ui
