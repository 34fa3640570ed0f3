package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/roster/internal/directory"
	"github.com/five82/roster/internal/state"
)

// usersFetchedMsg reports the outcome of one fetch. seq identifies the fetch
// that produced it.
type usersFetchedMsg struct {
	seq     uint64
	users   []state.User
	err     error
	at      time.Time
	elapsed time.Duration
}

// fetchUsersCmd runs one fetch off the update loop.
func fetchUsersCmd(ctx context.Context, fetcher directory.UserFetcher, seq uint64) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		users, err := fetcher.FetchUsers(ctx)
		return usersFetchedMsg{
			seq:     seq,
			users:   users,
			err:     err,
			at:      time.Now(),
			elapsed: time.Since(start),
		}
	}
}
