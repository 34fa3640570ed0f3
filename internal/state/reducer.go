package state

import (
	"slices"
	"sort"
)

// AppState is everything the table view renders. Values are never mutated
// after Reduce returns them; every transition builds fresh slices.
type AppState struct {
	Users         []User
	Snapshot      []User
	HasSnapshot   bool
	HighlightRows bool
}

// Initial returns the state before the first fetch completes.
func Initial() AppState {
	return AppState{}
}

// RowHighlighted reports whether the displayed row at index i gets the
// alternate style. Parity is taken over the list as currently displayed.
func (s AppState) RowHighlighted(i int) bool {
	return s.HighlightRows && i%2 == 0
}

// Clone returns a copy that shares no backing arrays with s.
func (s AppState) Clone() AppState {
	s.Users = cloneUsers(s.Users)
	s.Snapshot = cloneUsers(s.Snapshot)
	return s
}

// Equal reports whether two states hold the same users, snapshot and flags.
func Equal(a, b AppState) bool {
	return a.HasSnapshot == b.HasSnapshot &&
		a.HighlightRows == b.HighlightRows &&
		slices.Equal(a.Users, b.Users) &&
		slices.Equal(a.Snapshot, b.Snapshot)
}

// Reduce applies action to s and returns the next state. It is total: unknown
// or nil actions, RestoreUsers without a snapshot and DeleteUser with an
// unknown ID all return s unchanged.
func Reduce(s AppState, action Action) AppState {
	switch a := action.(type) {
	case SetUsers:
		s.Users = cloneUsers(a.Users)
		s.Snapshot = cloneUsers(a.Users)
		s.HasSnapshot = true
	case SortByCountry:
		users := cloneUsers(s.Users)
		sort.SliceStable(users, func(i, j int) bool {
			return users[i].Country < users[j].Country
		})
		s.Users = users
	case ToggleHighlight:
		s.HighlightRows = !s.HighlightRows
	case RestoreUsers:
		if s.HasSnapshot {
			s.Users = cloneUsers(s.Snapshot)
		}
	case DeleteUser:
		idx := slices.IndexFunc(s.Users, func(u User) bool { return u.ID == a.ID })
		if idx < 0 {
			return s
		}
		users := make([]User, 0, len(s.Users)-1)
		users = append(users, s.Users[:idx]...)
		users = append(users, s.Users[idx+1:]...)
		s.Users = users
	}
	return s
}
