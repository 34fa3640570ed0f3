package state

import "fmt"

// Action is a request to transition AppState. The set of actions is closed;
// only the types declared in this file satisfy it.
type Action interface {
	fmt.Stringer
	isAction()
}

// SetUsers replaces both the displayed users and the snapshot with a freshly
// fetched list.
type SetUsers struct {
	Users []User
}

// SortByCountry stably sorts the displayed users by country.
type SortByCountry struct{}

// ToggleHighlight flips alternate-row highlighting.
type ToggleHighlight struct{}

// RestoreUsers resets the displayed users to the last fetched list.
type RestoreUsers struct{}

// DeleteUser removes the displayed user with the given ID.
type DeleteUser struct {
	ID string
}

func (SetUsers) isAction()        {}
func (SortByCountry) isAction()   {}
func (ToggleHighlight) isAction() {}
func (RestoreUsers) isAction()    {}
func (DeleteUser) isAction()      {}

func (a SetUsers) String() string      { return fmt.Sprintf("SetUsers(%d)", len(a.Users)) }
func (SortByCountry) String() string   { return "SortByCountry" }
func (ToggleHighlight) String() string { return "ToggleHighlight" }
func (RestoreUsers) String() string    { return "RestoreUsers" }
func (a DeleteUser) String() string    { return fmt.Sprintf("DeleteUser(%s)", a.ID) }
