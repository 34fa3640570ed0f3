package directory

import (
	"strings"

	"github.com/five82/roster/internal/state"
)

// UsersResponse mirrors the body returned by GET /api/?results=N.
type UsersResponse struct {
	Results []RawUser `json:"results"`
	Info    Info      `json:"info"`
	Error   string    `json:"error"`
}

// Info describes the generated page.
type Info struct {
	Seed    string `json:"seed"`
	Results int    `json:"results"`
	Page    int    `json:"page"`
	Version string `json:"version"`
}

// RawUser is the subset of a directory record roster displays.
type RawUser struct {
	Name struct {
		Title string `json:"title"`
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Location struct {
		Country string `json:"country"`
	} `json:"location"`
	Login struct {
		UUID string `json:"uuid"`
	} `json:"login"`
}

// User flattens the record into the table row shape.
func (r RawUser) User() state.User {
	return state.User{
		FirstName: r.Name.First,
		LastName:  r.Name.Last,
		Country:   r.Location.Country,
		ID:        strings.TrimSpace(r.Login.UUID),
	}
}

// toUsers maps raw records and drops the ones that would break ID
// uniqueness: blank IDs, and any repeat of an ID already seen.
func toUsers(raw []RawUser) (users []state.User, dropped int) {
	users = make([]state.User, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		u := r.User()
		if u.ID == "" {
			dropped++
			continue
		}
		if _, dup := seen[u.ID]; dup {
			dropped++
			continue
		}
		seen[u.ID] = struct{}{}
		users = append(users, u)
	}
	return users, dropped
}
