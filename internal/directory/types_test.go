package directory

import (
	"encoding/json"
	"testing"
)

func TestRawUser_User(t *testing.T) {
	var raw RawUser
	if err := json.Unmarshal([]byte(`{
		"name": {"first": "Lena", "last": "Meyer"},
		"location": {"country": "Germany"},
		"login": {"uuid": "  7f3c  "}
	}`), &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	u := raw.User()
	if u.FirstName != "Lena" || u.LastName != "Meyer" || u.Country != "Germany" {
		t.Fatalf("User() = %+v", u)
	}
	if u.ID != "7f3c" {
		t.Fatalf("ID = %q, want trimmed 7f3c", u.ID)
	}
}

func TestToUsers_DropsBlankAndDuplicateIDs(t *testing.T) {
	mk := func(id, first string) RawUser {
		var r RawUser
		r.Login.UUID = id
		r.Name.First = first
		return r
	}
	raw := []RawUser{
		mk("a", "first-a"),
		mk("", "blank"),
		mk("b", "first-b"),
		mk("a", "second-a"),
		mk("   ", "spaces"),
	}

	users, dropped := toUsers(raw)
	if dropped != 3 {
		t.Fatalf("dropped = %d, want 3", dropped)
	}
	if len(users) != 2 || users[0].ID != "a" || users[1].ID != "b" {
		t.Fatalf("users = %+v, want [a b]", users)
	}
	if users[0].FirstName != "first-a" {
		t.Fatalf("duplicate should keep the first record, got %q", users[0].FirstName)
	}
}

func TestKindString(t *testing.T) {
	if KindNetwork.String() != "network" || KindParse.String() != "parse" || Kind(0).String() != "unknown" {
		t.Fatalf("unexpected Kind strings: %q %q %q", KindNetwork, KindParse, Kind(0))
	}
}
