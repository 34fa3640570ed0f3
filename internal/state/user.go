package state

// User is a single directory record as shown in the table. ID is unique
// within one fetched list.
type User struct {
	FirstName string
	LastName  string
	Country   string
	ID        string
}

func cloneUsers(users []User) []User {
	if len(users) == 0 {
		return nil
	}
	dup := make([]User, len(users))
	copy(dup, users)
	return dup
}
