package model

import "time"

// User is a registered account.
// The password hash is stored alongside because users are only ever
// fetched during credential verification.
type User struct {
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}

// GroupID returns the group identity owning this user's game sessions
func (u *User) GroupID() GroupID {
	return GroupForUser(u.Username)
}
