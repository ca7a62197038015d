// Package models defines the records persisted in the local database.
package models

// User is an account row. Secret and Salt are the text forms produced by
// cryptox.Guard; the plaintext password is never stored.
type User struct {
	Username    string
	Secret      string
	Salt        string
	PhoneNumber string // empty when none registered
	Goal        int    // 0 means no goal
	SMSOptIn    bool
}

// HasGoal reports whether a target weight is set.
func (u *User) HasGoal() bool { return u.Goal != 0 }

// HasPhoneNumber reports whether a phone number is registered.
func (u *User) HasPhoneNumber() bool { return u.PhoneNumber != "" }

// Credential is the subset of User needed to check a password.
type Credential struct {
	Username string
	Secret   string
	Salt     string
}
