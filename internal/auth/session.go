package auth

import (
	"strings"
	"time"
)

// User is the account bound to an authenticated session.
type User struct {
	ID          string
	Email       string
	DisplayName string
	CreatedAt   *time.Time
	LastLogin   *time.Time
}

// Session is a point-in-time view of the manager's state.
// Authenticated is true exactly when User is non-nil.
type Session struct {
	Authenticated bool
	User          *User
	Pending       bool
	LastError     *Error
}

// clone returns a deep copy so snapshots handed out never share memory
// with the manager.
func (s Session) clone() Session {
	out := s
	if s.User != nil {
		u := *s.User
		if s.User.CreatedAt != nil {
			t := *s.User.CreatedAt
			u.CreatedAt = &t
		}
		if s.User.LastLogin != nil {
			t := *s.User.LastLogin
			u.LastLogin = &t
		}
		out.User = &u
	}
	if s.LastError != nil {
		e := *s.LastError
		out.LastError = &e
	}
	return out
}

// DisplayNameFromEmail derives a display name from the local part of an
// email address.
func DisplayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
