package domain

import "time"

// Session is the verified identity behind a bearer token.
type Session struct {
	UserID    string
	Usertype  Usertype
	Username  string
	TokenID   string
	ExpiresAt time.Time
}

// IsAdmin reports whether the session belongs to an administrator.
func (s Session) IsAdmin() bool { return s.Usertype == UsertypeAdmin }
