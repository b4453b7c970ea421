package model

import "time"

// User mirrors the identity the auth service reports for the signed-in user.
type User struct {
	ID    string
	Email string
}

// Session holds the credential state issued by the auth service. The rest of
// the application treats it as opaque beyond expiry checking.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    int64 // milliseconds since epoch; zero means unknown
	User         *User
}

// Expired reports whether the access token is past its expiry instant.
func (s *Session) Expired(now time.Time) bool {
	if s.ExpiresAt == 0 {
		return false
	}
	return now.UnixMilli() >= s.ExpiresAt
}
