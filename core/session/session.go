package session

import "time"

// Session is a server-issued credential bound to a user and an absolute
// expiry. The ID is the bearer value transported in the session cookie.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time

	// Fresh reports that the validation call which produced this value just
	// created or renewed the row. It is derived, never persisted; transports
	// use it to decide whether to re-issue the cookie.
	Fresh bool
}

// ExpiresIn returns the remaining lifetime relative to now.
func (s Session) ExpiresIn(now time.Time) time.Duration {
	return s.ExpiresAt.Sub(now)
}
