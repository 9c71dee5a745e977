package user

import "time"

// Provider identifies how an account authenticates.
type Provider string

const (
	ProviderEmail  Provider = "email"
	ProviderGoogle Provider = "google"
)

// User is an account row. PasswordHash is empty for OAuth-only accounts;
// such accounts must sign in through their provider and cannot use the
// password or reset flows.
type User struct {
	ID            string
	Email         string
	Name          string
	PasswordHash  string
	Provider      Provider
	GoogleID      string
	Avatar        string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasPassword reports whether the account can authenticate with a password.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}
