package verification

import "time"

// Kind selects which token flow (and storage table) an operation targets.
type Kind string

const (
	// KindEmailVerification proves the holder controls the account's email.
	KindEmailVerification Kind = "email_verification"
	// KindPasswordReset authorizes setting a new password.
	KindPasswordReset Kind = "password_reset"
)

// Token is a stored token row. TokenHash is the SHA-256 digest of the
// secret that was emailed to the user; the raw secret is never persisted.
type Token struct {
	ID        string
	UserID    string
	Kind      Kind
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Active reports whether the token can still be consumed at the given time.
func (t Token) Active(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
