package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown address and wrong password
	// so a login failure never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotVerified rejects password logins until the address is
	// confirmed.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrPasswordLoginUnavailable is returned for accounts created through
	// Google sign-in that have no password set.
	ErrPasswordLoginUnavailable = errors.New("password login not available for this account")

	// ErrInvalidOAuthState rejects callbacks whose state is unknown,
	// expired, or already used.
	ErrInvalidOAuthState = errors.New("invalid oauth state")

	// ErrOAuthEmailUnverified rejects Google profiles whose address Google
	// itself has not verified.
	ErrOAuthEmailUnverified = errors.New("google account email not verified")

	// ErrValidation wraps input validation failures.
	ErrValidation = errors.New("validation failed")
)
