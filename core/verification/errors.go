package verification

import "errors"

var (
	// ErrNotFound is returned by stores when no token matches the lookup.
	ErrNotFound = errors.New("token not found")
	// ErrInvalidToken covers every consume failure a client may see:
	// unknown, expired, and already-used tokens are indistinguishable so
	// responses cannot leak which branch was taken.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrRateLimited is returned when a token of the same kind was issued
	// for the user within the reissue interval.
	ErrRateLimited = errors.New("token requested too soon")
	// ErrIssueToken is returned when persisting a new token fails.
	ErrIssueToken = errors.New("failed to issue token")
)
