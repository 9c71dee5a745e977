package verification

import "time"

const (
	// DefaultVerificationTTL bounds email verification tokens.
	DefaultVerificationTTL = 24 * time.Hour
	// DefaultResetTTL bounds password reset tokens. Shorter than
	// verification: a reset link grants account takeover.
	DefaultResetTTL = time.Hour
	// DefaultReissueInterval is the minimum gap between two issues of the
	// same kind for one user.
	DefaultReissueInterval = time.Minute
)

// Option is a functional option for configuring the token manager.
type Option func(*Manager)

// WithTTL overrides the lifetime for a token kind.
func WithTTL(kind Kind, ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttls[kind] = ttl
		}
	}
}

// WithReissueInterval sets the minimum time between issues per user/kind.
// Zero disables the check.
func WithReissueInterval(interval time.Duration) Option {
	return func(m *Manager) {
		if interval >= 0 {
			m.reissueInterval = interval
		}
	}
}

// WithClock overrides the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
