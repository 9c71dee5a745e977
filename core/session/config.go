package session

import "time"

const (
	// DefaultTTL is the session lifetime granted on creation and renewal.
	DefaultTTL = 30 * 24 * time.Hour
	// DefaultRenewalWindow is the remaining-lifetime threshold below which
	// validation extends the session. Half the TTL, so a session is renewed
	// at most once per half-life instead of on every request.
	DefaultRenewalWindow = 15 * 24 * time.Hour
)

// Option is a functional option for configuring the session manager.
type Option func(*Manager)

// WithTTL sets the session time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithRenewalWindow sets the remaining-lifetime threshold that triggers
// rolling renewal during validation.
func WithRenewalWindow(window time.Duration) Option {
	return func(m *Manager) {
		if window > 0 {
			m.renewalWindow = window
		}
	}
}

// WithClock overrides the time source. Tests use it to fast-forward through
// renewal and expiry scenarios.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
