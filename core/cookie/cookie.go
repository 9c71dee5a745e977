package cookie

import (
	"net/http"
	"time"
)

// SessionCookieName is the fixed cookie name shared between the policy and
// the request-handling layer.
const SessionCookieName = "auth_session"

// Policy produces session cookies with the application's fixed attributes.
type Policy struct {
	secure bool
}

// New creates a cookie policy from config.
func New(cfg Config) *Policy {
	return &Policy{secure: !cfg.IsDevelopment}
}

// SessionCookie returns the Set-Cookie descriptor for a live session.
func (p *Policy) SessionCookie(sessionID string, expiresAt time.Time) *http.Cookie {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}

	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   p.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// BlankSessionCookie returns the deletion descriptor used on logout and
// when an invalid session cookie is presented.
func (p *Policy) BlankSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   p.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
