package middleware

import (
	"context"
	"net/http"

	"github.com/layangkit/layangkit/core/cookie"
	"github.com/layangkit/layangkit/core/session"
	"github.com/layangkit/layangkit/core/user"
)

type sessionContextKey struct{}
type userContextKey struct{}

// SessionConfig configures the session middleware.
type SessionConfig struct {
	// Skip disables session resolution for matching requests.
	Skip func(r *http.Request) bool
	// Sessions resolves cookie values to users (required).
	Sessions *session.Manager
	// Cookies derives the Set-Cookie headers (required).
	Cookies *cookie.Policy
}

// Session resolves the auth_session cookie on every request. A valid
// session puts the user and session into the request context; a session
// renewed during validation re-issues the cookie with the extended expiry.
// A cookie that fails validation is cleared so the client stops sending it.
// The request always proceeds; enforcement belongs to RequireAuth.
func Session(sessions *session.Manager, cookies *cookie.Policy) func(http.Handler) http.Handler {
	return SessionWithConfig(SessionConfig{Sessions: sessions, Cookies: cookies})
}

// SessionWithConfig creates a session middleware with custom configuration.
func SessionWithConfig(cfg SessionConfig) func(http.Handler) http.Handler {
	if cfg.Sessions == nil || cfg.Cookies == nil {
		panic("session middleware: sessions and cookies are required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			c, err := r.Cookie(cookie.SessionCookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			usr, sess := cfg.Sessions.Validate(r.Context(), c.Value)
			if usr == nil || sess == nil {
				http.SetCookie(w, cfg.Cookies.BlankSessionCookie())
				next.ServeHTTP(w, r)
				return
			}

			if sess.Fresh {
				http.SetCookie(w, cfg.Cookies.SessionCookie(sess.ID, sess.ExpiresAt))
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, usr)
			ctx = context.WithValue(ctx, sessionContextKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that did not resolve to an authenticated
// user with 401. Must run after Session.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUser(r.Context()); !ok {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUser retrieves the authenticated user from the context.
func GetUser(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(userContextKey{}).(*user.User)
	return u, ok
}

// GetSession retrieves the resolved session from the context.
func GetSession(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*session.Session)
	return s, ok
}
