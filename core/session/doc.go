// Package session implements the server-side session lifecycle: creation at
// login, validation of a presented session id, rolling renewal, and
// invalidation (single session or all sessions of a user).
//
// A session's id is a high-entropy random string that doubles as the bearer
// credential stored in the cookie; there is no separate lookup-key/secret
// split. The persistence layer must therefore never expose session ids.
//
// # Lifecycle
//
// A session is either absent, expired (past ExpiresAt, purged lazily on the
// next validation), or live. Validation extends a live session's expiry to a
// full TTL once its remaining lifetime drops below the renewal window,
// marking the result Fresh so the transport layer can re-issue the cookie.
// Limiting renewal to the second half of the lifetime keeps active users
// logged in indefinitely without a store write on every request.
//
//	mgr := session.NewManager(store, users,
//		session.WithTTL(30*24*time.Hour),
//		session.WithRenewalWindow(15*24*time.Hour),
//	)
//
//	sess, err := mgr.Create(ctx, userID)        // on login
//	usr, sess := mgr.Validate(ctx, cookieValue) // per request
//	err = mgr.Invalidate(ctx, sess.ID)          // on logout
//
// # Failure semantics
//
// Validate never returns an error: an unknown, expired, or malformed id and
// any store failure during the read all degrade to (nil, nil), so the
// request proceeds unauthenticated rather than failing the page.
// Create, Invalidate, and InvalidateAll propagate store errors so callers
// can surface a fault instead of silently assuming success.
package session
