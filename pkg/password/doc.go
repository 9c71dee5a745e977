// Package password wraps bcrypt hashing and verification for user
// credentials. OAuth-only accounts carry no password hash at all, so callers
// must treat a missing hash as "use the external provider" rather than a
// verification failure.
package password
