// Package token generates the random identifiers and secrets used by the
// authentication subsystem.
//
// Two classes of value are produced:
//
//   - NewID returns a UUID v4 string for non-secret row identifiers.
//   - NewSecret returns 32 cryptographically random bytes hex-encoded
//     (256 bits), for values that act as bearer credentials: session ids,
//     email verification secrets, password reset secrets.
//
// Digest computes the SHA-256 fingerprint of a secret as lowercase hex.
// Verification and reset secrets are embedded in emailed URLs which can leak
// through logs, referrers, or mail scanners, so only the digest is ever
// persisted; the raw secret exists only in the outbound link.
package token
