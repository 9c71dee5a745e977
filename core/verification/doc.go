// Package verification issues and consumes the single-use, time-limited
// tokens backing email verification and password reset.
//
// Both flows run the same algorithm over separate storage tables, selected
// by Kind. Issuing a token deletes any earlier tokens of the same kind for
// the user, so at most one token per user per kind can validate at a time.
// A minimum reissue interval guards the "resend" endpoints against abuse.
//
// Only the SHA-256 digest of a secret is persisted. Rows are looked up by
// (user, kind, digest), and consumption flips the used flag through a
// conditional store update so that concurrent consume calls cannot both
// succeed with the same token.
//
// The manager does not perform the effect a token authorizes (marking the
// email verified, accepting a new password hash); the caller runs Consume
// and the effect inside one transaction so neither is observable without
// the other.
package verification
