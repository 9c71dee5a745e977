// Package auth orchestrates the account flows: registration, password and
// Google sign-in, logout, email verification, and password reset. It wires
// the session and verification managers to user storage and email delivery,
// and owns the enumeration policy of each flow.
//
// Registration reports a duplicate address loudly so the user can sign in
// instead. Forgot-password and resend-verification mask account existence
// and succeed either way. This asymmetry is deliberate.
package auth
