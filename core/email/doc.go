// Package email defines the sending abstraction used by the auth flows and
// provides a development sender that writes messages to disk instead of
// delivering them. Production delivery lives in integration/email/postmark.
//
// The templates subset of this package renders the two transactional
// messages the application sends: email verification and password reset.
package email
