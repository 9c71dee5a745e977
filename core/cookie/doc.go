// Package cookie derives the wire-format session cookie. It is the only
// component that decides cookie attributes; callers decide whether to set a
// cookie, never how.
//
// The cookie value is the session id itself (the id is the bearer secret in
// this design) under the fixed name "auth_session". The Secure flag is
// dropped only in local development so the cookie works over plain HTTP.
package cookie
