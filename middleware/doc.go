// Package middleware provides the HTTP middleware chain: request ids,
// structured request logging, and cookie-session resolution. All middleware
// are standard func(http.Handler) http.Handler wrappers configured through
// Config structs with sensible defaults.
package middleware
