// Package handler exposes the application over JSON HTTP endpoints.
//
// Handlers are grouped by resource (auth, profile, users, posts, uploads,
// health) and wired together by NewRouter, which also installs the request
// ID, logging, and session middleware. Error translation to HTTP status
// codes happens only here; domain packages return sentinel errors and know
// nothing about HTTP.
//
// Responses that could confirm whether an email address has an account keep
// the same generic body on every outcome. Registration is the one exception
// and answers 409 for a taken address.
package handler
