// Package pg provides PostgreSQL connectivity and the storage
// implementations for users, sessions, verification tokens, and posts.
//
// Connections go through a pgxpool with retry on startup; schema is managed
// with embedded goose migrations. Store methods honor a transaction carried
// in the context (see WithTx and Runner) so multi-store operations can be
// atomic without the stores knowing about each other.
package pg
