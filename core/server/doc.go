// Package server wraps http.Server with environment-driven configuration,
// optional TLS, and graceful shutdown. Start blocks until the context is
// canceled; Run adapts the lifecycle to errgroup-style supervision.
package server
