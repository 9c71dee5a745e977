// Package logger provides slog attribute helpers and handler construction
// shared by every component. Using the helpers keeps attribute keys uniform
// across packages so log pipelines can rely on stable field names.
package logger
