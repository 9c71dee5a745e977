// Package user defines the account entity shared by the authentication and
// content subsystems, plus the persistence contract it is loaded through.
// The auth core references users but does not own their storage.
package user
