// Package google implements the Google sign-in provider using OpenID
// Connect with PKCE.
//
// New discovers Google's endpoints once at startup and builds an ID token
// verifier pinned to the client ID. AuthURL derives the S256 code challenge
// from the caller's verifier so the raw verifier never leaves the server,
// and Exchange verifies the returned ID token before trusting any claim
// in it.
package google
