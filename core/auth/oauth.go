package auth

import "context"

// GoogleProfile is the subset of the Google identity token the service
// needs to find or provision an account.
type GoogleProfile struct {
	Sub           string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// OAuthProvider abstracts the Google authorization code flow with PKCE.
// The production implementation lives in integration/oauth/google.
type OAuthProvider interface {
	// AuthURL builds the consent page URL for the given state and PKCE
	// verifier pair.
	AuthURL(state, verifier string) string
	// Exchange trades the authorization code for the user's profile.
	Exchange(ctx context.Context, code, verifier string) (*GoogleProfile, error)
}

// StateStore persists the state to PKCE-verifier binding between the
// redirect to Google and the callback. Take is single use: a second call
// with the same state must fail.
type StateStore interface {
	Save(ctx context.Context, state, verifier string) error
	Take(ctx context.Context, state string) (string, error)
}

// TxRunner executes fn inside a storage transaction carried in the context
// so that store calls made by fn share one atomic unit.
type TxRunner interface {
	Tx(ctx context.Context, fn func(ctx context.Context) error) error
}

// noTx runs fn without a transaction. Used when no runner is configured,
// mostly in tests.
type noTx struct{}

func (noTx) Tx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
