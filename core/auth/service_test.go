package auth_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layangkit/layangkit/core/auth"
	"github.com/layangkit/layangkit/core/email"
	"github.com/layangkit/layangkit/core/session"
	"github.com/layangkit/layangkit/core/user"
	"github.com/layangkit/layangkit/core/verification"
	"github.com/layangkit/layangkit/pkg/password"
)

// userMemStore is a map-backed user.Store.
type userMemStore struct {
	mu    sync.Mutex
	users map[string]user.User
}

func newUserMemStore() *userMemStore {
	return &userMemStore{users: make(map[string]user.User)}
}

func (s *userMemStore) Create(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	s.users[u.ID] = *u
	return nil
}

func (s *userMemStore) GetByID(_ context.Context, id string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

func (s *userMemStore) GetByEmail(_ context.Context, emailAddr string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == emailAddr {
			v := u
			return &v, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *userMemStore) GetByGoogleID(_ context.Context, googleID string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.GoogleID == googleID && googleID != "" {
			v := u
			return &v, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *userMemStore) List(_ context.Context, limit, offset int) ([]user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *userMemStore) UpdateProfile(_ context.Context, id, name, avatar string) error {
	return s.update(id, func(u *user.User) { u.Name = name; u.Avatar = avatar })
}

func (s *userMemStore) SetEmailVerified(_ context.Context, id string) error {
	return s.update(id, func(u *user.User) { u.EmailVerified = true })
}

func (s *userMemStore) SetPasswordHash(_ context.Context, id, hash string) error {
	return s.update(id, func(u *user.User) { u.PasswordHash = hash })
}

func (s *userMemStore) LinkGoogle(_ context.Context, id, googleID, avatar string) error {
	return s.update(id, func(u *user.User) {
		u.GoogleID = googleID
		if avatar != "" {
			u.Avatar = avatar
		}
	})
}

func (s *userMemStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (s *userMemStore) update(id string, fn func(*user.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return user.ErrNotFound
	}
	fn(&u)
	s.users[id] = u
	return nil
}

// sessionMemStore is a map-backed session.Store.
type sessionMemStore struct {
	mu       sync.Mutex
	sessions map[string]session.Session
}

func newSessionMemStore() *sessionMemStore {
	return &sessionMemStore{sessions: make(map[string]session.Session)}
}

func (s *sessionMemStore) Get(_ context.Context, id string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return &sess, nil
}

func (s *sessionMemStore) Put(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *sessionMemStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *sessionMemStore) DeleteForUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (s *sessionMemStore) countForUser(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			n++
		}
	}
	return n
}

// tokenMemStore is a map-backed verification.Store.
type tokenMemStore struct {
	mu     sync.Mutex
	tokens map[string]verification.Token
	now    func() time.Time
}

func newTokenMemStore(now func() time.Time) *tokenMemStore {
	return &tokenMemStore{tokens: make(map[string]verification.Token), now: now}
}

func (s *tokenMemStore) GetActive(_ context.Context, userID string, kind verification.Kind, hash string) (*verification.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tok := range s.tokens {
		if tok.UserID == userID && tok.Kind == kind && tok.TokenHash == hash && tok.Active(s.now()) {
			t := tok
			return &t, nil
		}
	}
	return nil, verification.ErrNotFound
}

func (s *tokenMemStore) GetRecent(_ context.Context, userID string, kind verification.Kind, since time.Time) (*verification.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tok := range s.tokens {
		if tok.UserID == userID && tok.Kind == kind && !tok.CreatedAt.Before(since) {
			t := tok
			return &t, nil
		}
	}
	return nil, verification.ErrNotFound
}

func (s *tokenMemStore) Put(_ context.Context, tok *verification.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tok.ID] = *tok
	return nil
}

func (s *tokenMemStore) DeleteForUser(_ context.Context, userID string, kind verification.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, tok := range s.tokens {
		if tok.UserID == userID && tok.Kind == kind {
			delete(s.tokens, id)
		}
	}
	return nil
}

func (s *tokenMemStore) MarkUsed(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.tokens[id]
	if !ok || tok.Used {
		return false, nil
	}
	tok.Used = true
	s.tokens[id] = tok
	return true, nil
}

// captureSender records sent messages.
type captureSender struct {
	mu   sync.Mutex
	sent []email.SendParams
	fail error
}

func (c *captureSender) Send(_ context.Context, params email.SendParams) error {
	if c.fail != nil {
		return c.fail
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, params)
	return nil
}

func (c *captureSender) last() email.SendParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sent[len(c.sent)-1]
}

func (c *captureSender) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

// fakeOAuth is a canned auth.OAuthProvider.
type fakeOAuth struct {
	profile *auth.GoogleProfile
	err     error
}

func (f *fakeOAuth) AuthURL(state, verifier string) string {
	return "https://accounts.google.com/o/oauth2/v2/auth?state=" + state
}

func (f *fakeOAuth) Exchange(_ context.Context, code, verifier string) (*auth.GoogleProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

// fakeStateStore is a single-use map state store.
type fakeStateStore struct {
	mu     sync.Mutex
	states map[string]string
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{states: make(map[string]string)}
}

func (s *fakeStateStore) Save(_ context.Context, state, verifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = verifier
	return nil
}

func (s *fakeStateStore) Take(_ context.Context, state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	verifier, ok := s.states[state]
	if !ok {
		return "", errors.New("state not found")
	}
	delete(s.states, state)
	return verifier, nil
}

type testEnv struct {
	svc      *auth.Service
	users    *userMemStore
	sessions *sessionMemStore
	tokens   *tokenMemStore
	sender   *captureSender
	oauth    *fakeOAuth
	states   *fakeStateStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	now := time.Now
	users := newUserMemStore()
	sessions := newSessionMemStore()
	tokens := newTokenMemStore(now)
	sender := &captureSender{}
	oauth := &fakeOAuth{}
	states := newFakeStateStore()

	svc := auth.NewService(
		users,
		session.NewManager(sessions, users),
		verification.NewManager(tokens),
		sender,
		auth.WithGoogle(oauth, states),
		auth.WithBaseURL("https://app.example.com"),
	)

	return &testEnv{svc: svc, users: users, sessions: sessions, tokens: tokens, sender: sender, oauth: oauth, states: states}
}

// register creates a verified or unverified account through the real flow.
func (e *testEnv) register(t *testing.T, emailAddr string, verified bool) *user.User {
	t.Helper()

	u, err := e.svc.Register(context.Background(), emailAddr, "Test User", "Sup3rSecret")
	require.NoError(t, err)

	if verified {
		require.NoError(t, e.users.SetEmailVerified(context.Background(), u.ID))
		u.EmailVerified = true
	}
	return u
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates unverified account and sends verification email", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		u, err := env.svc.Register(context.Background(), "new@example.com", "New User", "Sup3rSecret")
		require.NoError(t, err)

		assert.NotEmpty(t, u.ID)
		assert.False(t, u.EmailVerified)
		assert.Equal(t, user.ProviderEmail, u.Provider)
		assert.NoError(t, password.Verify(u.PasswordHash, "Sup3rSecret"))

		require.Equal(t, 1, env.sender.count())
		msg := env.sender.last()
		assert.Equal(t, "new@example.com", msg.To)
		assert.Equal(t, "email_verification", msg.Tag)
		assert.Contains(t, msg.BodyHTML, "https://app.example.com/verify-email")
	})

	t.Run("duplicate email fails loudly", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.register(t, "dup@example.com", false)

		_, err := env.svc.Register(context.Background(), "dup@example.com", "Other", "Sup3rSecret")
		assert.ErrorIs(t, err, user.ErrEmailTaken)
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		for _, pw := range []string{"short1A", "alllowercase1", "NoDigitsHere"} {
			_, err := env.svc.Register(context.Background(), "weak@example.com", "Weak", pw)
			assert.ErrorIs(t, err, auth.ErrValidation, "password %q", pw)
		}
	})

	t.Run("rejects bad email and short name", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		_, err := env.svc.Register(context.Background(), "not-an-address", "Name", "Sup3rSecret")
		assert.ErrorIs(t, err, auth.ErrValidation)

		_, err = env.svc.Register(context.Background(), "ok@example.com", "x", "Sup3rSecret")
		assert.ErrorIs(t, err, auth.ErrValidation)
	})

	t.Run("email delivery failure does not roll back the account", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.sender.fail = errors.New("smtp down")

		u, err := env.svc.Register(context.Background(), "offline@example.com", "Offline", "Sup3rSecret")
		require.NoError(t, err)

		stored, err := env.users.GetByID(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Equal(t, "offline@example.com", stored.Email)
	})
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	t.Run("verified account gets a session", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		u := env.register(t, "login@example.com", true)

		got, sess, err := env.svc.Login(context.Background(), "login@example.com", "Sup3rSecret")
		require.NoError(t, err)

		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, u.ID, sess.UserID)
		assert.Len(t, sess.ID, 64)
		assert.True(t, sess.Fresh)
	})

	t.Run("unknown address and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.register(t, "known@example.com", true)

		_, _, errUnknown := env.svc.Login(context.Background(), "ghost@example.com", "Sup3rSecret")
		_, _, errWrong := env.svc.Login(context.Background(), "known@example.com", "Wr0ngPassword")

		assert.ErrorIs(t, errUnknown, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, auth.ErrInvalidCredentials)
	})

	t.Run("unverified account is rejected", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.register(t, "pending@example.com", false)

		_, _, err := env.svc.Login(context.Background(), "pending@example.com", "Sup3rSecret")
		assert.ErrorIs(t, err, auth.ErrEmailNotVerified)
	})

	t.Run("oauth-only account cannot use password login", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		require.NoError(t, env.users.Create(context.Background(), &user.User{
			ID: "g1", Email: "google@example.com", Name: "G",
			Provider: user.ProviderGoogle, GoogleID: "sub-1", EmailVerified: true,
		}))

		_, _, err := env.svc.Login(context.Background(), "google@example.com", "whatever")
		assert.ErrorIs(t, err, auth.ErrPasswordLoginUnavailable)
	})
}

func TestService_Logout(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	u := env.register(t, "out@example.com", true)

	_, sess, err := env.svc.Login(context.Background(), "out@example.com", "Sup3rSecret")
	require.NoError(t, err)
	require.Equal(t, 1, env.sessions.countForUser(u.ID))

	require.NoError(t, env.svc.Logout(context.Background(), sess.ID))
	assert.Equal(t, 0, env.sessions.countForUser(u.ID))

	// Logging out twice is fine.
	assert.NoError(t, env.svc.Logout(context.Background(), sess.ID))
}

func TestService_ForgotPassword(t *testing.T) {
	t.Parallel()

	t.Run("sends reset link for password accounts", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.register(t, "reset@example.com", true)
		before := env.sender.count()

		require.NoError(t, env.svc.ForgotPassword(context.Background(), "reset@example.com"))

		require.Equal(t, before+1, env.sender.count())
		msg := env.sender.last()
		assert.Equal(t, "password_reset", msg.Tag)
		assert.Contains(t, msg.BodyHTML, "https://app.example.com/reset-password")
	})

	t.Run("masks unknown addresses", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		assert.NoError(t, env.svc.ForgotPassword(context.Background(), "ghost@example.com"))
		assert.Equal(t, 0, env.sender.count())
	})

	t.Run("masks oauth-only accounts", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		require.NoError(t, env.users.Create(context.Background(), &user.User{
			ID: "g1", Email: "google@example.com", Provider: user.ProviderGoogle,
			GoogleID: "sub-1", EmailVerified: true,
		}))

		assert.NoError(t, env.svc.ForgotPassword(context.Background(), "google@example.com"))
		assert.Equal(t, 0, env.sender.count())
	})

	t.Run("rapid repeat is rate limited", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.register(t, "eager@example.com", true)

		require.NoError(t, env.svc.ForgotPassword(context.Background(), "eager@example.com"))
		err := env.svc.ForgotPassword(context.Background(), "eager@example.com")
		assert.ErrorIs(t, err, verification.ErrRateLimited)
	})
}

func TestService_ResetPassword(t *testing.T) {
	t.Parallel()

	// issueReset pulls the raw token out of the emailed link.
	issueReset := func(t *testing.T, env *testEnv, emailAddr string) string {
		t.Helper()
		require.NoError(t, env.svc.ForgotPassword(context.Background(), emailAddr))
		return tokenFromBody(t, env.sender.last().BodyHTML)
	}

	t.Run("replaces password and kills all sessions", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		u := env.register(t, "victim@example.com", true)

		_, _, err := env.svc.Login(context.Background(), "victim@example.com", "Sup3rSecret")
		require.NoError(t, err)
		_, _, err = env.svc.Login(context.Background(), "victim@example.com", "Sup3rSecret")
		require.NoError(t, err)
		require.Equal(t, 2, env.sessions.countForUser(u.ID))

		raw := issueReset(t, env, "victim@example.com")
		require.NoError(t, env.svc.ResetPassword(context.Background(), "victim@example.com", raw, "N3wPassword"))

		assert.Equal(t, 0, env.sessions.countForUser(u.ID))

		_, _, err = env.svc.Login(context.Background(), "victim@example.com", "Sup3rSecret")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		_, _, err = env.svc.Login(context.Background(), "victim@example.com", "N3wPassword")
		assert.NoError(t, err)
	})

	t.Run("token works once", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.register(t, "once@example.com", true)

		raw := issueReset(t, env, "once@example.com")
		require.NoError(t, env.svc.ResetPassword(context.Background(), "once@example.com", raw, "N3wPassword"))

		err := env.svc.ResetPassword(context.Background(), "once@example.com", raw, "An0therPassword")
		assert.ErrorIs(t, err, verification.ErrInvalidToken)
	})

	t.Run("unknown address reports invalid token", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		err := env.svc.ResetPassword(context.Background(), "ghost@example.com", "deadbeef", "N3wPassword")
		assert.ErrorIs(t, err, verification.ErrInvalidToken)
	})

	t.Run("new password must meet the policy", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.register(t, "policy@example.com", true)

		raw := issueReset(t, env, "policy@example.com")
		err := env.svc.ResetPassword(context.Background(), "policy@example.com", raw, "weak")
		require.ErrorIs(t, err, auth.ErrValidation)

		// The token survives a rejected password and still works.
		assert.NoError(t, env.svc.ResetPassword(context.Background(), "policy@example.com", raw, "N3wPassword"))
	})
}

func TestService_ResendVerification(t *testing.T) {
	t.Parallel()

	t.Run("resends for unverified accounts", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.register(t, "slow@example.com", false)
		// Registration already sent one; the rate limiter must release first.
		env.tokens.mu.Lock()
		for id, tok := range env.tokens.tokens {
			tok.CreatedAt = tok.CreatedAt.Add(-2 * time.Minute)
			env.tokens.tokens[id] = tok
		}
		env.tokens.mu.Unlock()

		require.NoError(t, env.svc.ResendVerification(context.Background(), "slow@example.com"))
		assert.Equal(t, 2, env.sender.count())
	})

	t.Run("masks unknown addresses", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		assert.NoError(t, env.svc.ResendVerification(context.Background(), "ghost@example.com"))
		assert.Equal(t, 0, env.sender.count())
	})

	t.Run("verified account is a silent no-op", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.register(t, "done@example.com", true)
		before := env.sender.count()

		assert.NoError(t, env.svc.ResendVerification(context.Background(), "done@example.com"))
		assert.Equal(t, before, env.sender.count())
	})

	t.Run("rapid repeat is rate limited", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.register(t, "eager@example.com", false)

		err := env.svc.ResendVerification(context.Background(), "eager@example.com")
		assert.ErrorIs(t, err, verification.ErrRateLimited)
	})
}

func TestService_VerifyEmail(t *testing.T) {
	t.Parallel()

	t.Run("marks the account verified", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		u := env.register(t, "fresh@example.com", false)
		raw := tokenFromBody(t, env.sender.last().BodyHTML)

		require.NoError(t, env.svc.VerifyEmail(context.Background(), "fresh@example.com", raw))

		stored, err := env.users.GetByID(context.Background(), u.ID)
		require.NoError(t, err)
		assert.True(t, stored.EmailVerified)

		// And the account can log in now.
		_, _, err = env.svc.Login(context.Background(), "fresh@example.com", "Sup3rSecret")
		assert.NoError(t, err)
	})

	t.Run("already verified succeeds without consuming anything", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.register(t, "done@example.com", true)

		assert.NoError(t, env.svc.VerifyEmail(context.Background(), "done@example.com", "garbage"))
	})

	t.Run("bad token is rejected", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.register(t, "fresh@example.com", false)

		err := env.svc.VerifyEmail(context.Background(), "fresh@example.com", "garbage")
		assert.ErrorIs(t, err, verification.ErrInvalidToken)
	})

	t.Run("unknown address reports invalid token", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		err := env.svc.VerifyEmail(context.Background(), "ghost@example.com", "deadbeef")
		assert.ErrorIs(t, err, verification.ErrInvalidToken)
	})
}

func TestService_Google(t *testing.T) {
	t.Parallel()

	profile := &auth.GoogleProfile{
		Sub:           "google-sub-1",
		Email:         "g@example.com",
		EmailVerified: true,
		Name:          "G User",
		Picture:       "https://lh3.example.com/p.jpg",
	}

	t.Run("auth url binds state to verifier", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		url, err := env.svc.GoogleAuthURL(context.Background())
		require.NoError(t, err)
		assert.Contains(t, url, "https://accounts.google.com")
		assert.Len(t, env.states.states, 1)
	})

	t.Run("callback provisions a new verified account", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.oauth.profile = profile
		require.NoError(t, env.states.Save(context.Background(), "st", "vf"))

		u, sess, err := env.svc.GoogleCallback(context.Background(), "st", "code")
		require.NoError(t, err)

		assert.Equal(t, user.ProviderGoogle, u.Provider)
		assert.True(t, u.EmailVerified)
		assert.Equal(t, "google-sub-1", u.GoogleID)
		assert.Equal(t, u.ID, sess.UserID)
	})

	t.Run("callback links google to an existing email account", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		existing := env.register(t, "g@example.com", true)
		env.oauth.profile = profile
		require.NoError(t, env.states.Save(context.Background(), "st", "vf"))

		u, _, err := env.svc.GoogleCallback(context.Background(), "st", "code")
		require.NoError(t, err)

		assert.Equal(t, existing.ID, u.ID)
		stored, err := env.users.GetByID(context.Background(), existing.ID)
		require.NoError(t, err)
		assert.Equal(t, "google-sub-1", stored.GoogleID)
	})

	t.Run("state is single use", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.oauth.profile = profile
		require.NoError(t, env.states.Save(context.Background(), "st", "vf"))

		_, _, err := env.svc.GoogleCallback(context.Background(), "st", "code")
		require.NoError(t, err)

		_, _, err = env.svc.GoogleCallback(context.Background(), "st", "code")
		assert.ErrorIs(t, err, auth.ErrInvalidOAuthState)
	})

	t.Run("unverified google email is rejected", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.oauth.profile = &auth.GoogleProfile{Sub: "s", Email: "g@example.com", EmailVerified: false}
		require.NoError(t, env.states.Save(context.Background(), "st", "vf"))

		_, _, err := env.svc.GoogleCallback(context.Background(), "st", "code")
		assert.ErrorIs(t, err, auth.ErrOAuthEmailUnverified)
	})
}

// tokenFromBody extracts the token query parameter from the first action
// link in an email body.
func tokenFromBody(t *testing.T, body string) string {
	t.Helper()

	const marker = "token="
	i := strings.LastIndex(body, marker)
	require.GreaterOrEqual(t, i, 0, "no token link in body")

	raw := body[i+len(marker):]
	for j := 0; j < len(raw); j++ {
		if !isHex(raw[j]) {
			return raw[:j]
		}
	}
	return raw
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}
