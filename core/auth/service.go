package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/layangkit/layangkit/core/email"
	"github.com/layangkit/layangkit/core/session"
	"github.com/layangkit/layangkit/core/user"
	"github.com/layangkit/layangkit/core/verification"
	"github.com/layangkit/layangkit/pkg/logger"
	"github.com/layangkit/layangkit/pkg/password"
	"github.com/layangkit/layangkit/pkg/token"
)

// Service implements the account flows on top of the user store, the
// session and verification managers, and an email sender.
type Service struct {
	users    user.Store
	sessions *session.Manager
	tokens   *verification.Manager
	sender   email.Sender
	tx       TxRunner
	oauth    OAuthProvider
	states   StateStore
	baseURL  string
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithTxRunner sets the transaction runner used by the consume-and-apply
// flows (verify email, reset password).
func WithTxRunner(tx TxRunner) Option {
	return func(s *Service) {
		if tx != nil {
			s.tx = tx
		}
	}
}

// WithGoogle enables Google sign-in.
func WithGoogle(provider OAuthProvider, states StateStore) Option {
	return func(s *Service) {
		s.oauth = provider
		s.states = states
	}
}

// WithBaseURL sets the public origin used in email links.
func WithBaseURL(baseURL string) Option {
	return func(s *Service) {
		if baseURL != "" {
			s.baseURL = baseURL
		}
	}
}

// WithServiceLogger sets the logger for delivery and provisioning events.
func WithServiceLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log.With(logger.Component("auth"))
		}
	}
}

// NewService creates the auth service. Google sign-in and transactional
// consume-and-apply are enabled through options.
func NewService(users user.Store, sessions *session.Manager, tokens *verification.Manager, sender email.Sender, opts ...Option) *Service {
	s := &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		sender:   sender,
		tx:       noTx{},
		baseURL:  "http://localhost:8080",
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register creates an unverified account and emails a verification link.
// A duplicate address fails loudly with user.ErrEmailTaken; sign-up is the
// one flow that confirms account existence. A failed email send does not
// roll back the account, the user can request a resend.
func (s *Service) Register(ctx context.Context, emailAddr, name, plaintext string) (*user.User, error) {
	if err := validateEmail(emailAddr); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePassword(plaintext); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, emailAddr); err == nil {
		return nil, user.ErrEmailTaken
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		ID:           token.NewID(),
		Email:        emailAddr,
		Name:         name,
		PasswordHash: hash,
		Provider:     user.ProviderEmail,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	if err := s.sendVerification(ctx, u); err != nil {
		s.log.LogAttrs(ctx, slog.LevelError, "verification email not sent after registration",
			logger.Event("register"), logger.UserID(u.ID), logger.Error(err))
	}

	return u, nil
}

// Login authenticates with email and password and opens a session.
// Unknown address and wrong password collapse into ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, emailAddr, plaintext string) (*user.User, session.Session, error) {
	u, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, session.Session{}, ErrInvalidCredentials
		}
		return nil, session.Session{}, err
	}

	if !u.HasPassword() {
		return nil, session.Session{}, ErrPasswordLoginUnavailable
	}

	if err := password.Verify(u.PasswordHash, plaintext); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, session.Session{}, ErrInvalidCredentials
		}
		return nil, session.Session{}, err
	}

	if !u.EmailVerified {
		return nil, session.Session{}, ErrEmailNotVerified
	}

	sess, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, session.Session{}, err
	}

	return u, sess, nil
}

// Logout ends the presented session. Idempotent.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Invalidate(ctx, sessionID)
}

// ForgotPassword issues a reset token and emails the link. It succeeds
// silently when no account exists or the account has no password; only
// delivery and rate-limit failures surface.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	u, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil
		}
		return err
	}
	if !u.HasPassword() {
		return nil
	}

	raw, err := s.tokens.Issue(ctx, u.ID, verification.KindPasswordReset)
	if err != nil {
		return err
	}

	params, err := email.PasswordResetMessage(s.baseURL, u.Email, raw)
	if err != nil {
		return err
	}
	return s.sender.Send(ctx, params)
}

// ResetPassword consumes a reset token and replaces the password. The
// consume and the password write happen in one transaction, then every
// session of the user is invalidated so stolen sessions die with the old
// password.
func (s *Service) ResetPassword(ctx context.Context, emailAddr, rawToken, plaintext string) error {
	if err := validatePassword(plaintext); err != nil {
		return err
	}

	u, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Same answer as a bad token; the flow never confirms accounts.
			return verification.ErrInvalidToken
		}
		return err
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return err
	}

	return s.tx.Tx(ctx, func(ctx context.Context) error {
		if _, err := s.tokens.Consume(ctx, u.ID, verification.KindPasswordReset, rawToken); err != nil {
			return err
		}
		if err := s.users.SetPasswordHash(ctx, u.ID, hash); err != nil {
			return err
		}
		return s.sessions.InvalidateAll(ctx, u.ID)
	})
}

// ResendVerification re-issues the verification email. Unknown addresses
// and already-verified accounts succeed silently; a recent issue surfaces
// verification.ErrRateLimited.
func (s *Service) ResendVerification(ctx context.Context, emailAddr string) error {
	u, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil
		}
		return err
	}
	if u.EmailVerified {
		return nil
	}

	return s.sendVerification(ctx, u)
}

// VerifyEmail consumes a verification token and marks the address
// verified. Verifying an already-verified account succeeds without
// touching any token.
func (s *Service) VerifyEmail(ctx context.Context, emailAddr, rawToken string) error {
	u, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return verification.ErrInvalidToken
		}
		return err
	}
	if u.EmailVerified {
		return nil
	}

	return s.tx.Tx(ctx, func(ctx context.Context) error {
		if _, err := s.tokens.Consume(ctx, u.ID, verification.KindEmailVerification, rawToken); err != nil {
			return err
		}
		return s.users.SetEmailVerified(ctx, u.ID)
	})
}

// GoogleAuthURL starts the Google sign-in flow: it binds a fresh state to
// a fresh PKCE verifier and returns the consent page URL.
func (s *Service) GoogleAuthURL(ctx context.Context) (string, error) {
	if s.oauth == nil || s.states == nil {
		return "", ErrInvalidOAuthState
	}

	state, err := token.NewSecret()
	if err != nil {
		return "", err
	}
	verifier, err := token.NewSecret()
	if err != nil {
		return "", err
	}

	if err := s.states.Save(ctx, state, verifier); err != nil {
		return "", err
	}

	return s.oauth.AuthURL(state, verifier), nil
}

// GoogleCallback completes the sign-in: it validates the state, exchanges
// the code, finds or provisions the account, and opens a session. Accounts
// are matched by Google subject first, then linked by email, then created.
func (s *Service) GoogleCallback(ctx context.Context, state, code string) (*user.User, session.Session, error) {
	if s.oauth == nil || s.states == nil {
		return nil, session.Session{}, ErrInvalidOAuthState
	}

	verifier, err := s.states.Take(ctx, state)
	if err != nil {
		return nil, session.Session{}, ErrInvalidOAuthState
	}

	profile, err := s.oauth.Exchange(ctx, code, verifier)
	if err != nil {
		return nil, session.Session{}, err
	}
	if !profile.EmailVerified {
		return nil, session.Session{}, ErrOAuthEmailUnverified
	}

	u, err := s.resolveGoogleUser(ctx, profile)
	if err != nil {
		return nil, session.Session{}, err
	}

	sess, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, session.Session{}, err
	}

	return u, sess, nil
}

func (s *Service) resolveGoogleUser(ctx context.Context, profile *GoogleProfile) (*user.User, error) {
	u, err := s.users.GetByGoogleID(ctx, profile.Sub)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	u, err = s.users.GetByEmail(ctx, profile.Email)
	if err == nil {
		if err := s.users.LinkGoogle(ctx, u.ID, profile.Sub, profile.Picture); err != nil {
			return nil, err
		}
		u.GoogleID = profile.Sub
		return u, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	u = &user.User{
		ID:            token.NewID(),
		Email:         profile.Email,
		Name:          profile.Name,
		Provider:      user.ProviderGoogle,
		GoogleID:      profile.Sub,
		Avatar:        profile.Picture,
		EmailVerified: true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.LogAttrs(ctx, slog.LevelInfo, "provisioned account from google profile",
		logger.Event("google_callback"), logger.UserID(u.ID))

	return u, nil
}

func (s *Service) sendVerification(ctx context.Context, u *user.User) error {
	raw, err := s.tokens.Issue(ctx, u.ID, verification.KindEmailVerification)
	if err != nil {
		return err
	}

	params, err := email.VerificationMessage(s.baseURL, u.Email, raw)
	if err != nil {
		return err
	}
	return s.sender.Send(ctx, params)
}
