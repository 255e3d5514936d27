package alumni

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// Auther orchestrates registration and login on top of the credential
// store, the password hasher and the token service.
type Auther struct {
	store        UserStore
	provider     IdentityProvider
	signingKey   []byte
	ttl          time.Duration
	issuer       string
	logger       Logger
	tokenService TokenService
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(store UserStore, cfg Config) *Auther {
	tokenService := NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenTTL(),
		cfg.GetIssuer(),
		defLogger{},
	)

	return &Auther{
		store:        store,
		provider:     NewUserProvider(store),
		signingKey:   []byte(cfg.GetSigningKey()),
		ttl:          cfg.GetTokenTTL(),
		issuer:       cfg.GetIssuer(),
		logger:       defLogger{},
		tokenService: tokenService,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	s.tokenService = NewTokenService(s.signingKey, s.ttl, s.issuer, logger)
	return s
}

// WithIdentityProvider sets a custom identity provider, mostly for tests
func (s *Auther) WithIdentityProvider(provider IdentityProvider) *Auther {
	s.provider = provider
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Register creates the account and logs it in: uniqueness check, password
// hashing, insert, token issuance. The role defaults to alumni when the
// caller leaves it unspecified.
func (s *Auther) Register(ctx context.Context, email, password string, role UserRole) (string, *User, error) {
	if role == "" {
		role = DefaultRole
	}

	if !role.IsValid() {
		return "", nil, ErrInvalidRole
	}

	taken, err := s.store.Exists(ctx, email)
	if err != nil {
		return "", nil, errors.Wrap(err, errors.CategoryInternal, "failed to check for existing account")
	}
	if taken {
		s.logger.Info("Register rejected duplicate email", "email", email)
		return "", nil, ErrEmailRegistered
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	now := time.Now().UTC()
	user := &User{
		ID:           newUserID(email),
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    &now,
	}

	if user, err = s.store.Register(ctx, user); err != nil {
		s.logger.Error("Register create account error", "error", err)
		return "", nil, err
	}

	token, err := s.tokenService.Generate(NewIdentityFromUser(user))
	if err != nil {
		s.logger.Error("Register token generation error", "error", err)
		return "", nil, err
	}

	return token, user, nil
}

// Login verifies the credentials and issues a fresh token
func (s *Auther) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.provider.VerifyIdentity(ctx, email, password)
	if err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		return "", nil, err
	}

	token, err := s.tokenService.Generate(NewIdentityFromUser(user))
	if err != nil {
		s.logger.Error("Login token generation error", "error", err)
		return "", nil, err
	}

	return token, user, nil
}

// SessionFromToken validates a raw bearer token and exposes it as a session
func (s *Auther) SessionFromToken(raw string) (Session, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Error("SessionFromToken validation failed", "error", err)
		return nil, err
	}

	session, err := sessionFromAuthClaims(claims)
	if err != nil {
		s.logger.Error("SessionFromToken failed to create session from claims", "error", err)
		return nil, err
	}

	return session, nil
}

// IdentityFromSession resolves the account behind a session subject
func (s *Auther) IdentityFromSession(ctx context.Context, session Session) (Identity, error) {
	user, err := s.provider.FindIdentityByIdentifier(ctx, session.GetSubject())
	if err != nil {
		s.logger.Error("IdentityFromSession find identity by identifier", "error", err)
		return nil, err
	}

	return NewIdentityFromUser(user), nil
}

// newUserID derives a stable UUID from the email so re-running fixtures
// stays idempotent; falls back to a random one.
func newUserID(email string) uuid.UUID {
	if id, err := hashid.NewUUID(email); err == nil {
		return id
	}
	return uuid.New()
}
