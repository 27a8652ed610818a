package auth

import (
	"context"
	"strings"
	"time"

	"hogwarts.org/internal/obs"
)

// Account is the credential view of a user record. The full aggregate lives
// in the user package; the auth core only ever sees this projection and never
// mutates it.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	Enabled      bool
	Roles        string
}

// UserSource resolves accounts for login. Implementations return an error
// wrapping a not-found kind on miss; Login collapses every miss into
// ErrInvalidCredentials so callers cannot probe for valid usernames.
type UserSource interface {
	AccountByUsername(ctx context.Context, username string) (Account, error)
}

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Account   Account
}

// Service ties credential verification, token issuance, and the session
// whitelist together. It is stateless apart from its calls into the
// SessionStore.
type Service struct {
	users    UserSource
	tokens   *TokenService
	sessions SessionStore
}

// NewService constructs the auth service.
func NewService(users UserSource, tokens *TokenService, sessions SessionStore) *Service {
	return &Service{users: users, tokens: tokens, sessions: sessions}
}

// Login verifies the submitted credentials, mints a token, and records it as
// the account's one live session. A previously issued token for the same
// account stops being live the moment the new whitelist entry lands.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}
	account, err := s.users.AccountByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if !account.Enabled {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := VerifyPassword(account.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(account.ID, account.Username, account.Roles)
	if err != nil {
		return LoginResult{}, err
	}
	if err := s.sessions.Put(ctx, account.ID, token, s.tokens.TTL()); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, ExpiresAt: expiresAt, Account: account}, nil
}

// Authenticate validates a bearer token in two layers: stateless signature
// and expiry checks first, then the stateful whitelist lookup. A token that
// verifies cryptographically but is absent from (or different in) the
// whitelist is rejected, which is how revocation and session supersession
// take effect immediately.
func (s *Service) Authenticate(ctx context.Context, token string) (Principal, error) {
	claims, err := s.tokens.ParseAndValidate(token)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}
	if !s.sessions.IsLive(ctx, claims.UserID, token) {
		return Principal{}, ErrInvalidToken
	}
	return Principal{
		ID:       claims.UserID,
		Username: claims.Subject,
		Roles:    claims.Authorities,
	}, nil
}

// Revoke deletes the account's session entry, making its current token
// unusable regardless of signature validity. Idempotent.
func (s *Service) Revoke(ctx context.Context, userID int64) error {
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return err
	}
	obs.CountSessionRevocation()
	return nil
}
