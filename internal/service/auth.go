package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nyeweb/nyeweb-server/internal/auth"
	"github.com/nyeweb/nyeweb-server/internal/domain"
	domainerrors "github.com/nyeweb/nyeweb-server/internal/errors"
	"github.com/nyeweb/nyeweb-server/internal/ratelimit"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

// loginAttemptsPerSecond and loginBurst bound password guessing per username.
const (
	loginAttemptsPerSecond = 1
	loginBurst             = 5
)

// AuthService implements the single-admin token scheme: one opaque token
// per admin, rotated on every login, checked on every admin request.
type AuthService struct {
	store    store.Store
	attempts *ratelimit.KeyedLimiter
	logger   *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(store store.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:    store,
		attempts: ratelimit.New(loginAttemptsPerSecond, loginBurst),
		logger:   logger,
	}
}

// Bootstrap ensures the configured admin account exists. An already
// existing account is left untouched so a stale database password is not
// silently rewritten on restart.
func (s *AuthService) Bootstrap(ctx context.Context, username, password string) error {
	admin := &domain.Admin{
		Username:     username,
		PasswordHash: auth.HashPassword(password),
	}
	err := s.store.CreateAdmin(ctx, admin)
	if errors.Is(err, store.ErrAlreadyExists) {
		return nil
	}
	if err != nil {
		return err
	}
	s.logger.Info("admin account created", "username", username)
	return nil
}

// Login checks the credentials and issues a fresh token, invalidating any
// token from a previous session.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if !s.attempts.Allow(username) {
		s.logger.Warn("login rate limit hit", "username", username)
		return "", domainerrors.RateLimited("too many login attempts")
	}

	admin, err := s.store.GetAdminByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return "", domainerrors.Unauthorized("invalid username or password")
	}
	if err != nil {
		return "", err
	}

	if !auth.VerifyPassword(password, admin.PasswordHash) {
		s.logger.Warn("failed login attempt", "username", username)
		return "", domainerrors.Unauthorized("invalid username or password")
	}

	token, err := auth.GenerateToken()
	if err != nil {
		return "", err
	}
	if err := s.store.SetAdminToken(ctx, admin.ID, token); err != nil {
		return "", err
	}

	s.logger.Info("admin logged in", "username", username)
	return token, nil
}

// Logout revokes the given token. Unknown tokens are a no-op so logout is
// idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.store.ClearAdminToken(ctx, token)
}

// Verify resolves a bearer token to the admin holding it.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.Admin, error) {
	if token == "" {
		return nil, domainerrors.Unauthorized("missing authentication token")
	}
	admin, err := s.store.GetAdminByToken(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.Unauthorized("invalid or expired token")
	}
	if err != nil {
		return nil, err
	}
	return admin, nil
}
