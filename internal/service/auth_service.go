package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/music-hub/internal/auth"
	"github.com/spec-kit/music-hub/internal/config"
	"github.com/spec-kit/music-hub/internal/domain"
	"github.com/spec-kit/music-hub/internal/repository"
	apperrors "github.com/spec-kit/music-hub/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service. It fails when the signing secret is
// absent so the process refuses to start instead of running with a default.
func NewAuthService(cfg config.Config, accounts repository.AccountRepository) (*AuthService, error) {
	tokenMgr, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		accounts:   accounts,
		tokenMgr:   tokenMgr,
		bcryptCost: cfg.Auth.BcryptCost,
	}, nil
}

// Register creates a new account with the user role. Duplicate usernames
// report a conflict.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	if _, err := s.accounts.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("username already registered", map[string]any{"username": username})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	account := &domain.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		// The unique index closes the check-then-insert race.
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("username already registered", map[string]any{"username": username})
		}
		return nil, apperrors.MapError(err)
	}
	return account, nil
}

// Login authenticates an account and issues a bearer token. An unknown
// username burns a dummy hash comparison so its latency matches the
// wrong-password path.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			auth.CompareDummy(password)
			return nil, "", time.Time{}, apperrors.NewUnauthorizedWithReason("invalid username or password", apperrors.ReasonInvalidCredentials)
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorizedWithReason("invalid username or password", apperrors.ReasonInvalidCredentials)
	}

	token, exp, err := s.tokenMgr.Issue(account.Username)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return account, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
