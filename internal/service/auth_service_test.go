package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/music-hub/internal/config"
	"github.com/spec-kit/music-hub/internal/domain"
	apperrors "github.com/spec-kit/music-hub/pkg/util"
)

// --- fakes ---

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[account.Username]; ok {
		return &pgconn.PgError{Code: "23505"}
	}
	account.ID = uuid.NewString()
	copied := *account
	f.accounts[account.Username] = &copied
	return nil
}

func (f *fakeAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeAccountRepo) {
	t.Helper()
	repo := newFakeAccountRepo()
	svc, err := NewAuthService(testConfig(), repo)
	require.NoError(t, err)
	return svc, repo
}

// --- tests ---

func TestAuthService_RequiresSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = ""
	_, err := NewAuthService(cfg, newFakeAccountRepo())
	require.Error(t, err)
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)
	assert.Equal(t, domain.RoleUser, account.Role)
	assert.NotEqual(t, "pw", account.PasswordHash)

	_, err = svc.Register(ctx, "alice", "pw2")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	t.Run("success returns verifiable token", func(t *testing.T) {
		account, token, exp, err := svc.Login(ctx, "alice", "pw")
		require.NoError(t, err)
		assert.Equal(t, "alice", account.Username)
		assert.False(t, exp.IsZero())

		subject, err := svc.TokenManager().Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "alice", "wrong")
		require.Error(t, err)
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
		assert.Equal(t, apperrors.ReasonInvalidCredentials, domainErr.Details["reason"])
	})

	t.Run("unknown username reports same error", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "nobody", "pw")
		require.Error(t, err)
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
		assert.Equal(t, apperrors.ReasonInvalidCredentials, domainErr.Details["reason"])
	})
}
