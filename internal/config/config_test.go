package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_JWT_SECRET", "unit-test-secret")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/musichub")
	t.Setenv("S3_BUCKET", "musichub-media")
}

func TestLoad_RequiredValues(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{"missing jwt secret", "AUTH_JWT_SECRET"},
		{"missing postgres dsn", "POSTGRES_DSN"},
		{"missing s3 bucket", "S3_BUCKET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.missing, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "music-hub", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "unit-test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Auth.RequireCommentAuth)
	assert.Equal(t, "media", cfg.S3.KeyPrefix)
	assert.True(t, cfg.Sweep.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "30")
	t.Setenv("AUTH_REQUIRE_COMMENT_AUTH", "true")
	t.Setenv("SWEEP_ENABLED", "false")
	t.Setenv("S3_BASE_ENDPOINT", "http://127.0.0.1:9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Auth.AccessTokenTTLMinutes)
	assert.True(t, cfg.Auth.RequireCommentAuth)
	assert.False(t, cfg.Sweep.Enabled)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.S3.BaseEndpoint)
}
