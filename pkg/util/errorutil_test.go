package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"domain error passthrough", NewConflict("taken", nil), "CONFLICT", http.StatusConflict},
		{"no rows maps to not found", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"unknown collapses to internal", errors.New("pool exhausted"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			domainErr := ToDomainError(tt.err)
			require.NotNil(t, domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
			assert.Equal(t, tt.wantStatus, domainErr.HTTPStatus)
		})
	}
}

func TestToDomainError_HidesInternalDetail(t *testing.T) {
	domainErr := ToDomainError(errors.New("dsn=postgres://user:hunter2@db"))
	assert.Equal(t, "internal server error", domainErr.Message)
}

func TestNewUnauthorizedWithReason(t *testing.T) {
	err := NewUnauthorizedWithReason("token expired", ReasonTokenExpired)
	domainErr := ToDomainError(err)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	assert.Equal(t, ReasonTokenExpired, domainErr.Details["reason"])
}

func TestDomainError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewInternalError(inner)
	assert.ErrorIs(t, err, inner)
}
