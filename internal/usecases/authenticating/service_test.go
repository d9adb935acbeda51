package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/resale-ledger-api/internal/config"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, password string) *Service {
	t.Helper()

	cfg := &config.Config{SecretKey: "test-secret"}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		cfg.Auth.OwnerPasswordHash = string(hash)
	}

	return NewService(cfg).(*Service)
}

func TestLogin_ValidPassword(t *testing.T) {
	svc := newTestService(t, "s3cret")

	token, err := svc.Login("s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.OwnerSubject, claims.Subject)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		password string
		wantErr  error
		wantCode string
	}{
		{"senha incorreta", "s3cret", "wrong", ErrInvalidCredentials, apiErrors.ErrInvalidCredentials},
		{"senha vazia", "s3cret", "", ErrMissingPassword, apiErrors.ErrMissingRequiredData},
		{"hash não configurado", "", "anything", ErrNotConfigured, apiErrors.ErrAuthNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.stored)

			token, err := svc.Login(tt.password)

			assert.Empty(t, token)
			assert.ErrorIs(t, err, tt.wantErr)
			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.wantCode, authErr.Code)
		})
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(t, "s3cret")
	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	token, err := svc.Login("s3cret")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	claims := &domain.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   domain.OwnerSubject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = newTestService(t, "s3cret").ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := newTestService(t, "s3cret").ValidateToken("not-a-jwt")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsWhenNotConfigured(t *testing.T) {
	claims := &domain.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   domain.OwnerSubject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newTestService(t, "").ValidateToken(token)

	assert.ErrorIs(t, err, ErrNotConfigured)
}
