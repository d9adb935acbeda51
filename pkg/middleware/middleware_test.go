package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
)

type stubValidator struct {
	claims *domain.Claims
	err    error
}

func (s stubValidator) ValidateToken(string) (*domain.Claims, error) {
	return s.claims, s.err
}

func ownerClaims() *domain.Claims {
	return &domain.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: domain.OwnerSubject}}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		header     string
		validator  stubValidator
		wantStatus int
	}{
		{"rota pública", "/healthcheck", "", stubValidator{}, http.StatusNoContent},
		{"login é público", "/v1/login", "", stubValidator{}, http.StatusNoContent},
		{"sem header", "/v1/sales", "", stubValidator{}, http.StatusUnauthorized},
		{"sem Bearer", "/v1/sales", "Token abc", stubValidator{}, http.StatusUnauthorized},
		{"token inválido", "/v1/sales", "Bearer abc", stubValidator{err: errors.New("expired")}, http.StatusUnauthorized},
		{"token válido", "/v1/sales", "Bearer abc", stubValidator{claims: ownerClaims()}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.validator)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestOwnerOnly(t *testing.T) {
	chain := func(v stubValidator) http.Handler {
		return AuthMiddleware(v)(OwnerOnly()(okHandler()))
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/sales", nil)
	req.Header.Set("Authorization", "Bearer abc")

	rec := httptest.NewRecorder()
	chain(stubValidator{claims: ownerClaims()}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	stranger := &domain.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "someone"}}
	rec = httptest.NewRecorder()
	chain(stubValidator{claims: stranger}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	OwnerOnly()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sales", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"https://app.example"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/sales", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/sales", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLimitBody(t *testing.T) {
	handler := LimitBody(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		_, err := r.Body.Read(buf)
		for err == nil {
			_, err = r.Body.Read(buf)
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789abcdef")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoggingAndPanicMiddleware(t *testing.T) {
	handler := LoggingMiddleware()(LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sales", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(CorrelationIDHeader))
	assert.Contains(t, rec.Body.String(), `"code":"SRV_001"`)
}
