package authenticating

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/resale-ledger-api/internal/config"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

type Authenticator interface {
	Login(password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// Service autentica o único dono da conta contra o hash bcrypt da configuração
type Service struct {
	passwordHash []byte
	secretKey    []byte
	tokenTTL     time.Duration
	now          func() time.Time
}

func NewService(cfg *config.Config) Authenticator {
	ttl := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &Service{
		passwordHash: []byte(cfg.Auth.OwnerPasswordHash),
		secretKey:    []byte(cfg.SecretKey),
		tokenTTL:     ttl,
		now:          time.Now,
	}
}

func (s *Service) Login(password string) (string, error) {
	if len(s.passwordHash) == 0 {
		return "", NewAuthError(ErrNotConfigured, apiErrors.ErrAuthNotConfigured, "Defina OWNER_PASSWORD_HASH")
	}

	if password == "" {
		return "", NewAuthError(ErrMissingPassword, apiErrors.ErrMissingRequiredData, "Senha é obrigatória")
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Senha incorreta")
	}

	token, err := s.generateJWT()
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

// ValidateToken recusa qualquer token enquanto o dono não tiver senha nem chave configuradas
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if len(s.passwordHash) == 0 || len(s.secretKey) == 0 {
		return nil, NewAuthError(ErrNotConfigured, apiErrors.ErrAuthNotConfigured, "Autenticação não configurada")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithSubject(domain.OwnerSubject))
	if err != nil {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}

func (s *Service) generateJWT() (string, error) {
	now := s.now()
	claims := &domain.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   domain.OwnerSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}
