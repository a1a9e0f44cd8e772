package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rachef/sitecms/internal/infrastructure/config"
)

// ErrTokensDisabled is returned when no signing secret is configured.
var ErrTokensDisabled = errors.New("token signing is disabled: no JWT secret configured")

// TokenService issues the bearer tokens the dashboard API verifies.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service from the auth configuration.
func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

// Issue signs an HS256 token for subject. A zero ttl uses the configured one.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, ErrTokensDisabled
	}
	if subject == "" {
		return "", time.Time{}, errors.New("token subject is required")
	}
	if ttl <= 0 {
		ttl = s.ttl
	}
	if ttl <= 0 {
		return "", time.Time{}, errors.New("token lifetime must be positive")
	}

	now := s.now()
	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    s.issuer,
		Subject:   subject,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}
