package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fintrack/household-budget/internal/auth/domain"
)

// minKeyBytes is the minimum HMAC key size for HS256 (256 bits).
const minKeyBytes = 32

var (
	// ErrBadTokenConfig signals missing or unusable JWT settings.
	ErrBadTokenConfig = errors.New("invalid token configuration")
	// ErrInvalidToken signals a token that failed verification.
	ErrInvalidToken = errors.New("invalid token")
)

// TokenConfig holds the JWT signing settings.
type TokenConfig struct {
	Key           string
	Issuer        string
	Audience      string
	ExpiryMinutes int
}

func (c TokenConfig) validate() error {
	if len(c.Key) < minKeyBytes {
		return fmt.Errorf("%w: signing key must be at least %d bytes", ErrBadTokenConfig, minKeyBytes)
	}
	if c.Issuer == "" || c.Audience == "" {
		return fmt.Errorf("%w: issuer and audience are required", ErrBadTokenConfig)
	}
	if c.ExpiryMinutes <= 0 {
		return fmt.Errorf("%w: expiry must be positive", ErrBadTokenConfig)
	}
	return nil
}

// Claims is the JWT payload carried by access tokens.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed HS256 access token for the user.
func GenerateToken(user *domain.User, cfg TokenConfig) (string, error) {
	if err := cfg.validate(); err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.ExpiryMinutes) * time.Minute)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Key))
}

// ParseToken verifies signature, expiry, issuer and audience, and returns
// the token's claims.
func ParseToken(tokenString string, cfg TokenConfig) (*Claims, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.Key), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
