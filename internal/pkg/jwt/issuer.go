// Package jwt issues and verifies the signed access tokens that back login
// sessions: HS256 over a server secret, 24h expiry, UUID jti.
package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/syukri21/chat/internal/pkg/apperr"
)

// Issuer signs and verifies access tokens with a shared server secret.
// Stateless and safe for concurrent use.
type Issuer struct {
	secret []byte
}

// NewIssuer builds an Issuer. An empty secret is rejected at startup.
func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}
	return &Issuer{secret: []byte(secret)}, nil
}

// CreateToken mints a token for userID with a 24h expiry and fresh jti. The
// returned claims carry the jti the caller persists as the session key.
func (i *Issuer) CreateToken(userID string, role Role) (string, *AccessClaims, error) {
	claims := NewAccessClaims(userID, role)
	token, err := i.GenerateToken(claims)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// GenerateToken signs the given claims. Deterministic for identical claims
// and secret.
func (i *Issuer) GenerateToken(claims *AccessClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature and expiry. An expired but correctly signed
// token yields a TokenExpired error; every other failure is InvalidToken.
// Audience is intentionally not validated: this is a single-audience system.
func (i *Issuer) VerifyToken(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.TokenExpired()
		}
		return nil, apperr.InvalidToken(err)
	}
	if !token.Valid {
		return nil, apperr.InvalidToken(nil)
	}
	return claims, nil
}
