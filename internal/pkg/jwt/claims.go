package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// DefaultTTL is the lifetime of a freshly issued access token.
	DefaultTTL = 24 * time.Hour

	defaultAlg = "HS256"
)

// Role is the coarse privilege level embedded in a token.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole maps a stored role string onto a Role. Anything unrecognized
// collapses to the ordinary user role.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// AccessClaims is the signed token payload. Immutable once signed; the
// registered ID field carries the jti that joins a token to its session row.
type AccessClaims struct {
	UserID      string   `json:"user_id"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
	Alg         string   `json:"alg"`
	jwt.RegisteredClaims
}

// JTI returns the unique token id.
func (c *AccessClaims) JTI() string { return c.ID }

// NewAccessClaims builds claims for userID with expiry now+24h and a fresh
// UUID jti. Permissions are reserved and currently always empty.
func NewAccessClaims(userID string, role Role) *AccessClaims {
	return newAccessClaimsWithExpiry(userID, role, time.Now().Add(DefaultTTL))
}

func newAccessClaimsWithExpiry(userID string, role Role, expiresAt time.Time) *AccessClaims {
	return &AccessClaims{
		UserID:      userID,
		Role:        role,
		Permissions: []string{},
		Alg:         defaultAlg,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}
}
