// internal/service/auth/service.go
package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/syukri21/chat/internal/domain/auth"
)

// UserStore is the persistence surface the auth services need for accounts.
// *postgres.UserRepository satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, user *auth.User) error
	FindActiveByLogin(ctx context.Context, usernameOrEmail string) (*auth.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*auth.User, error)
	ActivateUser(ctx context.Context, id uuid.UUID) error
}

// CredentialStore is the persistence surface for per-user key material.
// *postgres.CredentialRepository satisfies it.
type CredentialStore interface {
	CreateCredential(ctx context.Context, credential *auth.Credential) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*auth.Credential, error)
}

// SessionTracker records live sessions and answers revocation checks.
// *session.Manager satisfies it.
type SessionTracker interface {
	CreateSession(ctx context.Context, sess *auth.Session) error
	CheckSession(ctx context.Context, sessionID string) (bool, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteSessionsByUser(ctx context.Context, userID uuid.UUID) error
}
