// internal/repository/postgres/credential_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/syukri21/chat/internal/domain/auth"
	"github.com/syukri21/chat/internal/pkg/apperr"
)

// CredentialRepository stores the per-user chat keypairs.
type CredentialRepository struct {
	db *pgxpool.Pool
}

func NewCredentialRepository(db *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// CreateCredential inserts the keypair issued at registration.
func (r *CredentialRepository) CreateCredential(ctx context.Context, credential *auth.Credential) error {
	query := `
		INSERT INTO credentials (id, user_id, private_key, public_key, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		credential.ID, credential.UserID, credential.PrivateKey,
		credential.PublicKey, credential.Type, credential.CreatedAt, credential.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create credential: %w", err)
	}
	return nil
}

// FindByUserID returns the keypair stored for a user.
func (r *CredentialRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*auth.Credential, error) {
	query := `
		SELECT id, user_id, private_key, public_key, type, created_at, updated_at
		FROM credentials
		WHERE user_id = $1
	`
	var credential auth.Credential
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&credential.ID, &credential.UserID, &credential.PrivateKey,
		&credential.PublicKey, &credential.Type, &credential.CreatedAt, &credential.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("credential not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find credential: %w", err)
	}
	return &credential, nil
}
