// internal/repository/postgres/user_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/syukri21/chat/internal/domain/auth"
	"github.com/syukri21/chat/internal/pkg/apperr"
)

const pgUniqueViolation = "23505"

// UserRepository stores chat accounts.
type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new account. A username or email collision surfaces
// as InvalidInput without saying which field collided.
func (r *UserRepository) CreateUser(ctx context.Context, user *auth.User) error {
	query := `
		INSERT INTO users (id, username, email, password, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.Password,
		user.Role, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperr.InvalidInput("username or email is already taken")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindActiveByLogin looks up an active, non-deleted account by username or
// email. Inactive accounts are invisible to this query on purpose.
func (r *UserRepository) FindActiveByLogin(ctx context.Context, usernameOrEmail string) (*auth.User, error) {
	query := `
		SELECT id, username, email, password, role, is_active, created_at, updated_at, deleted_at
		FROM users
		WHERE is_active = TRUE AND deleted_at IS NULL AND (username = $1 OR email = $1)
	`
	return r.scanUser(r.db.QueryRow(ctx, query, usernameOrEmail))
}

// FindByID looks up an account by id regardless of its active flag.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	query := `
		SELECT id, username, email, password, role, is_active, created_at, updated_at, deleted_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

// ActivateUser flips the account active. Activating an already-active user
// is a no-op success; an unknown id is NotFound.
func (r *UserRepository) ActivateUser(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET is_active = TRUE, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*auth.User, error) {
	var user auth.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt, &user.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}
