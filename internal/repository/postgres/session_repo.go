// internal/repository/postgres/session_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/syukri21/chat/internal/domain/auth"
)

// SessionRepository stores the session rows that keep issued tokens alive.
// A row's absence is what revokes a token, so deletes must be durable before
// they are reported successful.
type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession inserts the revocation record for a freshly issued token.
func (r *SessionRepository) CreateSession(ctx context.Context, session *auth.Session) error {
	query := `
		INSERT INTO sessions (id, session_id, user_id, user_agent, ip_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		session.ID, session.SessionID, session.UserID,
		session.UserAgent, session.IPAddress, session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// CheckSession reports whether a session row exists for the given jti.
func (r *SessionRepository) CheckSession(ctx context.Context, sessionID string) (bool, error) {
	query := `SELECT 1 FROM sessions WHERE session_id = $1 LIMIT 1`

	var one int
	err := r.db.QueryRow(ctx, query, sessionID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return true, nil
}

// GetSession returns the session row for a jti, or nil when none exists.
func (r *SessionRepository) GetSession(ctx context.Context, sessionID string) (*auth.Session, error) {
	query := `
		SELECT id, session_id, user_id, user_agent, ip_address, created_at, updated_at
		FROM sessions
		WHERE session_id = $1
	`
	var session auth.Session
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&session.ID, &session.SessionID, &session.UserID,
		&session.UserAgent, &session.IPAddress, &session.CreatedAt, &session.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes the row for one jti, revoking that token.
func (r *SessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	query := `DELETE FROM sessions WHERE session_id = $1`
	if _, err := r.db.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteSessionsByUser removes every session a user holds ("log out
// everywhere").
func (r *SessionRepository) DeleteSessionsByUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM sessions WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete sessions by user: %w", err)
	}
	return nil
}
