// Package session tracks the server-side records that keep issued tokens
// valid. Postgres is the single revocation authority; redis only caches
// existence checks on the hot path. Cache entries are written at login and
// purged before the backing row is deleted, so the cache can never report a
// revoked session as live.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/syukri21/chat/internal/domain/auth"
)

// Store is the relational session store the manager fronts.
type Store interface {
	CreateSession(ctx context.Context, session *auth.Session) error
	CheckSession(ctx context.Context, sessionID string) (bool, error)
	GetSession(ctx context.Context, sessionID string) (*auth.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteSessionsByUser(ctx context.Context, userID uuid.UUID) error
}

// Manager implements the session operations with an optional redis fast
// path. A nil client disables caching; behavior is identical either way.
type Manager struct {
	client *redis.Client
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

func NewManager(client *redis.Client, store Store, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		client: client,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

func sessionKey(sessionID string) string      { return "session:" + sessionID }
func userSessionsKey(userID uuid.UUID) string { return "user_sessions:" + userID.String() }

// CreateSession persists the row, then caches its existence best-effort.
func (m *Manager) CreateSession(ctx context.Context, session *auth.Session) error {
	if err := m.store.CreateSession(ctx, session); err != nil {
		return err
	}

	if m.client != nil {
		jti := session.SessionID.String()
		pipe := m.client.TxPipeline()
		pipe.Set(ctx, sessionKey(jti), session.UserID.String(), m.ttl)
		pipe.SAdd(ctx, userSessionsKey(session.UserID), jti)
		pipe.Expire(ctx, userSessionsKey(session.UserID), m.ttl)
		if _, err := pipe.Exec(ctx); err != nil {
			// Cache misses fall through to Postgres, so this is not fatal.
			m.logger.Warn("failed to cache session", zap.String("jti", jti), zap.Error(err))
		}
	}
	return nil
}

// CheckSession reports whether the token with this jti is still backed by a
// session. Cache hits short-circuit; misses consult Postgres. The cache is
// never repopulated here, so a purged entry stays purged.
func (m *Manager) CheckSession(ctx context.Context, sessionID string) (bool, error) {
	if m.client != nil {
		n, err := m.client.Exists(ctx, sessionKey(sessionID)).Result()
		if err != nil {
			m.logger.Warn("redis check failed, falling back to database", zap.Error(err))
		} else if n > 0 {
			return true, nil
		}
	}
	return m.store.CheckSession(ctx, sessionID)
}

// GetSession returns the full row; always served from Postgres.
func (m *Manager) GetSession(ctx context.Context, sessionID string) (*auth.Session, error) {
	return m.store.GetSession(ctx, sessionID)
}

// DeleteSession revokes one token. The cache entry is purged first; if the
// purge fails the row is left in place and the error surfaces, so a revoked
// session can never linger in the cache.
func (m *Manager) DeleteSession(ctx context.Context, sessionID string) error {
	if m.client != nil {
		if err := m.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
			return fmt.Errorf("failed to purge session cache: %w", err)
		}
	}
	return m.store.DeleteSession(ctx, sessionID)
}

// DeleteSessionsByUser revokes every session a user holds.
func (m *Manager) DeleteSessionsByUser(ctx context.Context, userID uuid.UUID) error {
	if m.client != nil {
		jtis, err := m.client.SMembers(ctx, userSessionsKey(userID)).Result()
		if err != nil {
			return fmt.Errorf("failed to list cached sessions: %w", err)
		}
		keys := make([]string, 0, len(jtis)+1)
		for _, jti := range jtis {
			keys = append(keys, sessionKey(jti))
		}
		keys = append(keys, userSessionsKey(userID))
		if err := m.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to purge session cache: %w", err)
		}
	}
	return m.store.DeleteSessionsByUser(ctx, userID)
}
