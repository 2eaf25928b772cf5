package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/syukri21/chat/internal/domain/auth"
)

func newCachedManager(t *testing.T, store Store) (*Manager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewManager(client, store, 24*time.Hour, zap.NewNop()), mr
}

func TestCreateSessionWritesCache(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	m, mr := newCachedManager(t, store)
	ctx := context.Background()

	jti := uuid.New()
	userID := uuid.New()
	require.NoError(t, m.CreateSession(ctx, auth.NewSession(jti, userID, "ua", "ip")))

	assert.True(t, mr.Exists(sessionKey(jti.String())))
	members, err := mr.Members(userSessionsKey(userID))
	require.NoError(t, err)
	assert.Contains(t, members, jti.String())
}

func TestCheckSessionCacheHitShortCircuits(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	m, _ := newCachedManager(t, store)
	ctx := context.Background()

	jti := uuid.New()
	require.NoError(t, m.CreateSession(ctx, auth.NewSession(jti, uuid.New(), "ua", "ip")))

	// With the entry cached, a broken database must not be consulted.
	store.failWith = errors.New("database down")

	ok, err := m.CheckSession(ctx, jti.String())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckSessionMissDoesNotRepopulate(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	m, mr := newCachedManager(t, store)
	ctx := context.Background()

	// Row exists only in the database, as after a cache eviction.
	jti := uuid.New()
	store.sessions[jti.String()] = auth.NewSession(jti, uuid.New(), "ua", "ip")

	ok, err := m.CheckSession(ctx, jti.String())
	require.NoError(t, err)
	assert.True(t, ok)

	// The miss fell through to the database without restoring the entry; a
	// purged key stays purged.
	assert.False(t, mr.Exists(sessionKey(jti.String())))
}

func TestCheckSessionFallsBackWhenRedisDown(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	m, mr := newCachedManager(t, store)
	ctx := context.Background()

	jti := uuid.New()
	store.sessions[jti.String()] = auth.NewSession(jti, uuid.New(), "ua", "ip")

	mr.Close()

	ok, err := m.CheckSession(ctx, jti.String())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteSessionPurgesCacheFirst(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	m, mr := newCachedManager(t, store)
	ctx := context.Background()

	jti := uuid.New()
	require.NoError(t, m.CreateSession(ctx, auth.NewSession(jti, uuid.New(), "ua", "ip")))
	require.True(t, mr.Exists(sessionKey(jti.String())))

	require.NoError(t, m.DeleteSession(ctx, jti.String()))

	assert.False(t, mr.Exists(sessionKey(jti.String())))
	ok, err := m.CheckSession(ctx, jti.String())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteSessionAbortsWhenPurgeFails(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	m, mr := newCachedManager(t, store)
	ctx := context.Background()

	jti := uuid.New()
	require.NoError(t, m.CreateSession(ctx, auth.NewSession(jti, uuid.New(), "ua", "ip")))

	mr.Close()

	// The purge fails, so the delete surfaces the error and leaves the row:
	// the row may only disappear once the cache entry is gone.
	err := m.DeleteSession(ctx, jti.String())
	require.Error(t, err)
	assert.Contains(t, store.sessions, jti.String())
}

func TestDeleteSessionsByUserClearsCache(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	m, mr := newCachedManager(t, store)
	ctx := context.Background()

	userID := uuid.New()
	otherID := uuid.New()
	mine1 := auth.NewSession(uuid.New(), userID, "ua", "ip")
	mine2 := auth.NewSession(uuid.New(), userID, "ua", "ip")
	theirs := auth.NewSession(uuid.New(), otherID, "ua", "ip")

	for _, s := range []*auth.Session{mine1, mine2, theirs} {
		require.NoError(t, m.CreateSession(ctx, s))
	}

	require.NoError(t, m.DeleteSessionsByUser(ctx, userID))

	assert.False(t, mr.Exists(sessionKey(mine1.SessionID.String())))
	assert.False(t, mr.Exists(sessionKey(mine2.SessionID.String())))
	assert.False(t, mr.Exists(userSessionsKey(userID)))

	// The other user's cache entries and rows survive.
	assert.True(t, mr.Exists(sessionKey(theirs.SessionID.String())))
	ok, err := m.CheckSession(ctx, theirs.SessionID.String())
	require.NoError(t, err)
	assert.True(t, ok)
}
