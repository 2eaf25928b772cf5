package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syukri21/chat/internal/pkg/apperr"
)

const testSecret = "test-signing-secret"

func TestNewIssuerRejectsEmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer("")
	assert.Error(t, err)
}

func TestCreateAndVerifyToken(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer(testSecret)
	require.NoError(t, err)

	userID := uuid.NewString()
	token, claims, err := issuer.CreateToken(userID, RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, claims.JTI())

	got, err := issuer.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, RoleUser, got.Role)
	assert.Equal(t, claims.JTI(), got.JTI())
	assert.Equal(t, "HS256", got.Alg)
	assert.Empty(t, got.Permissions)
}

func TestCreateTokenUsesFreshJTI(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer(testSecret)
	require.NoError(t, err)

	userID := uuid.NewString()
	_, c1, err := issuer.CreateToken(userID, RoleUser)
	require.NoError(t, err)
	_, c2, err := issuer.CreateToken(userID, RoleUser)
	require.NoError(t, err)

	assert.NotEqual(t, c1.JTI(), c2.JTI())
	_, err = uuid.Parse(c1.JTI())
	assert.NoError(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer(testSecret)
	require.NoError(t, err)

	claims := newAccessClaimsWithExpiry(uuid.NewString(), RoleUser, time.Now().Add(-time.Hour))
	token, err := issuer.GenerateToken(claims)
	require.NoError(t, err)

	_, err = issuer.VerifyToken(token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindTokenExpired, apperr.KindOf(err))
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer(testSecret)
	require.NoError(t, err)
	other, err := NewIssuer("some-other-secret")
	require.NoError(t, err)

	token, _, err := issuer.CreateToken(uuid.NewString(), RoleUser)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidToken, apperr.KindOf(err))
}

func TestVerifyTokenTamperedPayload(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer(testSecret)
	require.NoError(t, err)

	token, _, err := issuer.CreateToken(uuid.NewString(), RoleUser)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Alter one character of the payload without re-signing.
	payload := []byte(parts[1])
	if payload[10] == 'A' {
		payload[10] = 'B'
	} else {
		payload[10] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = issuer.VerifyToken(tampered)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidToken, apperr.KindOf(err))
}

func TestVerifyTokenMalformed(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer(testSecret)
	require.NoError(t, err)

	for _, in := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := issuer.VerifyToken(in)
		require.Error(t, err, "input %q accepted", in)
		assert.Equal(t, apperr.KindInvalidToken, apperr.KindOf(err))
	}
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleUser, ParseRole("user"))
	// Unrecognized strings never grant elevated privileges.
	assert.Equal(t, RoleUser, ParseRole("superuser"))
	assert.Equal(t, RoleUser, ParseRole(""))
}
