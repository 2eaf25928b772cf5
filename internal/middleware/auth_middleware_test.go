// internal/middleware/auth_middleware_test.go
package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/syukri21/chat/internal/pkg/apperr"
	"github.com/syukri21/chat/internal/pkg/jwt"
)

type fakeAuthorizer struct {
	validToken string
	claims     *jwt.AccessClaims
	err        error
}

func (f *fakeAuthorizer) AuthorizeCurrentUser(_ context.Context, token string) (*jwt.AccessClaims, error) {
	if f.err != nil {
		return nil, f.err
	}
	if token != f.validToken {
		return nil, apperr.Unauthorized()
	}
	return f.claims, nil
}

func newGateRouter(authorizer Authorizer, debugMode bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	gate := NewAuthGate(authorizer, debugMode, zap.NewNop())
	r.Use(gate.Handler())
	r.NoRoute(func(c *gin.Context) {
		userID, _ := GetUserID(c)
		if claims, ok := GetClaims(c); ok {
			c.String(http.StatusOK, "ok:"+userID+":"+string(claims.Role))
			return
		}
		c.String(http.StatusOK, "ok:"+userID)
	})
	return r
}

func perform(r *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGatePublicPages(t *testing.T) {
	r := newGateRouter(&fakeAuthorizer{}, false)

	for _, path := range []string{
		"/health",
		"/login",
		"/signup",
		"/htmx/login",
		"/htmx/register",
		"/callback/activate/whatever-token-value",
	} {
		w := perform(r, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestGateExactMatchDoesNotCoverSubpaths(t *testing.T) {
	r := newGateRouter(&fakeAuthorizer{}, false)

	// "/login" is an exact entry, not a prefix.
	w := perform(r, "/login/extra", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGateRejectsWithoutCookie(t *testing.T) {
	r := newGateRouter(&fakeAuthorizer{}, false)

	w := perform(r, "/chat", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestGateRejectsDeadSession(t *testing.T) {
	r := newGateRouter(&fakeAuthorizer{validToken: "live"}, false)

	w := perform(r, "/chat", "revoked")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestGatePassesClaimsToHandlers(t *testing.T) {
	claims := jwt.NewAccessClaims("user-123", jwt.RoleUser)
	r := newGateRouter(&fakeAuthorizer{validToken: "live", claims: claims}, false)

	w := perform(r, "/chat", "live")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok:user-123:user", w.Body.String())
}

func TestGateDebugPages(t *testing.T) {
	r := newGateRouter(&fakeAuthorizer{}, false)
	w := perform(r, "/debug/active-link", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r = newGateRouter(&fakeAuthorizer{}, true)
	w = perform(r, "/debug/active-link", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
