// internal/middleware/auth_middleware.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/syukri21/chat/internal/pkg/jwt"
)

// TokenCookie is the cookie carrying the signed access token.
const TokenCookie = "token"

// Context keys set by the gate for downstream handlers.
const (
	ctxUserID = "user_id"
	ctxJTI    = "jti"
	ctxClaims = "claims"
)

// Authorizer validates a raw token and confirms its session is still live.
// *auth.LoginService satisfies it.
type Authorizer interface {
	AuthorizeCurrentUser(ctx context.Context, token string) (*jwt.AccessClaims, error)
}

// AuthGate guards every route except an allow-list of public pages.
// A path entry ending in "*" matches by prefix, everything else exactly.
type AuthGate struct {
	authorizer  Authorizer
	publicPages []string
	debugPages  []string
	debugMode   bool
	logger      *zap.Logger
}

func NewAuthGate(authorizer Authorizer, debugMode bool, logger *zap.Logger) *AuthGate {
	return &AuthGate{
		authorizer: authorizer,
		publicPages: []string{
			"/health",
			"/login",
			"/signup",
			"/callback/activate/*",
			"/htmx/login",
			"/htmx/register",
		},
		debugPages: []string{
			"/debug/active-link",
		},
		debugMode: debugMode,
		logger:    logger,
	}
}

// Handler is the gin middleware. Requests to public pages pass through
// untouched; everything else needs a token cookie backed by a live session.
// Rejections are bare 401s with an empty body.
func (g *AuthGate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if g.isPublic(path) {
			c.Next()
			return
		}

		token, err := c.Cookie(TokenCookie)
		if err != nil || token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := g.authorizer.AuthorizeCurrentUser(c.Request.Context(), token)
		if err != nil {
			g.logger.Debug("request rejected",
				zap.String("path", path),
				zap.Error(err),
			)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxJTI, claims.JTI())
		c.Set(ctxClaims, claims)

		c.Next()
	}
}

func (g *AuthGate) isPublic(path string) bool {
	if matchAny(g.publicPages, path) {
		return true
	}
	return g.debugMode && matchAny(g.debugPages, path)
}

func matchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(path, prefix) {
				return true
			}
			continue
		}
		if p == path {
			return true
		}
	}
	return false
}
