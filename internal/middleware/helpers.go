// internal/middleware/helpers.go
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/syukri21/chat/internal/pkg/jwt"
)

// GetUserID gets the authenticated user id from context.
func GetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// GetJTI gets the session id behind the current token from context.
func GetJTI(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxJTI)
	if !exists {
		return "", false
	}
	jti, ok := v.(string)
	return jti, ok
}

// GetClaims gets the full token claims from context, role included.
func GetClaims(c *gin.Context) (*jwt.AccessClaims, bool) {
	v, exists := c.Get(ctxClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.AccessClaims)
	return claims, ok
}
