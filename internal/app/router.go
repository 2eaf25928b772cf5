// internal/app/router.go
package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authHandler "github.com/syukri21/chat/internal/handlers/auth"
	"github.com/syukri21/chat/internal/middleware"
)

type Handlers struct {
	AuthHandler *authHandler.AuthHandler
	AuthGate    *middleware.AuthGate
}

// SetupRouter mounts the auth surface. The gate runs globally; only its
// public page list stays reachable without a session.
func SetupRouter(r *gin.Engine, h *Handlers, debugMode bool) {
	r.Use(h.AuthGate.Handler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/login", func(c *gin.Context) {
		c.String(http.StatusOK, "login page")
	})
	r.GET("/signup", func(c *gin.Context) {
		c.String(http.StatusOK, "signup page")
	})

	htmx := r.Group("/htmx")
	{
		htmx.POST("/login", h.AuthHandler.Login)
		htmx.POST("/register", h.AuthHandler.Register)
	}

	r.GET("/callback/activate/:token", h.AuthHandler.ActivateCallback)

	r.POST("/logout", h.AuthHandler.Logout)
	r.POST("/logout-all", h.AuthHandler.LogoutAll)

	if debugMode {
		r.GET("/debug/active-link", h.AuthHandler.DebugActiveLink)
	}
}
