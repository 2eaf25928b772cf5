// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/syukri21/chat/internal/domain/auth"
	"github.com/syukri21/chat/internal/middleware"
	"github.com/syukri21/chat/internal/pkg/jwt"
	"github.com/syukri21/chat/internal/pkg/response"
	authUsecase "github.com/syukri21/chat/internal/service/auth"
)

type AuthHandler struct {
	loginService      *authUsecase.LoginService
	registerService   *authUsecase.RegisterService
	activationService *authUsecase.ActivationService
	logger            *zap.Logger
}

func NewAuthHandler(
	loginService *authUsecase.LoginService,
	registerService *authUsecase.RegisterService,
	activationService *authUsecase.ActivationService,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		loginService:      loginService,
		registerService:   registerService,
		activationService: activationService,
		logger:            logger,
	}
}

// Login authenticates a user and sets the session cookie. The key pair
// comes back in the body for the client to unlock locally.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}

	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	loginResp, err := h.loginService.Login(c.Request.Context(), req)
	if err != nil {
		h.logger.Info("login rejected",
			zap.String("username", req.Username),
			zap.String("ip", req.IPAddress),
			zap.Error(err),
		)
		response.FromError(c, err)
		return
	}

	setTokenCookie(c, loginResp.Token, int(jwt.DefaultTTL.Seconds()))
	response.Success(c, http.StatusOK, "login successful", loginResp)
}

// Register creates an inactive account and mails its activation link.
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.registerService.Register(c.Request.Context(), req); err != nil {
		h.logger.Info("registration rejected",
			zap.String("username", req.Username),
			zap.Error(err),
		)
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "registration successful, check your email to activate your account", nil)
}

// ActivateCallback redeems an activation link and sends the browser to the
// login page.
func (h *AuthHandler) ActivateCallback(c *gin.Context) {
	token := c.Param("token")

	if err := h.activationService.ActivateUser(c.Request.Context(), token); err != nil {
		h.logger.Info("activation rejected", zap.Error(err))
		response.FromError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// Logout revokes the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, ok := middleware.GetJTI(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.loginService.Logout(c.Request.Context(), jti); err != nil {
		response.FromError(c, err)
		return
	}

	setTokenCookie(c, "", -1)
	response.Success(c, http.StatusOK, "logout successful", nil)
}

// LogoutAll revokes every session of the current user and clears the cookie.
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userIDStr, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.loginService.LogoutAll(c.Request.Context(), userID); err != nil {
		response.FromError(c, err)
		return
	}

	setTokenCookie(c, "", -1)
	response.Success(c, http.StatusOK, "all sessions logged out", nil)
}

// DebugActiveLink exposes a user's activation link without email delivery.
// Only routed when debug mode is on.
func (h *AuthHandler) DebugActiveLink(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "user_id must be a UUID")
		return
	}

	link, err := h.activationService.ActivationLink(userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "activation link", gin.H{"link": link})
}

func setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", false, true)
}
