// internal/service/auth/login.go
package auth

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/syukri21/chat/internal/domain/auth"
	"github.com/syukri21/chat/internal/pkg/apperr"
	"github.com/syukri21/chat/internal/pkg/jwt"
	"github.com/syukri21/chat/internal/pkg/password"
)

// LoginService authenticates users, mints access tokens and tracks the
// sessions behind them. Account lookup failures, inactive accounts and
// wrong passwords all collapse to the same LoginFailed error so a caller
// cannot probe which usernames exist.
type LoginService struct {
	users       UserStore
	credentials CredentialStore
	sessions    SessionTracker
	issuer      *jwt.Issuer
	logger      *zap.Logger
}

func NewLoginService(users UserStore, credentials CredentialStore, sessions SessionTracker, issuer *jwt.Issuer, logger *zap.Logger) *LoginService {
	return &LoginService{
		users:       users,
		credentials: credentials,
		sessions:    sessions,
		issuer:      issuer,
		logger:      logger,
	}
}

// Login verifies the password for an active account, records a session
// keyed by the new token's jti and returns the signed token together with
// the stored chat key pair.
func (s *LoginService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	if err := validateLogin(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindActiveByLogin(ctx, req.Username)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.LoginFailed()
		}
		s.logger.Error("login user lookup failed", zap.Error(err))
		return nil, apperr.Unknown(err)
	}

	ok, err := password.Verify(req.Password, user.Password)
	if err != nil {
		s.logger.Error("password verification failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, apperr.Unknown(err)
	}
	if !ok {
		return nil, apperr.LoginFailed()
	}

	credential, err := s.credentials.FindByUserID(ctx, user.ID)
	if err != nil {
		// A logged-in user without a key pair is a data integrity problem,
		// not a bad login attempt.
		s.logger.Error("credential lookup failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, apperr.Unknown(err)
	}

	token, claims, err := s.issuer.CreateToken(user.ID.String(), jwt.ParseRole(user.Role))
	if err != nil {
		return nil, apperr.Unknown(err)
	}
	sessionID, err := uuid.Parse(claims.JTI())
	if err != nil {
		return nil, apperr.Unknown(err)
	}

	// The token is only handed out below; a failed session insert discards it.
	sess := auth.NewSession(sessionID, user.ID, req.UserAgent, req.IPAddress)
	if err := s.sessions.CreateSession(ctx, sess); err != nil {
		s.logger.Error("session creation failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, apperr.Unknown(err)
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("session_id", claims.JTI()),
	)

	return &auth.LoginResponse{
		Token:      token,
		PrivateKey: credential.PrivateKey,
		PublicKey:  credential.PublicKey,
	}, nil
}

// AuthorizeCurrentUser validates a raw token string and confirms its
// session is still live. The returned claims identify the caller.
func (s *LoginService) AuthorizeCurrentUser(ctx context.Context, token string) (*jwt.AccessClaims, error) {
	claims, err := s.issuer.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	live, err := s.sessions.CheckSession(ctx, claims.JTI())
	if err != nil {
		s.logger.Error("session check failed",
			zap.String("session_id", claims.JTI()),
			zap.Error(err),
		)
		return nil, apperr.Unknown(err)
	}
	if !live {
		return nil, apperr.Unauthorized()
	}

	return claims, nil
}

// Logout revokes the single session behind the given jti. Subsequent
// authorization with the same token fails even though the token itself
// is still validly signed.
func (s *LoginService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		s.logger.Error("logout failed", zap.String("session_id", sessionID), zap.Error(err))
		return apperr.Unknown(err)
	}
	s.logger.Info("user logged out", zap.String("session_id", sessionID))
	return nil
}

// LogoutAll revokes every session the user has, on every device.
func (s *LoginService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.sessions.DeleteSessionsByUser(ctx, userID); err != nil {
		s.logger.Error("logout all failed", zap.String("user_id", userID.String()), zap.Error(err))
		return apperr.Unknown(err)
	}
	s.logger.Info("all user sessions revoked", zap.String("user_id", userID.String()))
	return nil
}

func validateLogin(req auth.LoginRequest) error {
	if req.Username == "" {
		return apperr.InvalidInput("username is required")
	}
	if len(req.Username) < 3 {
		return apperr.InvalidInput("username must be at least 3 characters")
	}
	if req.Password == "" {
		return apperr.InvalidInput("password is required")
	}
	return nil
}
