// internal/service/auth/register.go
package auth

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/syukri21/chat/internal/domain/auth"
	"github.com/syukri21/chat/internal/pkg/apperr"
	"github.com/syukri21/chat/internal/pkg/password"
)

// RegisterService creates inactive accounts with their chat key pair and
// kicks off email activation.
type RegisterService struct {
	users       UserStore
	credentials CredentialStore
	activation  *ActivationService
	logger      *zap.Logger
}

func NewRegisterService(users UserStore, credentials CredentialStore, activation *ActivationService, logger *zap.Logger) *RegisterService {
	return &RegisterService{
		users:       users,
		credentials: credentials,
		activation:  activation,
		logger:      logger,
	}
}

// Register stores a new inactive account, persists the client-generated
// key pair and mails the activation link. The account cannot log in until
// the link is redeemed.
func (s *RegisterService) Register(ctx context.Context, req auth.RegisterRequest) error {
	if err := validateRegister(req); err != nil {
		return err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return apperr.Unknown(err)
	}

	user := auth.NewUser(req.Username, req.Email, hashed)
	if err := s.users.CreateUser(ctx, user); err != nil {
		if apperr.KindOf(err) == apperr.KindInvalidInput {
			return err
		}
		s.logger.Error("user creation failed", zap.Error(err))
		return apperr.Unknown(err)
	}

	credential := auth.NewCredential(user.ID, req.PrivateKey, req.PublicKey)
	if err := s.credentials.CreateCredential(ctx, credential); err != nil {
		s.logger.Error("credential creation failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return apperr.Unknown(err)
	}

	if err := s.activation.SendActivationLink(ctx, user); err != nil {
		return apperr.Unknown(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return nil
}

func validateRegister(req auth.RegisterRequest) error {
	if len(req.Username) < 3 {
		return apperr.InvalidInput("username must be at least 3 characters")
	}
	if !strings.Contains(req.Email, "@") || !strings.Contains(req.Email, ".") {
		return apperr.InvalidInput("email is not valid")
	}
	if len(req.Password) < 8 {
		return apperr.InvalidInput("password must be at least 8 characters")
	}
	if !strings.ContainsFunc(req.Password, unicode.IsDigit) {
		return apperr.InvalidInput("password must contain at least one number")
	}
	if req.PrivateKey == "" || req.PublicKey == "" {
		return apperr.InvalidInput("key pair is required")
	}
	return nil
}
