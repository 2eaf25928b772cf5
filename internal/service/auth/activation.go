// internal/service/auth/activation.go
package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/syukri21/chat/internal/domain/auth"
	"github.com/syukri21/chat/internal/pkg/apperr"
	"github.com/syukri21/chat/internal/pkg/crypto"
	"github.com/syukri21/chat/internal/service/email"
)

// ActivationService issues account activation links and redeems them.
// The link token is the user id encrypted with the application cipher, so
// the service keeps no activation state of its own.
type ActivationService struct {
	cipher          *crypto.Cipher
	users           UserStore
	mailer          email.Sender
	callbackBaseURL string
	logger          *zap.Logger
}

func NewActivationService(cipher *crypto.Cipher, users UserStore, mailer email.Sender, callbackBaseURL string, logger *zap.Logger) *ActivationService {
	return &ActivationService{
		cipher:          cipher,
		users:           users,
		mailer:          mailer,
		callbackBaseURL: callbackBaseURL,
		logger:          logger,
	}
}

// ActivationLink builds the activation URL for a user id. Each call
// produces a fresh token, but every token for the same user stays
// redeemable because decryption recovers the same id.
func (s *ActivationService) ActivationLink(userID uuid.UUID) (string, error) {
	token, err := s.cipher.Encrypt(userID.String())
	if err != nil {
		return "", fmt.Errorf("failed to encrypt activation token: %w", err)
	}
	return fmt.Sprintf("%s/callback/activate/%s", s.callbackBaseURL, token), nil
}

// SendActivationLink mails the activation link to a freshly registered user.
func (s *ActivationService) SendActivationLink(ctx context.Context, user *auth.User) error {
	link, err := s.ActivationLink(user.ID)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(`
		<p>Hi <b>%s</b>,</p>
		<p>Welcome to Chaty! Click the button below to activate your account.</p>
		<p><a class="button" href="%s">Activate account</a></p>
		<p>If the button does not work, copy this link into your browser:</p>
		<p>%s</p>
	`, user.Username, link, link)

	if err := s.mailer.Send(user.Email, "Registration successful", body); err != nil {
		s.logger.Error("failed to send activation email",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send activation email: %w", err)
	}

	s.logger.Info("activation email sent", zap.String("user_id", user.ID.String()))
	return nil
}

// ActivateUser redeems an activation token and marks the account active.
// A garbled token and a token that decrypts to a non-UUID both come back
// as InvalidInput. Redeeming a link twice succeeds; activation is an
// unconditional flag flip.
func (s *ActivationService) ActivateUser(ctx context.Context, token string) error {
	plaintext, err := s.cipher.Decrypt(token)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(plaintext)
	if err != nil {
		return apperr.InvalidInput("invalid activation token")
	}

	if err := s.users.ActivateUser(ctx, userID); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return err
		}
		return apperr.Unknown(err)
	}

	s.logger.Info("user activated", zap.String("user_id", userID.String()))
	return nil
}
