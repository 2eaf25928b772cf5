package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a chat account. Accounts start inactive and become login-eligible
// only after the activation link is visited.
type User struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	Password  string     `json:"-" db:"password"` // bcrypt hash
	Role      string     `json:"role" db:"role"`
	IsActive  bool       `json:"is_active" db:"is_active"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

// NewUser builds an inactive user with a generated id. The password must
// already be hashed.
func NewUser(username, email, hashedPassword string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		Role:      "user",
		IsActive:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CredentialTypeChatKey tags the end-to-end chat keypair issued at signup.
const CredentialTypeChatKey = "CHAT_KEY"

// Credential is the per-user asymmetric keypair stored at registration and
// returned verbatim at login. Created once, never mutated.
type Credential struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	PrivateKey string    `json:"-" db:"private_key"`
	PublicKey  string    `json:"public_key" db:"public_key"`
	Type       string    `json:"type" db:"type"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// NewCredential builds a chat-key credential for a user.
func NewCredential(userID uuid.UUID, privateKey, publicKey string) *Credential {
	now := time.Now()
	return &Credential{
		ID:         uuid.New(),
		UserID:     userID,
		PrivateKey: privateKey,
		PublicKey:  publicKey,
		Type:       CredentialTypeChatKey,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Session is the server-side revocation record for one issued token. Its
// SessionID equals the token's jti; the row's existence is the only proof
// the token is still valid.
type Session struct {
	ID        uuid.UUID `json:"id" db:"id"`
	SessionID uuid.UUID `json:"session_id" db:"session_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	UserAgent string    `json:"user_agent" db:"user_agent"`
	IPAddress string    `json:"ip_address" db:"ip_address"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewSession builds a session row keyed by the claims' jti.
func NewSession(sessionID, userID uuid.UUID, userAgent, ipAddress string) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		SessionID: sessionID,
		UserID:    userID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
