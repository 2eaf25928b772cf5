// Package crypto implements the opaque-token codec used for account
// activation links: AES-256-GCM with a per-call random nonce, encoded as
// unpadded URL-safe base64 so tokens can ride inside a path segment.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/syukri21/chat/internal/pkg/apperr"
)

const (
	// KeySize is the exact key length AES-256-GCM requires.
	KeySize = 32

	nonceSize = 12
	// 12 raw bytes encode to exactly 16 unpadded base64 characters.
	nonceSegmentLen = 16
)

// Cipher is a stateless authenticated-encryption codec. A single instance is
// safe for unlimited concurrent callers.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a Cipher from a 32-byte key. The length is checked here so
// a misconfigured key fails at startup, not at the first encrypt call.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("cipher key must be exactly %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to init gcm: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh random nonce and returns
// base64url(nonce) || base64url(ciphertext). The nonce segment is always
// exactly 16 characters.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := c.aead.Seal(nil, nonce, []byte(plaintext), nil)

	enc := base64.RawURLEncoding
	return enc.EncodeToString(nonce) + enc.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. Any truncated, malformed, or tampered token
// yields an InvalidInput error; plaintext is never returned for a token that
// fails authentication. Decoding is strict so non-canonical base64 aliases
// of a valid token are rejected too.
func (c *Cipher) Decrypt(token string) (string, error) {
	if len(token) <= nonceSegmentLen {
		return "", apperr.InvalidInput("invalid encrypted data format")
	}

	enc := base64.RawURLEncoding.Strict()
	nonce, err := enc.DecodeString(token[:nonceSegmentLen])
	if err != nil {
		return "", apperr.InvalidInput("invalid encrypted data format")
	}
	ciphertext, err := enc.DecodeString(token[nonceSegmentLen:])
	if err != nil {
		return "", apperr.InvalidInput("invalid encrypted data format")
	}

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", apperr.InvalidInput("decryption failed")
	}
	return string(plaintext), nil
}
