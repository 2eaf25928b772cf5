// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig is everything the server needs from the environment. Loaded
// once at startup and passed down by value; nothing reads os.Getenv later.
type AppConfig struct {
	// Server
	HTTPAddr  string
	DebugMode bool

	// Storage
	DatabaseURL string
	RedisAddr   string
	RedisPass   string

	// Secrets
	MainKey   string // 32-byte AES key for activation tokens
	JWTSecret string

	// Activation links
	CallbackBaseURL string

	// SMTP
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPass     string
	SMTPFromName string
	SMTPSecure   bool
}

// Load reads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8080"),
		DebugMode: strings.ToLower(getEnv("DEBUG_MODE", "false")) == "true",

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		RedisPass:   getEnv("REDIS_PASS", ""),

		MainKey:   getEnv("APP_KEY_MAIN", ""),
		JWTSecret: getEnv("APP_KEY_JWT", ""),

		CallbackBaseURL: getEnv("APP_CALLBACK_URL", "http://localhost:8080"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "465"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPass:     getEnv("SMTP_PASS", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Chaty"),
		SMTPSecure:   strings.ToLower(getEnv("SMTP_SECURE", "true")) == "true",
	}
}

// Validate fails fast on misconfiguration. A wrong-sized cipher key or a
// missing secret must stop the process before it serves a single request.
func (c AppConfig) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if len(c.MainKey) != 32 {
		return fmt.Errorf("APP_KEY_MAIN must be exactly 32 bytes, got %d", len(c.MainKey))
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("APP_KEY_JWT is required")
	}
	if c.CallbackBaseURL == "" {
		return fmt.Errorf("APP_CALLBACK_URL is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
