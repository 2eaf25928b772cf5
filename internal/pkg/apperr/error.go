// Package apperr defines the error kinds the identity subsystem returns at
// its orchestration boundaries. Lower-level storage and crypto errors are
// wrapped into one of these kinds before they reach a caller; handlers switch
// on the kind instead of inspecting error strings or dynamic types.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for boundary handling.
type Kind int

const (
	// KindUnknown wraps unexpected internal failures. Logged in full
	// server-side, shown to callers only as a generic message.
	KindUnknown Kind = iota
	// KindInvalidInput is user-correctable and safe to display verbatim.
	KindInvalidInput
	// KindLoginFailed deliberately covers both "no such user" and
	// "wrong password" so accounts cannot be enumerated.
	KindLoginFailed
	// KindInvalidToken means the token failed signature or structural checks.
	KindInvalidToken
	// KindTokenExpired means the token was correctly signed but past expiry.
	KindTokenExpired
	// KindUnauthorized means a valid-looking token with no backing session,
	// or no token at all.
	KindUnauthorized
	// KindNotFound means a referenced resource does not exist.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindLoginFailed:
		return "login_failed"
	case KindInvalidToken:
		return "invalid_token"
	case KindTokenExpired:
		return "token_expired"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the subsystem's boundary error type.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, never shown to callers
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match two apperr values by kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// Kind sentinels for errors.Is checks.
var (
	ErrInvalidInput = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrLoginFailed  = &Error{Kind: KindLoginFailed, Message: "login failed, no user and password found"}
	ErrInvalidToken = &Error{Kind: KindInvalidToken, Message: "token is invalid"}
	ErrTokenExpired = &Error{Kind: KindTokenExpired, Message: "token is expired"}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "resource not found"}
	ErrUnknown      = &Error{Kind: KindUnknown, Message: "something went wrong"}
)

// InvalidInput builds a user-facing validation error.
func InvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// LoginFailed is returned for every credential failure, whatever the cause.
func LoginFailed() *Error {
	return &Error{Kind: KindLoginFailed, Message: "login failed, no user and password found"}
}

// InvalidToken marks a token that failed verification.
func InvalidToken(err error) *Error {
	return &Error{Kind: KindInvalidToken, Message: "token is invalid", Err: err}
}

// TokenExpired marks a correctly signed token past its expiry.
func TokenExpired() *Error {
	return &Error{Kind: KindTokenExpired, Message: "token is expired"}
}

// Unauthorized marks a request that may not proceed.
func Unauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Message: "unauthorized"}
}

// NotFound marks a missing resource.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Unknown wraps an unexpected internal error behind a generic message.
func Unknown(err error) *Error {
	return &Error{Kind: KindUnknown, Message: "something went wrong", Err: err}
}

// KindOf extracts the kind from any error; non-apperr errors are unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus maps an error to the status the transport layer should emit.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindLoginFailed, KindInvalidToken, KindTokenExpired, KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the caller-safe message for an error. Unknown errors
// never leak their cause.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindUnknown {
		return e.Message
	}
	return "something went wrong"
}
