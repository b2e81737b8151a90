package core

import "strings"

// Error codes for domain errors.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeNoTarget     = "no_target"
	ErrCodeNotInGroup   = "not_in_group"
	ErrCodeNameTaken    = "name_taken"
	ErrCodeNotConnected = "not_connected"
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

// nameTakenSentinel is the fixed phrase the server embeds in its error text
// when the chosen username is already connected. The wire protocol carries
// no structured error kind, so fatality is decided by content.
const nameTakenSentinel = "already taken"

// IsNameCollision reports whether a server error message signals a fatal
// username collision. The substring check is confined here so a structured
// error code can replace it without touching dispatch.
func IsNameCollision(msg string) bool {
	return strings.Contains(strings.ToLower(msg), nameTakenSentinel)
}
