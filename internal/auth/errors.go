package auth

import "errors"

// Domain errors for the auth package.
var (
	// ErrTokenMissing is returned when a directive carries no bearer token.
	ErrTokenMissing = errors.New("auth: token missing")

	// ErrTokenInvalid is returned when a token fails validation.
	ErrTokenInvalid = errors.New("auth: invalid token")

	// ErrUnknownMode is returned for an unrecognised auth.token_mode.
	ErrUnknownMode = errors.New("auth: unknown token mode")
)
