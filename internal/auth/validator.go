package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/config"
)

// Validator decides whether a bearer token may act on the bridge.
type Validator interface {
	Validate(ctx context.Context, token string) error
}

// AcceptAll accepts every non-empty token.
type AcceptAll struct{}

// Validate returns ErrTokenMissing for an empty token and nil otherwise.
func (AcceptAll) Validate(_ context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrTokenMissing
	}
	return nil
}

// JWTValidator accepts HS256 tokens signed with a shared secret.
type JWTValidator struct {
	secret string
	issuer string
}

// NewJWTValidator creates a validator for tokens signed with secret.
func NewJWTValidator(secret, issuer string) *JWTValidator {
	return &JWTValidator{secret: secret, issuer: issuer}
}

// Validate parses and checks token.
func (v *JWTValidator) Validate(_ context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrTokenMissing
	}
	_, err := ParseToken(token, v.secret, v.issuer)
	return err
}

// NewValidator returns the validator selected by cfg.TokenMode.
func NewValidator(cfg config.AuthConfig) (Validator, error) {
	switch cfg.TokenMode {
	case config.TokenModeAcceptAll, "":
		return AcceptAll{}, nil
	case config.TokenModeJWT:
		return NewJWTValidator(cfg.JWT.Secret, cfg.JWT.Issuer), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, cfg.TokenMode)
	}
}
