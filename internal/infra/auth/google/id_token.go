// Package google verifies Google Sign-In ID tokens.
package google

import (
	"context"
	"log/slog"

	"google.golang.org/api/idtoken"

	"helios/config"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/domain/service"
	"helios/internal/errors"
)

// validateFunc matches idtoken.Validate so tests can stub the JWKS round trip.
type validateFunc func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// idTokenVerifier implements service.OAuthService for Google ID tokens issued
// to our client ID.
type idTokenVerifier struct {
	clientID string
	logger   *slog.Logger
	validate validateFunc
}

// NewIDTokenVerifier is the constructor for idTokenVerifier.
func NewIDTokenVerifier(cfg *config.Config, logger *slog.Logger) service.OAuthService {
	clientID := ""
	if cfg.GoogleOAuth != nil {
		clientID = cfg.GoogleOAuth.ClientID
	}

	return &idTokenVerifier{
		clientID: clientID,
		logger:   logger,
		validate: idtoken.Validate,
	}
}

// VerifyIDToken validates the token against Google's published signing keys,
// including expiry and audience, then extracts the identity it asserts.
// Failures surface as ErrOAuthTokenInvalid so callers stay opaque about the
// reason.
func (v *idTokenVerifier) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	payload, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		v.logger.Warn("failed to validate Google ID token", slog.Any("error", err))

		return nil, domainerrors.ErrOAuthTokenInvalid.WrapMessage("invalid ID token")
	}

	if err := verifyPayload(payload); err != nil {
		v.logger.Warn("Google ID token verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrOAuthTokenInvalid.WrapMessage("token verification failed")
	}

	return &service.OAuthUser{
		ID:            payload.Subject,
		Email:         stringClaim(payload, "email"),
		Name:          stringClaim(payload, "name"),
		AvatarURL:     stringClaim(payload, "picture"),
		EmailVerified: boolClaim(payload, "email_verified"),
	}, nil
}

// verifyPayload adds the checks idtoken.Validate leaves to the caller.
func verifyPayload(payload *idtoken.Payload) error {
	if payload.Issuer != "https://accounts.google.com" && payload.Issuer != "accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}
	if payload.Subject == "" {
		return errors.New("missing subject")
	}
	if !boolClaim(payload, "email_verified") {
		return errors.New("email not verified")
	}

	return nil
}

func stringClaim(payload *idtoken.Payload, key string) string {
	if value, ok := payload.Claims[key].(string); ok {
		return value
	}

	return ""
}

func boolClaim(payload *idtoken.Payload, key string) bool {
	value, ok := payload.Claims[key].(bool)

	return ok && value
}
