package service

import "context"

// OAuthUser is the normalized identity returned by a third-party sign-in provider.
type OAuthUser struct {
	ID            string // The provider's unique user identifier ('sub' claim).
	Email         string
	Name          string
	AvatarURL     string
	EmailVerified bool
}

// OAuthService verifies third-party identity tokens.
type OAuthService interface {
	// VerifyIDToken validates the provider's ID token and extracts the user.
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)
}
