package google

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"

	"helios/config"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/errors"
)

func newTestVerifier(t *testing.T, clientID string, validate validateFunc) *idTokenVerifier {
	t.Helper()

	cfg := &config.Config{GoogleOAuth: &config.GoogleOAuthConfig{ClientID: clientID}}
	verifier := NewIDTokenVerifier(cfg, slog.Default()).(*idTokenVerifier)
	verifier.validate = validate

	return verifier
}

func validPayload() *idtoken.Payload {
	return &idtoken.Payload{
		Issuer:   "https://accounts.google.com",
		Subject:  "google-user-123",
		Audience: "test_client_id",
		Claims: map[string]any{
			"email":          "customer@example.com",
			"email_verified": true,
			"name":           "Ada Obi",
			"picture":        "https://lh3.googleusercontent.com/a/photo",
		},
	}
}

func TestIDTokenVerifier_VerifyIDToken(t *testing.T) {
	t.Parallel()

	var gotAudience string
	verifier := newTestVerifier(t, "test_client_id",
		func(_ context.Context, _ string, audience string) (*idtoken.Payload, error) {
			gotAudience = audience

			return validPayload(), nil
		})

	user, err := verifier.VerifyIDToken(context.Background(), "signed-token")
	require.NoError(t, err)
	assert.Equal(t, "test_client_id", gotAudience)
	assert.Equal(t, "google-user-123", user.ID)
	assert.Equal(t, "customer@example.com", user.Email)
	assert.Equal(t, "Ada Obi", user.Name)
	assert.Equal(t, "https://lh3.googleusercontent.com/a/photo", user.AvatarURL)
	assert.True(t, user.EmailVerified)
}

func TestIDTokenVerifier_RejectsUnvalidatedToken(t *testing.T) {
	t.Parallel()

	verifier := newTestVerifier(t, "test_client_id",
		func(_ context.Context, _ string, _ string) (*idtoken.Payload, error) {
			return nil, errors.New("idtoken: signature verification failed")
		})

	user, err := verifier.VerifyIDToken(context.Background(), "forged-token")
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrOAuthTokenInvalid))
}

func TestIDTokenVerifier_RejectsBadPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*idtoken.Payload)
	}{
		{name: "wrong issuer", mutate: func(p *idtoken.Payload) { p.Issuer = "https://evil.example.com" }},
		{name: "missing subject", mutate: func(p *idtoken.Payload) { p.Subject = "" }},
		{name: "unverified email", mutate: func(p *idtoken.Payload) { p.Claims["email_verified"] = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payload := validPayload()
			tt.mutate(payload)
			verifier := newTestVerifier(t, "test_client_id",
				func(_ context.Context, _ string, _ string) (*idtoken.Payload, error) {
					return payload, nil
				})

			user, err := verifier.VerifyIDToken(context.Background(), "signed-token")
			assert.Nil(t, user)
			assert.True(t, errors.Is(err, domainerrors.ErrOAuthTokenInvalid))
		})
	}
}
