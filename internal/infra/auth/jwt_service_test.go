package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helios/config"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/errors"
)

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "only-access"

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	userID := uuid.New()

	access, refresh, err := svc.GenerateTokens(userID, "customer")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, tokenTypeAccess, claims.Type)

	refreshClaims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Empty(t, refreshClaims.Role, "refresh tokens carry no role")
}

func TestJWTService_RejectsCrossTypeTokens(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	access, refresh, err := svc.GenerateTokens(uuid.New(), "admin")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refresh)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthenticationFailed))

	_, err = svc.ValidateRefreshToken(access)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthenticationFailed))
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	svc.accessTTL = -time.Minute

	access, _, err := svc.GenerateTokens(uuid.New(), "customer")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(access)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthenticationFailed))
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	access, _, err := svc.GenerateTokens(uuid.New(), "customer")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(access + "x")
	assert.True(t, errors.Is(err, domainerrors.ErrAuthenticationFailed))
}

func TestJWTService_HashTokenIsStableAndOpaque(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)

	first := svc.HashToken("raw-token")
	second := svc.HashToken("raw-token")
	other := svc.HashToken("raw-token-2")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 64)
	assert.NotContains(t, first, "raw-token")
}
