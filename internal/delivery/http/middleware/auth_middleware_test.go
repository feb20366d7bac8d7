package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"helios/internal/domain/entity"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/domain/repository"
	"helios/internal/domain/service"
)

type stubTokenService struct {
	claims map[string]*service.Claims
}

func (s *stubTokenService) GenerateTokens(uuid.UUID, string) (string, string, error) {
	return "", "", nil
}

func (s *stubTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	if claims, ok := s.claims[tokenString]; ok {
		return claims, nil
	}

	return nil, domainerrors.ErrAuthenticationFailed.WrapMessage("unknown token")
}

func (s *stubTokenService) ValidateRefreshToken(string) (*service.Claims, error) {
	return nil, domainerrors.ErrAuthenticationFailed.WrapMessage("not used")
}

func (s *stubTokenService) HashToken(token string) string { return token }

func (s *stubTokenService) GetRefreshTokenDuration() time.Duration { return time.Hour }

type stubProfileRepo struct {
	profiles map[uuid.UUID]*entity.Profile
	err      error
}

func (s *stubProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	if profile, ok := s.profiles[userID]; ok {
		return profile, nil
	}

	return nil, repository.ErrProfileNotFound
}

func (s *stubProfileRepo) Create(context.Context, *entity.Profile) error { return nil }
func (s *stubProfileRepo) Update(context.Context, *entity.Profile) error { return nil }
func (s *stubProfileRepo) Delete(context.Context, uuid.UUID) error       { return nil }

func adminGate(tokenSvc service.TokenService, profileRepo repository.ProfileRepository) *echo.Echo {
	e := echo.New()
	m := NewAuthMiddleware(tokenSvc, profileRepo)
	e.GET("/admin/ping",
		func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		m.EstablishSession, m.RequireRole(entity.RoleAdmin))

	return e
}

func doRequest(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAuthMiddleware_AdminGate(t *testing.T) {
	adminID := uuid.New()
	customerID := uuid.New()
	orphanID := uuid.New()

	tokenSvc := &stubTokenService{claims: map[string]*service.Claims{
		"admin-token":    {UserID: adminID, Type: "access"},
		"customer-token": {UserID: customerID, Type: "access"},
		"orphan-token":   {UserID: orphanID, Type: "access"},
	}}
	profileRepo := &stubProfileRepo{profiles: map[uuid.UUID]*entity.Profile{
		adminID:    {UserID: adminID, Role: entity.RoleAdmin},
		customerID: {UserID: customerID, Role: entity.RoleCustomer},
	}}

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"no token is unauthorized", "", http.StatusUnauthorized},
		{"garbage token is unauthorized", "garbage", http.StatusUnauthorized},
		{"admin is allowed", "admin-token", http.StatusOK},
		{"customer is forbidden", "customer-token", http.StatusForbidden},
		// An identity with no profile has an unknowable role. That is a
		// pending outcome, never a deny.
		{"missing profile is pending not forbidden", "orphan-token", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := adminGate(tokenSvc, profileRepo)
			rec := doRequest(e, tt.token)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_TransientProfileLookupIsPending(t *testing.T) {
	userID := uuid.New()
	tokenSvc := &stubTokenService{claims: map[string]*service.Claims{
		"valid-token": {UserID: userID, Type: "access"},
	}}
	profileRepo := &stubProfileRepo{err: domainerrors.NewDatabaseExecuteError(
		domainerrors.ErrNetworkUnavailable, "connection lost")}

	e := adminGate(tokenSvc, profileRepo)
	rec := doRequest(e, "valid-token")

	// 401 so the client retries; a 403 would wrongly claim the role is known.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTHORIZATION_PENDING")
}

func TestAuthMiddleware_AuthenticatedGateAllowsProfilelessIdentity(t *testing.T) {
	userID := uuid.New()
	tokenSvc := &stubTokenService{claims: map[string]*service.Claims{
		"valid-token": {UserID: userID, Type: "access"},
	}}
	profileRepo := &stubProfileRepo{}

	e := echo.New()
	m := NewAuthMiddleware(tokenSvc, profileRepo)
	e.GET("/account/profile",
		func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		m.EstablishSession, m.RequireAuthenticated())

	req := httptest.NewRequest(http.MethodGet, "/account/profile", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
