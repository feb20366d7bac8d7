// Package middleware contains the HTTP middleware chain.
package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	deliverycontext "helios/internal/delivery/context"
	"helios/internal/delivery/http/response"
	"helios/internal/domain/entity"
	"helios/internal/domain/repository"
	"helios/internal/domain/service"
	"helios/internal/errors"
)

// AuthMiddleware resolves every request to an explicit auth session before any
// gating decision is made. Gating then evaluates the tri-state Authorize
// outcome; an unresolved identity is "not yet", never "denied".
type AuthMiddleware struct {
	tokenSvc    service.TokenService
	profileRepo repository.ProfileRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, profileRepo repository.ProfileRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, profileRepo: profileRepo}
}

// EstablishSession resolves the caller's auth state from the Authorization
// header and stores it on the request context. It never rejects a request
// itself; that is the gate's job.
func (m *AuthMiddleware) EstablishSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		deliverycontext.SetSession(c, m.resolveSession(c))

		return next(c)
	}
}

func (m *AuthMiddleware) resolveSession(c echo.Context) entity.Session {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return entity.Session{State: entity.AuthStateAnonymous}
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return entity.Session{State: entity.AuthStateAnonymous}
	}

	claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
	if err != nil {
		return entity.Session{State: entity.AuthStateAnonymous}
	}

	profile, err := m.profileRepo.FindByUserID(c.Request().Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return entity.Session{
				State:  entity.AuthStateAuthenticatedNoProfile,
				UserID: claims.UserID,
			}
		}

		// Transient lookup failure. The identity is valid but the role is
		// unknowable right now, so the state stays unresolved.
		return entity.Session{
			State:  entity.AuthStateUnknown,
			UserID: claims.UserID,
		}
	}

	return entity.Session{
		State:  entity.AuthStateAuthenticatedWithProfile,
		UserID: claims.UserID,
		Role:   profile.Role,
	}
}

// Require gates a route group on the given requirement. Pending outcomes are
// 401 so clients retry or re-authenticate; only a known insufficient role is
// 403.
func (m *AuthMiddleware) Require(req entity.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := deliverycontext.GetSession(c)
			switch session.Authorize(req) {
			case entity.DecisionAllow:
				return next(c)
			case entity.DecisionPending:
				return response.Unauthorized(c, "AUTHORIZATION_PENDING", "Identity not yet established")
			default:
				if session.State == entity.AuthStateAnonymous {
					return response.Unauthorized(c, "AUTHENTICATION_REQUIRED", "Login required")
				}

				return response.Forbidden(c, "FORBIDDEN", "Access denied")
			}
		}
	}
}

// RequireAuthenticated gates a route group on any established identity.
func (m *AuthMiddleware) RequireAuthenticated() echo.MiddlewareFunc {
	return m.Require(entity.RequireAuthenticated())
}

// RequireRole gates a route group on a profile role.
func (m *AuthMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return m.Require(entity.RequireRole(role))
}
